package fuzzy

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "hello", "hello", 1.0},
		{"both empty", "", "", 1.0},
		{"completely different single char", "a", "b", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSetRatioIgnoresOrder(t *testing.T) {
	got := TokenSetRatio("Price: $10", "$10 Price:")
	if got != 1.0 {
		t.Errorf("got %v, want 1.0 (order-insensitive)", got)
	}
}

func TestJaccardIdenticalSets(t *testing.T) {
	a := map[string]string{"id": "x", "class": "a"}
	b := map[string]string{"id": "x", "class": "a"}
	if got := Jaccard(a, b); got != 1.0 {
		t.Errorf("got %v, want 1.0", got)
	}
}

func TestJaccardDisjointSets(t *testing.T) {
	a := map[string]string{"id": "x"}
	b := map[string]string{"class": "y"}
	got := Jaccard(a, b)
	if got <= 0 || got >= 1.0 {
		t.Errorf("got %v, want strictly between 0 and 1 for disjoint-but-nonempty sets", got)
	}
}

func TestSequenceRatioIdentical(t *testing.T) {
	a := []string{"div", "span", "a"}
	b := []string{"div", "span", "a"}
	if got := SequenceRatio(a, b); got != 1.0 {
		t.Errorf("got %v, want 1.0", got)
	}
}

func TestSequenceRatioPartialOverlap(t *testing.T) {
	a := []string{"div", "span", "a"}
	b := []string{"div", "p", "a"}
	got := SequenceRatio(a, b)
	if got <= 0 || got >= 1.0 {
		t.Errorf("got %v, want strictly between 0 and 1", got)
	}
}
