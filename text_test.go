package scrapling

import (
	"errors"
	"testing"
)

func TestTextHandlerRe(t *testing.T) {
	tests := []struct {
		name    string
		text    TextHandler
		pattern any
		want    []string
	}{
		{
			name:    "no capture group returns whole match",
			text:    "Price: £51.77 and £10.00",
			pattern: `£[\d.]+`,
			want:    []string{"£51.77", "£10.00"},
		},
		{
			name:    "single capture group returns group 1",
			text:    "id-42-end",
			pattern: `id-(\d+)-end`,
			want:    []string{"42"},
		},
		{
			name:    "more than one group still returns group 1",
			text:    "a1b2",
			pattern: `a(\d)b(\d)`,
			want:    []string{"1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.text.Re(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i, w := range tt.want {
				if got[i].String() != w {
					t.Errorf("index %d: got %q, want %q", i, got[i], w)
				}
			}
		})
	}
}

func TestTextHandlerClean(t *testing.T) {
	in := TextHandler("  hello   \n  world  ")
	got := in.Clean()
	want := TextHandler("hello world")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextHandlerJSON(t *testing.T) {
	in := TextHandler(`{"a":1,"b":[2,3]}`)
	v, err := in.JSON()
	if err != nil {
		t.Fatal(err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", v)
	}
	if m["a"] != float64(1) {
		t.Errorf("a = %v, want 1", m["a"])
	}
}

func TestTextHandlerJSONInvalid(t *testing.T) {
	in := TextHandler("not json")
	_, err := in.JSON()
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	var jsonErr *JSONDecodeError
	if !errors.As(err, &jsonErr) {
		t.Fatalf("got %T, want *JSONDecodeError", err)
	}
}

func TestTextHandlerSort(t *testing.T) {
	got := TextHandler("dcba").Sort()
	if got != "abcd" {
		t.Errorf("got %q, want %q", got, "abcd")
	}
	gotRev := TextHandler("abcd").Sort(true)
	if gotRev != "dcba" {
		t.Errorf("got %q, want %q", gotRev, "dcba")
	}
}

func TestTextHandlersReFirst(t *testing.T) {
	ts := TextHandlers{"no match here", "value is 99"}
	got, err := ts.ReFirst(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.String() != "99" {
		t.Errorf("got %q, want %q", got.String(), "99")
	}
}
