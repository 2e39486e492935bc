package scrapling

import (
	"testing"

	"github.com/scrapling/core/adaptive"
)

// TestSaveRetrieveRoundTripsAgainstDefaultStore exercises spec.md §8
// testable property 7 (save(n, k); retrieve(k) == fingerprint(n))
// against the documented default backend: New with no Store configured
// must use the real SQLite-backed adaptive.SQLiteStore, not an
// in-memory substitute.
func TestSaveRetrieveRoundTripsAgainstDefaultStore(t *testing.T) {
	root := parseTest(t, `<div id="p1" class="product"><h3>Product 1</h3></div>`)

	div, ok := findFirstByTag(root, "div")
	if !ok {
		t.Fatal("expected <div>")
	}

	if err := root.Save(div, "K"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, ok, err := root.Retrieve("K")
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after Save")
	}

	want := adaptive.Build(div.node)
	if got.Tag != want.Tag {
		t.Errorf("Tag = %q, want %q", got.Tag, want.Tag)
	}
	if got.Attributes["id"] != want.Attributes["id"] || got.Attributes["class"] != want.Attributes["class"] {
		t.Errorf("Attributes = %v, want %v", got.Attributes, want.Attributes)
	}
	if got.Text != want.Text {
		t.Errorf("Text = %q, want %q", got.Text, want.Text)
	}
}

func TestRetrieveMissingKeyIsNotAnError(t *testing.T) {
	root := parseTest(t, `<div>x</div>`)

	fp, ok, err := root.Retrieve("never-saved")
	if err != nil {
		t.Fatalf("Retrieve returned error: %v, want nil on a missing key", err)
	}
	if ok {
		t.Error("expected ok=false for a missing key")
	}
	if fp.Tag != "" {
		t.Errorf("Retrieve = %+v, want the zero value", fp)
	}
}
