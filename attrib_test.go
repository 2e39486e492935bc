package scrapling

import (
	"testing"

	"golang.org/x/net/html"
)

func newTestAttrs(pairs ...string) AttributesHandler {
	var attrs []html.Attribute
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, html.Attribute{Key: pairs[i], Val: pairs[i+1]})
	}
	return newAttributesHandler(attrs)
}

func TestAttributesHandlerGet(t *testing.T) {
	h := newTestAttrs("href", "/x", "class", "a b")

	v, ok := h.Get("href")
	if !ok || v.String() != "/x" {
		t.Fatalf("got (%q, %v), want (/x, true)", v, ok)
	}

	_, ok = h.Get("missing")
	if ok {
		t.Fatal("expected missing attribute to report false")
	}
	if h.Value("missing") != "" {
		t.Fatalf("Value on missing attribute = %q, want empty", h.Value("missing"))
	}
}

func TestAttributesHandlerSearchValues(t *testing.T) {
	h := newTestAttrs("data-a", "foo", "data-b", "foobar")

	exact := h.SearchValues("foo", false)
	if len(exact) != 1 || exact[0].Name != "data-a" {
		t.Fatalf("exact search = %+v, want one match on data-a", exact)
	}

	partial := h.SearchValues("foo", true)
	if len(partial) != 2 {
		t.Fatalf("partial search = %+v, want two matches", partial)
	}
}

func TestAttributesHandlerKeysOrder(t *testing.T) {
	h := newTestAttrs("id", "x", "class", "y", "data-z", "z")
	got := h.Keys()
	want := []string{"id", "class", "data-z"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAttributesHandlerClassTokens(t *testing.T) {
	h := newTestAttrs("class", "product  featured")
	got := h.classTokens()
	want := []string{"product", "featured"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
