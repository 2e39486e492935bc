package adaptive

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestRelocateIdentityScoresOne(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div id="p1" class="product"><h3>x</h3></div>`))
	if err != nil {
		t.Fatal(err)
	}
	div := findByTag(doc, "div")
	if div == nil {
		t.Fatal("expected <div>")
	}

	fp := Build(div)
	candidates := Relocate(fp, doc)
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if candidates[0].Node != div {
		t.Fatalf("top candidate is not the original node")
	}
	if candidates[0].Score < 0.999 {
		t.Errorf("identity score = %v, want ~1.0", candidates[0].Score)
	}
}

func TestRelocateUnderStructuralDrift(t *testing.T) {
	original, err := html.Parse(strings.NewReader(
		`<div class="product" id="p1"><h3>Product 1</h3><span class="price">$10</span></div>`))
	if err != nil {
		t.Fatal(err)
	}
	div := findByTag(original, "div")
	fp := Build(div)

	drifted, err := html.Parse(strings.NewReader(
		`<article class="product new-class" data-id="p1"><div class="info"><h3>Product 1</h3><span class="price new-price">$10</span></div></article>`))
	if err != nil {
		t.Fatal(err)
	}

	candidates := Relocate(fp, drifted)
	if len(candidates) == 0 {
		t.Fatal("expected at least one relocation candidate")
	}
	top := candidates[0].Node
	if top.Data != "article" && top.Data != "div" {
		t.Fatalf("top candidate tag = %q, want article or div", top.Data)
	}

	h3 := findByTag(top, "h3")
	if h3 == nil || directTextOf(h3) != "Product 1" {
		t.Errorf("expected the top candidate's descendants to include an h3 with 'Product 1'")
	}
}

func TestRelocateNoMatchYieldsEmpty(t *testing.T) {
	// A fingerprint recorded far deeper than anything in this document:
	// the structural cohort (even widened to d±1) stays empty, so no
	// hard filter or scoring ever runs.
	fp := Fingerprint{Tag: "span", PathTags: make([]string, 10)}
	doc, _ := html.Parse(strings.NewReader(`<div>x</div>`))
	candidates := Relocate(fp, doc)
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(candidates))
	}
}

func directTextOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
