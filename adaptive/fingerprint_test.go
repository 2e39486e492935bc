package adaptive

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func findByTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestBuildFingerprint(t *testing.T) {
	doc := parseFragment(t, `<div class="product" id="p1"><h3>Product 1</h3><span class="price">$10</span></div>`)
	div := findByTag(doc, "div")
	if div == nil {
		t.Fatal("expected to find <div>")
	}

	fp := Build(div)
	if fp.Tag != "div" {
		t.Errorf("Tag = %q, want div", fp.Tag)
	}
	if fp.Attributes["class"] != "product" || fp.Attributes["id"] != "p1" {
		t.Errorf("Attributes = %v", fp.Attributes)
	}
	if len(fp.SiblingTags) != 1 || fp.SiblingTags[0] != "div" {
		t.Errorf("SiblingTags = %v, want [div] (div is an only child of body; the list includes the node's own tag)", fp.SiblingTags)
	}
	if fp.ParentTag != "body" {
		t.Errorf("ParentTag = %q, want body", fp.ParentTag)
	}
}

func TestPathTagsExcludesSelfAndRoot(t *testing.T) {
	doc := parseFragment(t, `<div><section><span id="leaf">x</span></section></div>`)
	span := findByTag(doc, "span")
	if span == nil {
		t.Fatal("expected to find <span>")
	}

	fp := Build(span)
	want := []string{"section", "div", "body"}
	if len(fp.PathTags) != len(want) {
		t.Fatalf("PathTags = %v, want %v", fp.PathTags, want)
	}
	for i, w := range want {
		if fp.PathTags[i] != w {
			t.Errorf("index %d: got %q, want %q", i, fp.PathTags[i], w)
		}
	}
}

func TestDepthMatchesPathTagsLength(t *testing.T) {
	doc := parseFragment(t, `<div><section><span id="leaf">x</span></section></div>`)
	span := findByTag(doc, "span")
	fp := Build(span)
	if Depth(span) != len(fp.PathTags) {
		t.Errorf("Depth(span) = %d, len(PathTags) = %d, want equal", Depth(span), len(fp.PathTags))
	}
}

func TestIsRoot(t *testing.T) {
	doc := parseFragment(t, `<div>x</div>`)
	htmlEl := findByTag(doc, "html")
	body := findByTag(doc, "body")
	if !IsRoot(htmlEl) {
		t.Error("expected <html> to be root")
	}
	if IsRoot(body) {
		t.Error("expected <body> not to be root")
	}
}

func TestSiblingTagsOrder(t *testing.T) {
	doc := parseFragment(t, `<ul><li>1</li><span>2</span><li>3</li></ul>`)
	ul := findByTag(doc, "ul")
	fp := Build(ul)
	// ul's own fingerprint doesn't carry its children as sibling tags —
	// SiblingTags describes the parent's children, i.e. ul's own siblings.
	_ = fp

	li := findByTag(doc, "li")
	liFP := Build(li)
	want := []string{"li", "span", "li"}
	if len(liFP.SiblingTags) != len(want) {
		t.Fatalf("SiblingTags = %v, want %v", liFP.SiblingTags, want)
	}
	for i, w := range want {
		if liFP.SiblingTags[i] != w {
			t.Errorf("index %d: got %q, want %q", i, liFP.SiblingTags[i], w)
		}
	}
}
