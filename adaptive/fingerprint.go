// Package adaptive implements element fingerprinting, fingerprint
// persistence, and cross-document relocation — the mechanism that lets
// a caller re-find an element after the page's structure has drifted.
//
// It deliberately has no dependency on the root scrapling package: it
// operates on *html.Node directly and returns *html.Node, so the root
// package can wrap results into Selector/Selectors without an import
// cycle.
package adaptive

import (
	"strings"

	"golang.org/x/net/html"
)

// Fingerprint is the persisted descriptor of an element, matching
// spec.md §3 field-for-field. It is fully JSON-serializable with the
// stable key names spec.md §6 documents for the on-disk form.
type Fingerprint struct {
	Tag              string            `json:"tag"`
	Text             string            `json:"text"`
	Attributes       map[string]string `json:"attributes"`
	SiblingTags      []string          `json:"sibling_tags"`
	PathTags         []string          `json:"path_tags"`
	ParentTag        string            `json:"parent_tag"`
	ParentAttributes map[string]string `json:"parent_attributes"`
	ParentText       string            `json:"parent_text"`
}

// Build computes the fingerprint of n. Tag names and attribute keys are
// lowercased; text is normalized by collapsing whitespace runs to a
// single space and trimming. Attribute values are kept verbatim — a
// space-delimited class value is left as one string, tokenized only
// later, during scoring.
func Build(n *html.Node) Fingerprint {
	fp := Fingerprint{
		Tag:        strings.ToLower(n.Data),
		Text:       normalizeText(directText(n)),
		Attributes: attrMap(n),
		PathTags:   pathTags(n),
	}

	if parent := elementParent(n); parent != nil {
		fp.ParentTag = strings.ToLower(parent.Data)
		fp.ParentAttributes = attrMap(parent)
		fp.ParentText = normalizeText(directText(parent))
		fp.SiblingTags = siblingTags(parent)
	}

	return fp
}

func elementParent(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func directText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attrMap(n *html.Node) map[string]string {
	out := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		out[strings.ToLower(a.Key)] = a.Val
	}
	return out
}

// pathTags lists the tag names of every ancestor of n, nearest-first,
// up to but excluding the document's outermost <html> element ("root",
// per spec.md §3 — exclusive of both n itself and the root).
func pathTags(n *html.Node) []string {
	var out []string
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if IsRoot(p) {
			break
		}
		out = append(out, strings.ToLower(p.Data))
	}
	return out
}

// IsRoot reports whether n is the document's outermost element (its
// only ancestor is the non-element document node).
func IsRoot(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return false
		}
	}
	return true
}

// Depth returns the number of element ancestors of n, excluding the
// document root — the same "distance from root" convention len(PathTags)
// encodes, kept as its own function so the relocator's structural
// cohort can compute a candidate's depth without rebuilding a whole
// fingerprint.
func Depth(n *html.Node) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if IsRoot(p) {
			break
		}
		d++
	}
	return d
}

// siblingTags lists the tag names of every element child of parent, in
// document order.
func siblingTags(parent *html.Node) []string {
	var out []string
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, strings.ToLower(c.Data))
		}
	}
	return out
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
