package scrapling

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// pathFragment is one ancestor-level identifying piece of a generated
// selector: an id anchor, a tag+unique-class pair, or an nth-of-type
// position.
type pathFragment struct {
	kind    fragmentKind
	tag     string
	idValue string
	class   string
	nth     int
}

type fragmentKind int

const (
	fragKindNth fragmentKind = iota
	fragKindClass
	fragKindID
)

// GenerateCSSSelector builds spec.md §4.4's shortest unique CSS
// selector: walking from self to root, it stops as soon as it finds an
// ancestor with a document-unique id.
func (s Selector) GenerateCSSSelector() TextHandler {
	frags := s.selectorPath(true)
	return TextHandler(renderCSSFragments(frags))
}

// GenerateFullCSSSelector never short-circuits on id: it always walks
// all the way to body.
func (s Selector) GenerateFullCSSSelector() TextHandler {
	frags := s.selectorPath(false)
	return TextHandler(renderCSSFragments(frags))
}

// GenerateXPathSelector is GenerateCSSSelector's XPath-syntax
// equivalent, preferring //*[@id='...'] anchors.
func (s Selector) GenerateXPathSelector() TextHandler {
	frags := s.selectorPath(true)
	return TextHandler(renderXPathFragments(frags))
}

// GenerateFullXPathSelector is GenerateFullCSSSelector's XPath-syntax
// equivalent.
func (s Selector) GenerateFullXPathSelector() TextHandler {
	frags := s.selectorPath(false)
	return TextHandler(renderXPathFragments(frags))
}

// selectorPath walks from s's node up to <body>, recording one fragment
// per level, body-last (so callers render left-to-right by reversing).
// When shortCircuit is true, it stops as soon as it emits an id-anchored
// fragment.
func (s Selector) selectorPath(shortCircuit bool) []pathFragment {
	var frags []pathFragment
	for n := s.node; n != nil && n.Type == html.ElementNode; n = elementParentNode(n) {
		frag := s.fragmentFor(n)
		frags = append(frags, frag)
		if shortCircuit && frag.kind == fragKindID {
			break
		}
		if n.Data == "body" {
			break
		}
	}
	// Reverse to root-first, so rendering walks left-to-right as "> "
	// chains from the anchor (or body) down to the target.
	for i, j := 0, len(frags)-1; i < j; i, j = i+1, j-1 {
		frags[i], frags[j] = frags[j], frags[i]
	}
	return frags
}

func (s Selector) fragmentFor(n *html.Node) pathFragment {
	tag := n.Data
	attrs := newAttributesHandler(n.Attr)

	if id, ok := attrs.Get("id"); ok && id.String() != "" && s.doc.idIsUnique(id.String()) {
		return pathFragment{kind: fragKindID, idValue: id.String(), tag: tag}
	}

	for _, class := range attrs.classTokens() {
		if s.doc.classIsUniqueForTag(tag, class) {
			return pathFragment{kind: fragKindClass, tag: tag, class: class}
		}
	}

	return pathFragment{kind: fragKindNth, tag: tag, nth: nthOfType(n)}
}

func nthOfType(n *html.Node) int {
	idx := 1
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode && c.Data == n.Data {
			idx++
		}
	}
	return idx
}

func renderCSSFragments(frags []pathFragment) string {
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		switch f.kind {
		case fragKindID:
			parts = append(parts, "#"+f.idValue)
		case fragKindClass:
			parts = append(parts, f.tag+"."+f.class)
		default:
			parts = append(parts, fmt.Sprintf("%s:nth-of-type(%d)", f.tag, f.nth))
		}
	}
	return strings.Join(parts, " > ")
}

func renderXPathFragments(frags []pathFragment) string {
	var b strings.Builder
	for i, f := range frags {
		if i == 0 {
			b.WriteString("//")
		} else {
			b.WriteString("/")
		}
		switch f.kind {
		case fragKindID:
			b.WriteString("*[@id='")
			b.WriteString(f.idValue)
			b.WriteString("']")
		case fragKindClass:
			b.WriteString(f.tag)
			b.WriteString("[contains(concat(' ',normalize-space(@class),' '),' ")
			b.WriteString(f.class)
			b.WriteString(" ')]")
		default:
			b.WriteString(f.tag)
			b.WriteString("[")
			b.WriteString(strconv.Itoa(f.nth))
			b.WriteString("]")
		}
	}
	return b.String()
}

// idIsUnique reports whether id appears on exactly one element in the
// document.
func (d *Document) idIsUnique(id string) bool {
	count := 0
	for _, n := range d.byIdx {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				count++
			}
		}
	}
	return count == 1
}

// classIsUniqueForTag reports whether class appears on exactly one
// element bearing tag, across the whole document.
func (d *Document) classIsUniqueForTag(tag, class string) bool {
	count := 0
	for _, n := range d.byIdx {
		if n.Data != tag {
			continue
		}
		for _, c := range newAttributesHandler(n.Attr).classTokens() {
			if c == class {
				count++
				break
			}
		}
	}
	return count == 1
}
