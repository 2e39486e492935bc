package scrapling

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Selector is the user-facing wrapper around one parsed element node. It
// is a small value type: copying it is cheap and safe to share across
// goroutines, since neither the node nor the Document it points into is
// ever mutated by the public API.
type Selector struct {
	doc  *Document
	node *html.Node
}

// IsZero reports whether s is the zero Selector (no node, e.g. the
// result of Parent on a root element).
func (s Selector) IsZero() bool { return s.doc == nil || s.node == nil }

// Equal reports whether s and other wrap the same node of the same
// Document.
func (s Selector) Equal(other Selector) bool {
	return s.doc == other.doc && s.node == other.node
}

func (s Selector) sameDoc(other Selector) error {
	if !other.IsZero() && s.doc != other.doc {
		return &MixedDocumentError{Op: "selector comparison"}
	}
	return nil
}

// Tag returns the element's lowercase local name.
func (s Selector) Tag() string { return s.node.Data }

// Text returns the element's direct text child concatenated — not
// descendant text.
func (s Selector) Text() TextHandler {
	var b strings.Builder
	for c := s.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return TextHandler(b.String())
}

// Attrib returns the element's attribute map.
func (s Selector) Attrib() AttributesHandler {
	return newAttributesHandler(s.node.Attr)
}

// Get is a shortcut for Attrib().Value(name), mirroring the spec's
// selector[name] sugar.
func (s Selector) Get(name string) TextHandler {
	return s.Attrib().Value(name)
}

// Has reports whether name is present in Attrib, mirroring the spec's
// `name in selector` sugar.
func (s Selector) Has(name string) bool {
	return s.Attrib().Has(name)
}

// HTMLContent returns the element's outer HTML, re-serialized.
func (s Selector) HTMLContent() TextHandler {
	var buf bytes.Buffer
	_ = html.Render(&buf, s.node)
	return TextHandler(buf.String())
}

// isRoot reports whether s is the document's own root handle — the
// Selector New returned, as opposed to some inner element that happens
// to share its tag.
func (s Selector) isRoot() bool {
	return s.doc.root == s.node || htmlRoot(s.doc.root) == s.node
}

// Body returns the whole document's original source bytes on the root
// handle; on inner elements it falls back to HTMLContent.
func (s Selector) Body() TextHandler {
	if s.isRoot() {
		return TextHandler(string(s.doc.raw))
	}
	return s.HTMLContent()
}

// Path returns all ancestors in nearest-first order, excluding self.
func (s Selector) Path() Selectors {
	var out Selectors
	for p := s.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			out = append(out, Selector{doc: s.doc, node: p})
		}
	}
	return out
}

// Parent returns the containing element, or the zero Selector at the
// root.
func (s Selector) Parent() Selector {
	for p := s.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return Selector{doc: s.doc, node: p}
		}
	}
	return Selector{}
}

// Children returns the element children, in document order.
func (s Selector) Children() Selectors {
	var out Selectors
	for c := s.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, Selector{doc: s.doc, node: c})
		}
	}
	return out
}

// Siblings returns the element siblings under the same parent, excluding
// self, in document order.
func (s Selector) Siblings() Selectors {
	parent := s.node.Parent
	if parent == nil {
		return nil
	}
	var out Selectors
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c != s.node {
			out = append(out, Selector{doc: s.doc, node: c})
		}
	}
	return out
}

// Next returns the next element sibling, or the zero Selector.
func (s Selector) Next() Selector {
	for c := s.node.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return Selector{doc: s.doc, node: c}
		}
	}
	return Selector{}
}

// Previous returns the previous element sibling, or the zero Selector.
func (s Selector) Previous() Selector {
	for c := s.node.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return Selector{doc: s.doc, node: c}
		}
	}
	return Selector{}
}

// BelowElements returns all descendants in document order, excluding
// self.
func (s Selector) BelowElements() Selectors {
	var out Selectors
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, Selector{doc: s.doc, node: c})
				walk(c)
			}
		}
	}
	walk(s.node)
	return out
}

// GetAllText does a depth-first concatenation of descendant text,
// skipping subtrees whose root tag is in ignoreTags.
func (s Selector) GetAllText(opts ...func(*GetAllTextOptions)) TextHandler {
	o := GetAllTextOptions{
		Separator:    "\n",
		IgnoreTags:   []string{"script", "style"},
		ValidValues:  true,
	}
	for _, fn := range opts {
		fn(&o)
	}

	ignore := make(map[string]bool, len(o.IgnoreTags))
	for _, t := range o.IgnoreTags {
		ignore[t] = true
	}

	var pieces []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				piece := c.Data
				if o.Strip {
					piece = strings.TrimSpace(piece)
				}
				if o.ValidValues && strings.TrimSpace(piece) == "" {
					continue
				}
				pieces = append(pieces, piece)
			case html.ElementNode:
				if ignore[c.Data] {
					continue
				}
				walk(c)
			}
		}
	}
	walk(s.node)

	return TextHandler(strings.Join(pieces, o.Separator))
}

// GetAllTextOptions configures GetAllText.
type GetAllTextOptions struct {
	Separator   string
	Strip       bool
	IgnoreTags  []string
	ValidValues bool
}

// WithSeparator overrides the join separator (default "\n").
func WithSeparator(sep string) func(*GetAllTextOptions) {
	return func(o *GetAllTextOptions) { o.Separator = sep }
}

// WithStrip trims each text piece before joining.
func WithStrip(v bool) func(*GetAllTextOptions) {
	return func(o *GetAllTextOptions) { o.Strip = v }
}

// WithIgnoreTags overrides the set of tags whose subtrees are skipped.
func WithIgnoreTags(tags ...string) func(*GetAllTextOptions) {
	return func(o *GetAllTextOptions) { o.IgnoreTags = tags }
}

// WithValidValues toggles dropping empty/whitespace-only pieces.
func WithValidValues(v bool) func(*GetAllTextOptions) {
	return func(o *GetAllTextOptions) { o.ValidValues = v }
}

// Prettify renders the element with indentation, for human inspection.
func (s Selector) Prettify() TextHandler {
	var b strings.Builder
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		switch n.Type {
		case html.ElementNode:
			b.WriteString(indent)
			b.WriteString("<")
			b.WriteString(n.Data)
			for _, a := range n.Attr {
				b.WriteString(" ")
				b.WriteString(a.Key)
				b.WriteString(`="`)
				b.WriteString(a.Val)
				b.WriteString(`"`)
			}
			b.WriteString(">\n")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, depth+1)
			}
			b.WriteString(indent)
			b.WriteString("</")
			b.WriteString(n.Data)
			b.WriteString(">\n")
		case html.TextNode:
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				b.WriteString(indent)
				b.WriteString(trimmed)
				b.WriteString("\n")
			}
		}
	}
	walk(s.node, 0)
	return TextHandler(b.String())
}

// HasClass reports whether the "class" attribute contains name as an
// exact whitespace-separated token.
func (s Selector) HasClass(name string) bool {
	for _, c := range s.Attrib().classTokens() {
		if c == name {
			return true
		}
	}
	return false
}

// IterAncestors yields each ancestor from nearest to root via fn; fn
// returning false stops iteration early.
func (s Selector) IterAncestors(fn func(Selector) bool) {
	for p := s.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			if !fn(Selector{doc: s.doc, node: p}) {
				return
			}
		}
	}
}

// FindAncestor returns the nearest ancestor for which predicate returns
// true, or the zero Selector.
func (s Selector) FindAncestor(predicate func(Selector) bool) Selector {
	var found Selector
	s.IterAncestors(func(sel Selector) bool {
		if predicate(sel) {
			found = sel
			return false
		}
		return true
	})
	return found
}

// URLJoin resolves relative against the Document's URL.
func (s Selector) URLJoin(relative string) (TextHandler, error) {
	base := s.doc.url
	resolved, err := resolveURL(base, relative)
	if err != nil {
		return "", err
	}
	return TextHandler(resolved), nil
}

// Document returns the Document this handle was parsed from.
func (s Selector) Document() *Document { return s.doc }
