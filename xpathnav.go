package scrapling

import (
	"golang.org/x/net/html"

	"github.com/antchfx/xpath"
)

// htmlNavigator implements xpath.NodeNavigator directly over *html.Node,
// rather than depending on antchfx/htmlquery: htmlquery builds its own
// parallel node type, which would mean converting our tree (and losing
// the identity we rely on for document-order indexing) just to run an
// expression. A navigator is a small, well-specified interface, so we
// implement it once here and keep one tree throughout.
type htmlNavigator struct {
	doc     *Document
	current *html.Node
	attrIdx int
	// attrIdx >= 0 marks the navigator as sitting on current's
	// attrIdx-th attribute rather than on current itself, which only
	// NodeType/Value/LocalName honor; -1 means no attribute. Text
	// positions are real *html.Node text nodes.
}

func newHTMLNavigator(doc *Document, root *html.Node) *htmlNavigator {
	return &htmlNavigator{doc: doc, current: root, attrIdx: -1}
}

func (n *htmlNavigator) Current() *html.Node { return n.current }

func (n *htmlNavigator) NodeType() xpath.NodeType {
	if n.attrIdx >= 0 {
		return xpath.AttributeNode
	}
	switch n.current.Type {
	case html.DocumentNode:
		return xpath.RootNode
	case html.ElementNode:
		return xpath.ElementNode
	case html.CommentNode:
		return xpath.CommentNode
	case html.TextNode:
		return xpath.TextNode
	default:
		return xpath.TextNode
	}
}

func (n *htmlNavigator) LocalName() string {
	if n.attrIdx >= 0 {
		return n.current.Attr[n.attrIdx].Key
	}
	return n.current.Data
}

func (n *htmlNavigator) Prefix() string { return "" }

func (n *htmlNavigator) NamespaceURL() string { return "" }

func (n *htmlNavigator) Value() string {
	if n.attrIdx >= 0 {
		return n.current.Attr[n.attrIdx].Val
	}
	switch n.current.Type {
	case html.CommentNode:
		return n.current.Data
	case html.TextNode:
		return n.current.Data
	default:
		return Selector{doc: n.doc, node: n.current}.GetAllText().String()
	}
}

func (n *htmlNavigator) Copy() xpath.NodeNavigator {
	c := *n
	return &c
}

func (n *htmlNavigator) MoveToRoot() {
	for n.current.Parent != nil {
		n.current = n.current.Parent
	}
	n.attrIdx = -1
}

func (n *htmlNavigator) MoveToParent() bool {
	if n.attrIdx >= 0 {
		n.attrIdx = -1
		return true
	}
	if n.current.Parent == nil {
		return false
	}
	n.current = n.current.Parent
	return true
}

func (n *htmlNavigator) MoveToNextAttribute() bool {
	if n.attrIdx+1 >= len(n.current.Attr) {
		return false
	}
	n.attrIdx++
	return true
}

func (n *htmlNavigator) MoveToChild() bool {
	if n.attrIdx >= 0 {
		return false
	}
	if n.current.FirstChild == nil {
		return false
	}
	n.current = n.current.FirstChild
	return true
}

func (n *htmlNavigator) MoveToFirst() bool {
	if n.attrIdx >= 0 || n.current.Parent == nil {
		return false
	}
	for n.current.PrevSibling != nil {
		n.current = n.current.PrevSibling
	}
	return true
}

func (n *htmlNavigator) String() string { return n.Value() }

func (n *htmlNavigator) MoveToNext() bool {
	if n.attrIdx >= 0 || n.current.NextSibling == nil {
		return false
	}
	n.current = n.current.NextSibling
	return true
}

func (n *htmlNavigator) MoveToPrevious() bool {
	if n.attrIdx >= 0 || n.current.PrevSibling == nil {
		return false
	}
	n.current = n.current.PrevSibling
	return true
}

func (n *htmlNavigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*htmlNavigator)
	if !ok || o.doc != n.doc {
		return false
	}
	n.current = o.current
	n.attrIdx = o.attrIdx
	return true
}
