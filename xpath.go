package scrapling

import (
	"strconv"
	"sync"

	"github.com/antchfx/xpath"
)

// xpathCache memoizes compiled expressions per Document, the same
// tradeoff cssCache makes: compilation cost is real and expressions are
// commonly reused across many elements of the same document.
type xpathCache struct {
	mu      sync.Mutex
	entries map[string]*xpath.Expr
}

func newXPathCache() *xpathCache {
	return &xpathCache{entries: make(map[string]*xpath.Expr)}
}

func (c *xpathCache) compile(expr string) (*xpath.Expr, error) {
	c.mu.Lock()
	if e, ok := c.entries[expr]; ok {
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, &InvalidSelectorError{Selector: expr, Kind: "xpath", Err: err}
	}

	c.mu.Lock()
	c.entries[expr] = compiled
	c.mu.Unlock()
	return compiled, nil
}

// Xpath evaluates expr against s's node. Its Result.Kind is decided at
// run time from what the expression actually produces: a node-set of
// elements (KindElements), a node-set of text/attribute nodes or a
// scalar string/number/bool result (KindStrings), or a node-set mixing
// element and non-element nodes (KindMixed) — spec.md §4.4's dynamic
// return type, mirrored directly since XPath 1.0 itself is dynamically
// typed at the expression level.
func (s Selector) Xpath(expr string, opts ...SelectOpt) (Result, error) {
	compiled, err := s.doc.xpath.compile(expr)
	if err != nil {
		return Result{}, err
	}

	nav := newHTMLNavigator(s.doc, s.node)
	val := compiled.Evaluate(nav)

	result, err := xpathValueToResult(s.doc, val)
	if err != nil {
		return Result{}, &InvalidSelectorError{Selector: expr, Kind: "xpath", Err: err}
	}
	return s.applyAdaptiveXpath(expr, result, opts)
}

// XpathFirst is Xpath but returns only the first match.
func (s Selector) XpathFirst(expr string, opts ...SelectOpt) (any, error) {
	r, err := s.Xpath(expr, opts...)
	if err != nil {
		return nil, err
	}
	v, _ := r.First()
	return v, nil
}

func xpathValueToResult(doc *Document, val any) (Result, error) {
	switch v := val.(type) {
	case *xpath.NodeIterator:
		var branches []Result
		for v.MoveNext() {
			nav := v.Current().(*htmlNavigator)
			branches = append(branches, xpathNodeToResultItem(doc, nav))
		}
		return concatResults(branches), nil
	case string:
		return Result{Kind: KindStrings, Texts: TextHandlers{TextHandler(v)}}, nil
	case bool:
		return Result{Kind: KindStrings, Texts: TextHandlers{TextHandler(boolString(v))}}, nil
	case float64:
		return Result{Kind: KindStrings, Texts: TextHandlers{TextHandler(floatString(v))}}, nil
	default:
		return Result{}, nil
	}
}

func xpathNodeToResultItem(doc *Document, nav *htmlNavigator) Result {
	switch nav.NodeType() {
	case xpath.ElementNode:
		return Result{Kind: KindElements, Elements: Selectors{{doc: doc, node: nav.Current()}}}
	default:
		return Result{Kind: KindStrings, Texts: TextHandlers{TextHandler(nav.Value())}}
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// floatString renders f the way XPath 1.0's number-to-string conversion
// does: integral values print without a fractional part.
func floatString(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s Selector) applyAdaptiveXpath(expr string, result Result, rawOpts []SelectOpt) (Result, error) {
	o := resolveSelectOpts(expr, rawOpts)
	return s.applyAdaptive(o, result)
}
