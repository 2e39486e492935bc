package scrapling

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// pseudoKind tags the two non-standard pseudo-elements the spec adds on
// top of CSS3: ::text (a branch's matched elements' direct text) and
// ::attr(name) (a named attribute's value).
type pseudoKind int

const (
	pseudoNone pseudoKind = iota
	pseudoText
	pseudoAttr
)

type compiledBranch struct {
	sel    cascadia.Selector
	pseudo pseudoKind
	attr   string
}

type cssCache struct {
	mu      sync.Mutex
	entries map[string][]compiledBranch
}

func newCSSCache() *cssCache {
	return &cssCache{entries: make(map[string][]compiledBranch)}
}

func (c *cssCache) compile(selector string) ([]compiledBranch, error) {
	c.mu.Lock()
	if b, ok := c.entries[selector]; ok {
		c.mu.Unlock()
		return b, nil
	}
	c.mu.Unlock()

	branchTexts := splitTopLevelCommas(selector)
	branches := make([]compiledBranch, 0, len(branchTexts))
	for _, bt := range branchTexts {
		base, kind, attrName := splitPseudoElement(strings.TrimSpace(bt))
		if base == "" {
			base = "*"
		}
		sel, err := cascadia.Compile(base)
		if err != nil {
			return nil, &InvalidSelectorError{Selector: selector, Kind: "css", Err: err}
		}
		branches = append(branches, compiledBranch{sel: sel, pseudo: kind, attr: attrName})
	}

	c.mu.Lock()
	c.entries[selector] = branches
	c.mu.Unlock()
	return branches, nil
}

// splitTopLevelCommas splits a comma-combined selector list into its
// independent sub-selectors, ignoring commas nested inside () or [].
func splitTopLevelCommas(selector string) []string {
	var out []string
	depth := 0
	inQuote := byte(0)
	last := 0
	for i := 0; i < len(selector); i++ {
		c := selector[i]
		switch {
		case inQuote != 0:
			if c == inQuote {
				inQuote = 0
			}
		case c == '\'' || c == '"':
			inQuote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			out = append(out, selector[last:i])
			last = i + 1
		}
	}
	out = append(out, selector[last:])
	return out
}

// splitPseudoElement strips a trailing ::text or ::attr(name) from sel,
// returning the remaining standard-CSS base selector.
func splitPseudoElement(sel string) (base string, kind pseudoKind, attrName string) {
	switch {
	case strings.HasSuffix(sel, "::text"):
		return strings.TrimSuffix(sel, "::text"), pseudoText, ""
	case strings.HasSuffix(sel, ")") && strings.Contains(sel, "::attr("):
		idx := strings.LastIndex(sel, "::attr(")
		name := sel[idx+len("::attr(") : len(sel)-1]
		return sel[:idx], pseudoAttr, strings.TrimSpace(name)
	default:
		return sel, pseudoNone, ""
	}
}

// Css executes selector against s's node (and its descendants) and
// returns a Result whose Kind follows spec.md §4.3's rule: elements
// unless every comma branch ends in ::text/::attr(name), in which case
// strings; a mix of the two yields KindMixed.
func (s Selector) Css(selector string, opts ...SelectOpt) (Result, error) {
	branches, err := s.doc.css.compile(selector)
	if err != nil {
		return Result{}, err
	}

	branchResults := make([]Result, 0, len(branches))
	for _, b := range branches {
		matches := b.sel.MatchAll(s.node)
		branchResults = append(branchResults, branchToResult(s.doc, matches, b))
	}
	result := concatResults(branchResults)

	return s.applyAdaptiveCSS(selector, result, opts)
}

// CssFirst is Css but returns only the first match: a Selector, a
// TextHandler, or nil when nothing matched.
func (s Selector) CssFirst(selector string, opts ...SelectOpt) (any, error) {
	r, err := s.Css(selector, opts...)
	if err != nil {
		return nil, err
	}
	v, _ := r.First()
	return v, nil
}

func branchToResult(doc *Document, matches []*html.Node, b compiledBranch) Result {
	switch b.pseudo {
	case pseudoText:
		out := make(TextHandlers, 0, len(matches))
		for _, n := range matches {
			out = append(out, Selector{doc: doc, node: n}.Text())
		}
		return Result{Kind: KindStrings, Texts: out}
	case pseudoAttr:
		out := make(TextHandlers, 0, len(matches))
		for _, n := range matches {
			out = append(out, Selector{doc: doc, node: n}.Get(b.attr))
		}
		return Result{Kind: KindStrings, Texts: out}
	default:
		out := make(Selectors, 0, len(matches))
		for _, n := range matches {
			out = append(out, Selector{doc: doc, node: n})
		}
		return Result{Kind: KindElements, Elements: out}
	}
}

func (s Selector) applyAdaptiveCSS(selector string, result Result, rawOpts []SelectOpt) (Result, error) {
	o := resolveSelectOpts(selector, rawOpts)
	return s.applyAdaptive(o, result)
}
