package scrapling

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/scrapling/core/internal/fuzzy"
)

// FindByText implements spec.md §4.6's find_by_text: an exact (or
// partial, when partial is true) match of each descendant's
// get_all_text(strip=true, valid_values=true) against text.
func (s Selector) FindByText(text string, firstMatch, caseSensitive, cleanMatch, partial bool) (Selectors, error) {
	target := text
	if cleanMatch {
		target = string(TextHandler(target).Clean())
	}
	if !caseSensitive {
		target = strings.ToLower(target)
	}

	var out Selectors
	for _, cand := range s.BelowElements() {
		got := cand.GetAllText(WithStrip(true), WithValidValues(true)).String()
		if cleanMatch {
			got = string(TextHandler(got).Clean())
		}
		if !caseSensitive {
			got = strings.ToLower(got)
		}

		matched := got == target
		if partial {
			matched = strings.Contains(got, target)
		}
		if !matched {
			continue
		}
		out = append(out, cand)
		if firstMatch {
			return out, nil
		}
	}
	return out, nil
}

// FindByRegex implements spec.md §4.6's find_by_regex over each
// descendant's direct-text (get_all_text is not used here — the spec
// distinguishes find_by_regex as a direct-text match).
func (s Selector) FindByRegex(pattern any, firstMatch, caseSensitive, cleanMatch bool) (Selectors, error) {
	re, err := toRegex(pattern, caseSensitive)
	if err != nil {
		return nil, err
	}

	var out Selectors
	for _, cand := range s.BelowElements() {
		text := cand.Text().String()
		if cleanMatch {
			text = string(TextHandler(text).Clean())
		}
		if !re.MatchString(text) {
			continue
		}
		out = append(out, cand)
		if firstMatch {
			return out, nil
		}
	}
	return out, nil
}

// FindSimilarOptions configures FindSimilar.
type FindSimilarOptions struct {
	SimilarityThreshold float64
	IgnoreAttributes    []string
	MatchText           bool
}

// DefaultFindSimilarOptions matches spec.md §4.6's documented defaults.
func DefaultFindSimilarOptions() FindSimilarOptions {
	return FindSimilarOptions{
		SimilarityThreshold: 0.2,
		IgnoreAttributes:    []string{"href", "src"},
	}
}

// WithSimilarityThreshold overrides the minimum score to keep a candidate.
func WithSimilarityThreshold(v float64) func(*FindSimilarOptions) {
	return func(o *FindSimilarOptions) { o.SimilarityThreshold = v }
}

// WithIgnoreAttributes overrides which attribute names are excluded from
// the similarity score.
func WithIgnoreAttributes(names ...string) func(*FindSimilarOptions) {
	return func(o *FindSimilarOptions) { o.IgnoreAttributes = names }
}

// WithMatchText includes direct-text similarity in the score.
func WithMatchText(v bool) func(*FindSimilarOptions) {
	return func(o *FindSimilarOptions) { o.MatchText = v }
}

// FindSimilar implements spec.md §4.6's find_similar: an in-document
// cohort search using s as the template, as opposed to Relocate (in the
// adaptive package) which searches a possibly different document from a
// persisted Fingerprint computed at an earlier time. Results are
// returned in document order, not sorted by score — the spec explicitly
// keeps find_similar's output order distinct from the relocator's
// score-first order.
func (s Selector) FindSimilar(opts ...func(*FindSimilarOptions)) Selectors {
	o := DefaultFindSimilarOptions()
	for _, fn := range opts {
		fn(&o)
	}

	anchorDepth := s.doc.depthOf(s.node)
	anchorAttrs := filteredAttrs(s.node, o.IgnoreAttributes)
	anchorText := normalizedDirectText(s.node)
	anchorParent := elementParentNode(s.node)
	anchorGrandparent := elementParentNode(anchorParent)

	var out Selectors
	for _, n := range s.doc.byIdx {
		if n == s.node {
			continue
		}
		if s.doc.depthOf(n) != anchorDepth {
			continue
		}
		if n.Data != s.node.Data {
			continue
		}
		parent := elementParentNode(n)
		if !sameTag(parent, anchorParent) {
			continue
		}
		if !sameTag(elementParentNode(parent), anchorGrandparent) {
			continue
		}

		score := fuzzy.Jaccard(filteredAttrs(n, o.IgnoreAttributes), anchorAttrs)
		if o.MatchText {
			textScore := fuzzy.TokenSetRatio(normalizedDirectText(n), anchorText)
			score = (score + textScore) / 2
		}
		if score < o.SimilarityThreshold {
			continue
		}
		out = append(out, Selector{doc: s.doc, node: n})
	}
	return out
}

func filteredAttrs(n *html.Node, ignore []string) map[string]string {
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}
	out := make(map[string]string)
	for _, a := range n.Attr {
		if skip[a.Key] {
			continue
		}
		out[a.Key] = a.Val
	}
	return out
}

func normalizedDirectText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func elementParentNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func sameTag(a, b *html.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Data == b.Data
}
