package adaptive

import (
	"sort"

	"golang.org/x/net/html"

	"github.com/scrapling/core/internal/fuzzy"
)

// Candidate is a scored relocation result.
type Candidate struct {
	Node  *html.Node
	Score float64
}

// Weights are the §4.9 default scoring weights. They sum to 1.0 and are
// exposed as tunable constants, not as something a caller is required to
// set to get a usable result.
type Weights struct {
	OwnAttributes    float64
	OwnText          float64
	SiblingTags      float64
	PathTags         float64
	ParentAttributes float64
	ParentText       float64
	TagEquality      float64
}

// DefaultWeights matches the reference weight table in spec.md §4.9.
func DefaultWeights() Weights {
	return Weights{
		OwnAttributes:    0.25,
		OwnText:          0.15,
		SiblingTags:      0.15,
		PathTags:         0.15,
		ParentAttributes: 0.15,
		ParentText:       0.10,
		TagEquality:      0.05,
	}
}

// Relocate finds candidate nodes under root matching fp, ranked by
// score descending (ties broken by document order). It never errors:
// a root with no matching structural cohort, or none surviving the hard
// filters, simply yields no candidates, per spec.md §7.
func Relocate(fp Fingerprint, root *html.Node, weights ...Weights) []Candidate {
	w := DefaultWeights()
	if len(weights) > 0 {
		w = weights[0]
	}

	targetDepth := len(fp.PathTags)
	cohort := structuralCohort(root, targetDepth)
	if len(cohort) == 0 {
		// Widen to d±1 — an allowed, not required, heuristic.
		cohort = structuralCohort(root, targetDepth-1, targetDepth+1)
	}

	var out []Candidate
	for _, n := range cohort {
		if !hardFiltersPass(n, fp) {
			continue
		}
		out = append(out, Candidate{Node: n, Score: score(n, fp, w)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func structuralCohort(root *html.Node, depths ...int) []*html.Node {
	want := make(map[int]bool, len(depths))
	for _, d := range depths {
		if d >= 0 {
			want[d] = true
		}
	}
	if len(want) == 0 {
		return nil
	}
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && want[Depth(n)] {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// hardFiltersPass only enforces the parent-tag constraint from §4.9.
// The tag constraint is deliberately NOT enforced as a hard drop here:
// the spec's own worked structural-drift example (a saved <div> relocated
// onto an <article> after a markup rewrite) requires a surviving
// candidate whose tag differs from the fingerprint's. Tag match still
// counts — as the weighted TagEquality term in score() — it just isn't
// allowed to veto a candidate outright.
func hardFiltersPass(n *html.Node, fp Fingerprint) bool {
	if fp.ParentTag != "" {
		parent := elementParent(n)
		if parent == nil || fpTag(parent) != fp.ParentTag {
			return false
		}
	}
	return true
}

func fpTag(n *html.Node) string {
	return Build(n).Tag
}

func score(n *html.Node, fp Fingerprint, w Weights) float64 {
	candidate := Build(n)

	ownAttr := fuzzy.Jaccard(candidate.Attributes, fp.Attributes)
	ownText := fuzzy.TokenSetRatio(candidate.Text, fp.Text)
	siblings := fuzzy.SequenceRatio(candidate.SiblingTags, fp.SiblingTags)
	pathTags := fuzzy.SequenceRatio(candidate.PathTags, fp.PathTags)
	parentAttr := fuzzy.Jaccard(candidate.ParentAttributes, fp.ParentAttributes)
	parentText := fuzzy.TokenSetRatio(candidate.ParentText, fp.ParentText)
	tagEq := 0.0
	if candidate.Tag == fp.Tag {
		tagEq = 1.0
	}

	return w.OwnAttributes*ownAttr +
		w.OwnText*ownText +
		w.SiblingTags*siblings +
		w.PathTags*pathTags +
		w.ParentAttributes*parentAttr +
		w.ParentText*parentText +
		w.TagEquality*tagEq
}
