package scrapling

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"golang.org/x/net/html/atom"
)

// attrMatch is one parsed attribute constraint from a find_all mapping
// or kwargs argument: name with an optional trailing operator against
// value.
type attrMatch struct {
	name  string
	op    byte // 0, '*', '^', '$', '~'
	value string
}

// exprEnv is the restricted evaluation environment ExprPredicate
// expressions run against, mirroring chtml's pattern of compiling
// small user expressions against a fixed field set rather than the
// full Selector API.
type exprEnv struct {
	Tag     string
	Text    string
	Attrib  map[string]string
	Classes []string
}

// ExprPredicate compiles source (an expr-lang expression evaluating to
// bool against the fields Tag, Text, Attrib and Classes) into a find_all
// predicate. It is
// an additive convenience over passing a func(Selector) bool directly —
// useful when filter criteria arrive as data (e.g. from a config file)
// rather than as Go code.
func ExprPredicate(source string) (func(Selector) bool, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("scrapling: compile expr predicate: %w", err)
	}
	return func(s Selector) bool {
		env := exprEnv{
			Tag:     s.Tag(),
			Text:    s.Text().String(),
			Attrib:  s.Attrib().Map(),
			Classes: s.Attrib().classTokens(),
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return false
		}
		b, _ := out.(bool)
		return b
	}, nil
}

// FindAll implements the waterfall filter pipeline of spec.md §4.5.
// Arguments are classified by type, not by position:
//
//	string / []string          -> tag-name set
//	map[string]string          -> attribute-match set (operator suffixes on keys)
//	*regexp.Regexp / RegexLike  -> direct-text regex filter
//	func(Selector) bool         -> predicate filter
//
// Stages run fixed-order: tag -> attribute -> regex -> predicate, each
// over the previous stage's surviving candidates. kwargs is merged into
// the attribute-match set first, with a trailing "_" stripped from each
// key (Go has no reserved-word collision, but kwargs is kept for
// parity with call sites translating from a kwargs-shaped config).
func (s Selector) FindAll(args []any, kwargs map[string]string) (Selectors, error) {
	var tags []string
	var attrs []attrMatch
	var regexes []*regexp.Regexp
	var predicates []func(Selector) bool

	for k, v := range kwargs {
		attrs = append(attrs, parseAttrMatch(strings.TrimSuffix(k, "_"), v))
	}

	for _, a := range args {
		switch v := a.(type) {
		case string:
			tags = append(tags, v)
		case []string:
			tags = append(tags, v...)
		case map[string]string:
			for k, val := range v {
				attrs = append(attrs, parseAttrMatch(k, val))
			}
		case *regexp.Regexp:
			regexes = append(regexes, v)
		case RegexLike:
			re, err := toRegex(v, true)
			if err != nil {
				return nil, err
			}
			regexes = append(regexes, re)
		case func(Selector) bool:
			predicates = append(predicates, v)
		default:
			return nil, fmt.Errorf("scrapling: find_all: unsupported argument type %T", a)
		}
	}

	candidates := s.BelowElements()

	if len(tags) > 0 {
		// Known HTML tag names resolve to an atom.Atom once up front;
		// matching becomes an integer comparison for the common case
		// instead of a string comparison per candidate. Custom/unknown
		// elements (atom.Atom zero value) fall back to the string set.
		atomSet := make(map[atom.Atom]bool, len(tags))
		tagSet := make(map[string]bool, len(tags))
		for _, t := range tags {
			if a := atom.Lookup([]byte(t)); a != 0 {
				atomSet[a] = true
			} else {
				tagSet[t] = true
			}
		}
		matches := func(sel Selector) bool {
			if a := sel.node.DataAtom; a != 0 {
				return atomSet[a]
			}
			return tagSet[sel.Tag()]
		}

		// The root-handle invocation also tests itself, not just its
		// descendants, matching css(tag)'s self-inclusive match (spec.md
		// §4.5 step 1, §8.3).
		tagCandidates := candidates
		if s.isRoot() {
			tagCandidates = append(Selectors{s}, candidates...)
		}
		candidates = filterSelectors(tagCandidates, matches)
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	if len(attrs) > 0 {
		candidates = filterSelectors(candidates, func(sel Selector) bool {
			for _, m := range attrs {
				if !matchAttr(sel, m) {
					return false
				}
			}
			return true
		})
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	if len(regexes) > 0 {
		candidates = filterSelectors(candidates, func(sel Selector) bool {
			text := sel.Text().String()
			for _, re := range regexes {
				if !re.MatchString(text) {
					return false
				}
			}
			return true
		})
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	if len(predicates) > 0 {
		candidates = filterSelectors(candidates, func(sel Selector) bool {
			for _, p := range predicates {
				if !p(sel) {
					return false
				}
			}
			return true
		})
	}

	return candidates, nil
}

// Find is FindAll but returns only the first match.
func (s Selector) Find(args []any, kwargs map[string]string) (Selector, bool, error) {
	all, err := s.FindAll(args, kwargs)
	if err != nil {
		return Selector{}, false, err
	}
	if len(all) == 0 {
		return Selector{}, false, nil
	}
	return all[0], true, nil
}

func filterSelectors(in Selectors, keep func(Selector) bool) Selectors {
	out := make(Selectors, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func parseAttrMatch(name, value string) attrMatch {
	if name == "" {
		return attrMatch{name: name, value: value}
	}
	last := name[len(name)-1]
	switch last {
	case '*', '^', '$', '~':
		return attrMatch{name: name[:len(name)-1], op: last, value: value}
	default:
		return attrMatch{name: name, value: value}
	}
}

func matchAttr(sel Selector, m attrMatch) bool {
	got, ok := sel.Attrib().Get(m.name)
	if !ok {
		return false
	}
	v := got.String()
	switch m.op {
	case '*':
		return strings.Contains(v, m.value)
	case '^':
		return strings.HasPrefix(v, m.value)
	case '$':
		return strings.HasSuffix(v, m.value)
	case '~':
		for _, tok := range strings.Fields(v) {
			if tok == m.value {
				return true
			}
		}
		return false
	default:
		return v == m.value
	}
}
