package scrapling

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// TextHandler is a string subtype returned wherever the core produces
// textual content. Every string operation the core performs on it
// (slice, split, replace, trim, concatenation) keeps returning
// TextHandler so chaining stays type-stable.
type TextHandler string

// String returns the plain string value.
func (t TextHandler) String() string { return string(t) }

// MarshalJSON makes TextHandler transparent to encoding/json.
func (t TextHandler) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// reCache memoizes compiled patterns keyed by (source, caseSensitive).
var reCache sync.Map

type reCacheKey struct {
	pattern       string
	caseSensitive bool
}

func compileRegex(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	key := reCacheKey{pattern, caseSensitive}
	if v, ok := reCache.Load(key); ok {
		return v.(*regexp.Regexp), nil
	}
	src := pattern
	if !caseSensitive {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	reCache.Store(key, re)
	return re, nil
}

// RegexLike is satisfied by *regexp.Regexp and by any user type that
// wraps a pattern source (e.g. for pre-flagged expressions). It lets Re
// and find_all's regex filter accept either a plain string pattern or an
// already-compiled regex.
type RegexLike interface {
	String() string
}

// toRegex resolves a pattern argument (string, *regexp.Regexp, or any
// RegexLike) into a compiled, cached regex.
func toRegex(pattern any, caseSensitive bool) (*regexp.Regexp, error) {
	switch p := pattern.(type) {
	case *regexp.Regexp:
		if caseSensitive {
			return p, nil
		}
		return compileRegex(p.String(), caseSensitive)
	case string:
		return compileRegex(p, caseSensitive)
	case RegexLike:
		return compileRegex(p.String(), caseSensitive)
	default:
		return nil, fmt.Errorf("scrapling: unsupported regex argument type %T", pattern)
	}
}

// ReOptions configures TextHandler.Re / TextHandler.ReFirst.
type ReOptions struct {
	ReplaceEntities bool
	CleanMatch      bool
	CaseSensitive   bool
}

// DefaultReOptions matches the spec's documented defaults:
// replace_entities=True, clean_match=False, case_sensitive=True.
func DefaultReOptions() ReOptions {
	return ReOptions{ReplaceEntities: true, CaseSensitive: true}
}

// Re runs pattern against the underlying text and returns every
// non-overlapping match. A pattern with no capture groups yields the
// whole match; one group yields group 1; more than one group still
// yields only group 1.
func (t TextHandler) Re(pattern any, opts ...func(*ReOptions)) (TextHandlers, error) {
	o := DefaultReOptions()
	for _, fn := range opts {
		fn(&o)
	}

	re, err := toRegex(pattern, o.CaseSensitive)
	if err != nil {
		return nil, err
	}

	src := string(t)
	if o.ReplaceEntities {
		src = html.UnescapeString(src)
	}
	if o.CleanMatch {
		src = collapseWhitespace(src)
	}

	matches := re.FindAllStringSubmatch(src, -1)
	out := make(TextHandlers, 0, len(matches))
	for _, m := range matches {
		switch {
		case len(m) <= 1:
			out = append(out, TextHandler(m[0]))
		default:
			out = append(out, TextHandler(m[1]))
		}
	}
	return out, nil
}

// ReFirst is Re but returns only the first match, or nil if there is
// none.
func (t TextHandler) ReFirst(pattern any, opts ...func(*ReOptions)) (*TextHandler, error) {
	all, err := t.Re(pattern, opts...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

// WithReplaceEntities toggles HTML-entity decoding before matching.
func WithReplaceEntities(v bool) func(*ReOptions) {
	return func(o *ReOptions) { o.ReplaceEntities = v }
}

// WithCleanMatch toggles whitespace collapsing before matching.
func WithCleanMatch(v bool) func(*ReOptions) {
	return func(o *ReOptions) { o.CleanMatch = v }
}

// WithCaseSensitive toggles case-sensitive matching.
func WithCaseSensitive(v bool) func(*ReOptions) {
	return func(o *ReOptions) { o.CaseSensitive = v }
}

// JSON parses the text as JSON into a generic any (map/slice/scalar).
func (t TextHandler) JSON() (any, error) {
	var v any
	if err := json.Unmarshal([]byte(t), &v); err != nil {
		return nil, &JSONDecodeError{Source: string(t), Err: err}
	}
	return v, nil
}

// Clean strips leading/trailing whitespace and collapses internal
// whitespace runs to a single space, optionally decoding HTML entities
// first.
func (t TextHandler) Clean(removeEntities ...bool) TextHandler {
	s := string(t)
	if len(removeEntities) > 0 && removeEntities[0] {
		s = html.UnescapeString(s)
	}
	return TextHandler(collapseWhitespace(s))
}

// Sort returns the characters of the text sorted.
func (t TextHandler) Sort(reverse ...bool) TextHandler {
	runes := []rune(string(t))
	rev := len(reverse) > 0 && reverse[0]
	sort.Slice(runes, func(i, j int) bool {
		if rev {
			return runes[i] > runes[j]
		}
		return runes[i] < runes[j]
	})
	return TextHandler(string(runes))
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// TextHandlers is an ordered collection of TextHandler values.
type TextHandlers []TextHandler

// Re flattens .Re over every element, concatenating results in order.
func (ts TextHandlers) Re(pattern any, opts ...func(*ReOptions)) (TextHandlers, error) {
	var out TextHandlers
	for _, t := range ts {
		r, err := t.Re(pattern, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, r...)
	}
	return out, nil
}

// ReFirst returns the first non-empty match produced by any element, in
// order.
func (ts TextHandlers) ReFirst(pattern any, opts ...func(*ReOptions)) (*TextHandler, error) {
	for _, t := range ts {
		r, err := t.ReFirst(pattern, opts...)
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}
	return nil, nil
}

// Strings returns the plain-string contents, for interop with code that
// wants []string rather than TextHandlers.
func (ts TextHandlers) Strings() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
