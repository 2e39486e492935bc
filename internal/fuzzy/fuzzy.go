// Package fuzzy holds the string/sequence similarity primitives shared by
// Selector.FindSimilar (in-document cohort discovery) and the adaptive
// relocator's candidate scoring (cross-document fingerprint matching).
// Both are described by the spec as using "the same scoring family" —
// this package is where that family actually lives, grounded on
// github.com/agnivade/levenshtein for the edit-distance primitive.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Ratio is a Levenshtein-distance similarity normalized to [0,1]: 1.0
// for identical strings, 0.0 when the edit distance equals the longer
// string's length.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// TokenSetRatio compares two strings as whitespace-separated token sets:
// case- and order-insensitive, with duplicate tokens ignored; it is the
// Ratio of the two sorted, space-joined token lists, so tokens present in
// only one string still lower the score. It is used for
// direct-text comparisons, where word order drift (e.g. "Price: $10" vs
// "$10 — Price") shouldn't tank the score the way a raw edit distance
// would.
func TokenSetRatio(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}
	sortedA := strings.Join(sortedKeys(ta), " ")
	sortedB := strings.Join(sortedKeys(tb), " ")
	return Ratio(sortedA, sortedB)
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(s)) {
		out[f] = struct{}{}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Jaccard returns the Jaccard similarity of two (name,value) pair sets,
// represented as maps, plus the fuzzy ratio on their concatenated
// "name=value" strings, averaged — the "own attribute set" / "parent
// attribute set" metric from the relocator's scoring table.
func Jaccard(a, b map[string]string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	pairs := func(m map[string]string) map[string]struct{} {
		out := make(map[string]struct{}, len(m))
		for k, v := range m {
			out[k+"="+v] = struct{}{}
		}
		return out
	}
	pa, pb := pairs(a), pairs(b)

	inter := 0
	for k := range pa {
		if _, ok := pb[k]; ok {
			inter++
		}
	}
	union := len(pa) + len(pb) - inter
	jaccard := 1.0
	if union > 0 {
		jaccard = float64(inter) / float64(union)
	}

	concatRatio := Ratio(joinPairs(pa), joinPairs(pb))

	return (jaccard + concatRatio) / 2
}

func joinPairs(pairs map[string]struct{}) string {
	keys := sortedKeys(pairs)
	return strings.Join(keys, "&")
}

// SequenceRatio returns a longest-common-subsequence ratio between two
// ordered string sequences: 2*lcsLen / (len(a)+len(b)). Used for the
// sibling-tag and path-tag sequence comparisons.
func SequenceRatio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	lcs := lcsLength(a, b)
	return 2 * float64(lcs) / float64(len(a)+len(b))
}

func lcsLength(a, b []string) int {
	rows, cols := len(a)+1, len(b)+1
	dp := make([][]int, rows)
	for i := range dp {
		dp[i] = make([]int, cols)
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp[rows-1][cols-1]
}
