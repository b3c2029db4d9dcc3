// Package match scores client names against a free-text query using
// normalized Levenshtein edit distance. This backs the client search
// endpoint; names are compared case-insensitively with whitespace and
// punctuation removed, so "삼성전자" matches "삼성전자(주)" well above
// the cutoff.
package match

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Threshold is the minimum score a candidate needs to appear in results.
const Threshold = 60

// MaxResults caps how many candidates a search returns.
const MaxResults = 10

// Normalize lowercases s and removes whitespace, punctuation, and symbol
// runes. Corporate designators like "(주)" reduce to a single letter instead
// of three edits, which keeps short-name variants above the threshold. Same
// idea as the job-suffix stripping in rowcodec.NormalizeName.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Score returns a similarity in [0,100]. Identical normalized strings score
// 100; if either normalized operand is empty the score is 0. The score is
// symmetric in its arguments.
func Score(a, b string) int {
	na := []rune(Normalize(a))
	nb := []rune(Normalize(b))
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}
	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	dist := levenshtein(na, nb)
	return int(math.Round(100 * float64(maxLen-dist) / float64(maxLen)))
}

// levenshtein is the standard DP edit-distance table of size
// (len(a)+1) x (len(b)+1), kept as two rolling rows.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Result pairs a candidate index with its score.
type Result struct {
	Index int
	Score int
}

// Rank scores every candidate against the query, drops those below
// Threshold, sorts descending by score with ties broken by original order,
// and truncates to MaxResults.
func Rank(query string, candidates []string) []Result {
	var out []Result
	for i, c := range candidates {
		if s := Score(query, c); s >= Threshold {
			out = append(out, Result{Index: i, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}
