// Package search ranks symbol and broker names against a partial query.
package search

import (
	"sort"
	"strings"
)

// Match scores.
const (
	ScoreExact       = 1000
	ScorePrefix      = 900
	ScoreSubstring   = 800
	ScoreSubsequence = 500
)

// MaxResults caps the number of ranked results.
const MaxResults = 10

// Result is one ranked item.
type Result[T any] struct {
	Item  T   `json:"item"`
	Score int `json:"score"`
}

// Score compares query and candidate case-insensitively. It returns 0 when
// the candidate does not match at all.
func Score(query, candidate string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(candidate)
	switch {
	case q == "":
		return 0
	case c == q:
		return ScoreExact
	case strings.HasPrefix(c, q):
		return ScorePrefix
	case strings.Contains(c, q):
		return ScoreSubstring
	case isSubsequence(q, c):
		return ScoreSubsequence
	}
	return 0
}

func isSubsequence(q, c string) bool {
	qr := []rune(q)
	i := 0
	for _, r := range c {
		if i < len(qr) && r == qr[i] {
			i++
		}
	}
	return i == len(qr)
}

// Rank scores every item by the key returned from key, drops non-matches
// and returns at most MaxResults items by descending score. Ties keep the
// input order. An empty query yields no results.
func Rank[T any](items []T, query string, key func(T) string) []Result[T] {
	out := []Result[T]{}
	if strings.TrimSpace(query) == "" {
		return out
	}
	for _, it := range items {
		if s := Score(query, key(it)); s > 0 {
			out = append(out, Result[T]{Item: it, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// RankStrings is Rank over plain strings.
func RankStrings(items []string, query string) []Result[string] {
	return Rank(items, query, func(s string) string { return s })
}
