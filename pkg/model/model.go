// Package model holds the data types shared across the crawl pipeline:
// Article, FeedEntry and the sorted, duplicate-preserving TokenList used
// to drive the mirror-intersection rule.
package model

import "sort"

// Article is an immutable (title, url) pair. Articles are ordered by the
// pair (title, url) lexicographically; the smaller is preferred when
// resolving duplicates across mirror feeds.
type Article struct {
	Title string
	URL   string
}

// Less reports whether a sorts before b under (title, url) lex order.
func (a Article) Less(b Article) bool {
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.URL < b.URL
}

// MinArticle returns the lexicographically smaller of a and b.
func MinArticle(a, b Article) Article {
	if b.Less(a) {
		return b
	}
	return a
}

// FeedEntry pairs a feed URL with its human-readable title. The title is
// carried through for logging only and never affects indexing.
type FeedEntry struct {
	URL   string
	Title string
}

// TokenList is a sequence of lower-cased, non-empty word tokens. Sorted
// returns it in ascending order with duplicates preserved; sortedness is
// the invariant the two-pointer intersection in IntersectTokens relies on.
type TokenList []string

// Sorted returns a sorted copy of t. Duplicates are preserved.
func (t TokenList) Sorted() TokenList {
	out := make(TokenList, len(t))
	copy(out, t)
	sort.Strings(out)
	return out
}

// IntersectTokens computes the multiset intersection of two sorted token
// lists via a standard two-pointer merge: a token is kept once for every
// pairing found in both lists, so duplicates that exceed the count present
// in the other list are dropped.
func IntersectTokens(a, b TokenList) TokenList {
	out := make(TokenList, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
