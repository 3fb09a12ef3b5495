// Package index implements the Index Builder (spec.md §4.4): a
// single-threaded fold of the frozen DuplicateResolver into the public,
// read-only token -> articles reverse index.
package index

import (
	"sort"
	"strings"

	"git.sr.ht/~adrake/newsdex/pkg/model"
	"git.sr.ht/~adrake/newsdex/pkg/resolver"
)

// ArticleCount pairs an article with how many times a given token
// occurred in its (post-intersection) token list.
type ArticleCount struct {
	Article model.Article
	Count   int
}

// Index is the frozen token -> []ArticleCount reverse index. It is built
// once, after the crawl's feed-worker barrier join, and is safe for
// concurrent read-only use by the Query Engine thereafter.
type Index struct {
	tokens map[string][]ArticleCount
}

// Build folds every resolver entry into a reverse index: for every token
// in an entry's TokenList, the (token, Article) occurrence count is
// incremented once per occurrence, so a token appearing k times in an
// article contributes k to its count. Each token's article list is then
// sorted by count descending, then Article ascending.
func Build(entries []resolver.Entry) *Index {
	counts := make(map[string]map[model.Article]int)
	for _, e := range entries {
		for _, tok := range e.Tokens {
			perArticle, ok := counts[tok]
			if !ok {
				perArticle = make(map[model.Article]int)
				counts[tok] = perArticle
			}
			perArticle[e.Article]++
		}
	}

	idx := &Index{tokens: make(map[string][]ArticleCount, len(counts))}
	for tok, perArticle := range counts {
		list := make([]ArticleCount, 0, len(perArticle))
		for a, c := range perArticle {
			list = append(list, ArticleCount{Article: a, Count: c})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Count != list[j].Count {
				return list[i].Count > list[j].Count
			}
			return list[i].Article.Less(list[j].Article)
		})
		idx.tokens[tok] = list
	}
	return idx
}

// TokenCount reports how many distinct tokens the index holds. Used only
// for crawl-history bookkeeping, not by the query path.
func (idx *Index) TokenCount() int {
	return len(idx.tokens)
}

// GetMatchingArticles lower-cases and trims term and returns the sorted
// article list stored under that exact token, or nil if absent. There is
// no partial/substring matching.
func (idx *Index) GetMatchingArticles(term string) []ArticleCount {
	term = strings.ToLower(strings.TrimSpace(term))
	return idx.tokens[term]
}
