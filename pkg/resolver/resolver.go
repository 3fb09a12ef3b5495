// Package resolver implements the Duplicate-Title Resolver: a per-host
// map from article title to the canonical (Article, TokenList) pair,
// implementing the cross-mirror intersection rule of spec.md §4.3.
package resolver

import (
	"sync"

	"git.sr.ht/~adrake/newsdex/pkg/model"
)

type classEntry struct {
	article model.Article
	tokens  model.TokenList
}

// shard guards the title map for a single host. Sharding by host (rather
// than one coarse mutex for the whole resolver, as the reference design
// uses) preserves the single-writer-per-(host,title) invariant while
// reducing contention across unrelated hosts.
type shard struct {
	mu     sync.Mutex
	titles map[string]classEntry
}

// Resolver is the host -> title -> (Article, TokenList) equivalence-class
// table described in spec.md §3. The zero value is not usable; use New.
type Resolver struct {
	mu     sync.Mutex // guards only shard creation, never held during a merge
	shards map[string]*shard
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{shards: make(map[string]*shard)}
}

func (r *Resolver) shardFor(host string) *shard {
	r.mu.Lock()
	s, ok := r.shards[host]
	if !ok {
		s = &shard{titles: make(map[string]classEntry)}
		r.shards[host] = s
	}
	r.mu.Unlock()
	return s
}

// Merge folds one article's (already sorted) tokens into the equivalence
// class identified by (host, article.Title). If the class is new, the
// article and its tokens become canonical outright. Otherwise the
// canonical article becomes the lexicographically smaller of the two
// articles, and the canonical tokens become the multiset intersection of
// the two TokenLists (spec.md §4.3 step 7).
func (r *Resolver) Merge(host string, article model.Article, tokens model.TokenList) {
	s := r.shardFor(host)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.titles[article.Title]
	if !ok {
		s.titles[article.Title] = classEntry{article: article, tokens: tokens}
		return
	}

	s.titles[article.Title] = classEntry{
		article: model.MinArticle(existing.article, article),
		tokens:  model.IntersectTokens(existing.tokens, tokens),
	}
}

// Entry is a snapshot of one equivalence class, as consumed by the Index
// Builder after the crawl's join point.
type Entry struct {
	Article model.Article
	Tokens  model.TokenList
}

// Entries returns every equivalence class across every host. Intended to
// be called once, after the Crawl Coordinator's feed-worker barrier join,
// when no further Merge calls can occur.
func (r *Resolver) Entries() []Entry {
	r.mu.Lock()
	shards := make([]*shard, 0, len(r.shards))
	for _, s := range r.shards {
		shards = append(shards, s)
	}
	r.mu.Unlock()

	var out []Entry
	for _, s := range shards {
		s.mu.Lock()
		for _, e := range s.titles {
			out = append(out, Entry{Article: e.article, Tokens: e.tokens})
		}
		s.mu.Unlock()
	}
	return out
}
