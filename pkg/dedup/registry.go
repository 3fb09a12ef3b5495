// Package dedup implements the process-wide registry of already-claimed
// feed and article URLs (spec.md §3 SeenFeedURLs/SeenArticleURLs).
package dedup

import "sync"

// Registry guards two permanent sets with a single mutex, held only for
// the duration of a membership check plus an insertion, never across I/O.
type Registry struct {
	mu       sync.Mutex
	feeds    map[string]struct{}
	articles map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		feeds:    make(map[string]struct{}),
		articles: make(map[string]struct{}),
	}
}

// ClaimFeed atomically checks and inserts url into SeenFeedURLs. It
// reports true if the caller is the first to claim url (and so should
// proceed with the download); false means some other worker already
// claimed it and the caller must skip it.
func (r *Registry) ClaimFeed(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.feeds[url]; seen {
		return false
	}
	r.feeds[url] = struct{}{}
	return true
}

// ClaimArticle is ClaimFeed's counterpart for SeenArticleURLs. Claiming
// happens before any network I/O, so a failed download still consumes
// the slot and is not retried within the same crawl.
func (r *Registry) ClaimArticle(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.articles[url]; seen {
		return false
	}
	r.articles[url] = struct{}{}
	return true
}
