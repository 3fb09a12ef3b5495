package dedup

import (
	"sync"
	"testing"
)

func TestClaimFeedFirstWriterWins(t *testing.T) {
	r := NewRegistry()
	if !r.ClaimFeed("http://h/f.xml") {
		t.Fatal("ClaimFeed: first claim should succeed")
	}
	if r.ClaimFeed("http://h/f.xml") {
		t.Fatal("ClaimFeed: second claim of the same url should fail")
	}
}

func TestClaimArticleIndependentOfFeeds(t *testing.T) {
	r := NewRegistry()
	if !r.ClaimArticle("http://h/a") {
		t.Fatal("ClaimArticle: first claim should succeed")
	}
	if !r.ClaimFeed("http://h/a") {
		t.Fatal("ClaimFeed: feed and article sets must be independent")
	}
}

func TestClaimFeedConcurrentExactlyOneWinner(t *testing.T) {
	r := NewRegistry()
	const n = 50
	var wg sync.WaitGroup
	wins := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i] = r.ClaimFeed("http://h/dup.xml")
		}(i)
	}
	wg.Wait()

	count := 0
	for _, w := range wins {
		if w {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one winner among %d concurrent claims, got %d", n, count)
	}
}
