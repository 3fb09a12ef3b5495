package feedsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.sr.ht/~adrake/newsdex/pkg/model"
)

func TestParseFeedListPreservesOrder(t *testing.T) {
	const body = `<feedList>
<feed url="http://h1/a.xml" title="A"/>
<feed url="http://h1/b.xml" title="B"/>
</feedList>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewFeedListClient(srv.Client())
	entries, err := c.ParseFeedList(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ParseFeedList: unexpected error: %v", err)
	}

	want := []model.FeedEntry{
		{URL: "http://h1/a.xml", Title: "A"},
		{URL: "http://h1/b.xml", Title: "B"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestParseFeedListFatalOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewFeedListClient(srv.Client())
	if _, err := c.ParseFeedList(context.Background(), srv.URL); err == nil {
		t.Fatal("expected a list-fatal error for a 500 response")
	}
}

func TestParseFeedReturnsArticles(t *testing.T) {
	const body = `<rss><channel>
<item><title>Apple Harvest</title><link>http://h1/apple</link></item>
<item><title>Pear Season</title><link>http://h1/pear</link></item>
</channel></rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.Client())
	articles, err := c.ParseFeed(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ParseFeed: unexpected error: %v", err)
	}

	want := []model.Article{
		{Title: "Apple Harvest", URL: "http://h1/apple"},
		{Title: "Pear Season", URL: "http://h1/pear"},
	}
	if len(articles) != len(want) {
		t.Fatalf("expected %d articles, got %d: %+v", len(want), len(articles), articles)
	}
	for i := range want {
		if articles[i] != want[i] {
			t.Fatalf("article %d: expected %+v, got %+v", i, want[i], articles[i])
		}
	}
}

func TestParseFeedSkipsIncompleteItems(t *testing.T) {
	const body = `<rss><channel>
<item><title>No Link</title></item>
<item><link>http://h1/no-title</link></item>
<item><title>Complete</title><link>http://h1/complete</link></item>
</channel></rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.Client())
	articles, err := c.ParseFeed(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ParseFeed: unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Complete" {
		t.Fatalf("expected only the complete item to survive, got %+v", articles)
	}
}
