package feedsource

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"

	"git.sr.ht/~adrake/newsdex/pkg/model"
)

// rssDoc is the wire format for an individual feed: RSS 2.0's
// <rss><channel><item><title/><link/></item>...
type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
			Link  string `xml:"link"`
		} `xml:"item"`
	} `xml:"channel"`
}

// FeedClient fetches and parses an individual RSS feed.
type FeedClient struct {
	HTTPClient *http.Client
}

// NewFeedClient returns a FeedClient that fetches feeds over plain HTTP.
func NewFeedClient(client *http.Client) *FeedClient {
	return &FeedClient{HTTPClient: client}
}

// ParseFeed fetches feedURL and returns its articles in document order,
// or a feed-recoverable error per spec.md §7.
func (c *FeedClient) ParseFeed(ctx context.Context, feedURL string) ([]model.Article, error) {
	body, err := fetch(ctx, c.HTTPClient, feedURL)
	if err != nil {
		return nil, fmt.Errorf("feedsource: fetch feed %s: %w", feedURL, err)
	}

	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("feedsource: parse feed %s: %w", feedURL, err)
	}

	articles := make([]model.Article, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		articles = append(articles, model.Article{Title: item.Title, URL: item.Link})
	}
	return articles, nil
}
