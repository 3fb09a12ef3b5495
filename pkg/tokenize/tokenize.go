// Package tokenize implements the Tokenizer / Document Fetcher external
// collaborator of spec.md §6: it turns an article URL into a sequence
// of lower-cased, punctuation-stripped, non-empty tokens, or an
// article-recoverable error. Encoding transcoding follows the teacher's
// convertToString (pkg/gparse/gparse.go); body extraction follows
// V4T54L-go-crawler's goquery-based extractor.
package tokenize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/elektito/whatlanggo"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// Client fetches an article and tokenizes its body.
type Client struct {
	HTTPClient *http.Client

	// OnLanguageDetected, if set, receives the best-effort language tag
	// whatlanggo detects for each successfully fetched article. It is
	// purely a logging hook: spec.md §3 explicitly excludes language
	// from affecting indexing.
	OnLanguageDetected func(articleURL, lang string)
}

// NewClient returns a Client using client for transport.
func NewClient(client *http.Client) *Client {
	return &Client{HTTPClient: client}
}

// Tokenize fetches articleURL and returns its lower-cased, non-empty
// word tokens in document order (duplicates retained; sorting happens
// later, in the Article Worker), or an article-recoverable error.
func (c *Client) Tokenize(ctx context.Context, articleURL string) ([]string, error) {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("tokenize: build request for %s: %w", articleURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokenize: fetch %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokenize: %s: unexpected status %s", articleURL, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tokenize: read body of %s: %w", articleURL, err)
	}

	text, err := convertToUTF8(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("tokenize: decode %s: %w", articleURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("tokenize: parse html of %s: %w", articleURL, err)
	}
	doc.Find("script, style").Remove()
	body := doc.Find("body").Text()
	if strings.TrimSpace(body) == "" {
		body = doc.Text()
	}

	if c.OnLanguageDetected != nil {
		info := whatlanggo.Detect(body)
		c.OnLanguageDetected(articleURL, info.Lang.String())
	}

	return extractTokens(body), nil
}

// convertToUTF8 transcodes raw to UTF-8 using the encoding declared in
// contentType or sniffed from the body, matching the teacher's
// convertToString.
func convertToUTF8(raw []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(raw, contentType)
	reader := transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(out), ""), nil
}

// extractTokens lower-cases text and splits it into contiguous runs of
// ASCII letters and digits ([a-z0-9]), discarding punctuation, non-ASCII
// characters and empty matches.
func extractTokens(text string) []string {
	matches := wordRe.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if m != "" {
			tokens = append(tokens, m)
		}
	}
	return tokens
}
