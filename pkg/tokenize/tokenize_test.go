package tokenize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenizeLowercasesAndStripsPunctuation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>ignored</title></head><body>
			<h1>Apple, Pear!</h1>
			<p>Apple season is here -- don't miss it.</p>
			<script>var x = "ignored script text";</script>
		</body></html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client())
	tokens, err := c.Tokenize(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Tokenize: unexpected error: %v", err)
	}

	counts := map[string]int{}
	for _, tok := range tokens {
		counts[tok]++
	}
	if counts["apple"] != 2 {
		t.Fatalf("expected apple to appear twice, got counts=%v tokens=%v", counts, tokens)
	}
	if counts["ignored"] != 0 {
		t.Fatalf("expected script contents to be excluded, got counts=%v", counts)
	}
	for _, tok := range tokens {
		if tok == "" {
			t.Fatal("expected no empty tokens")
		}
	}
}

func TestTokenizeFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.Client())
	if _, err := c.Tokenize(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an article-recoverable error for a 404 response")
	}
}
