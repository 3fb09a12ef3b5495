// Package logging wraps the standard log package in the teacher's
// bracketed-component convention ("[crawl][worker] ..."), gating
// per-item progress/skip lines behind --verbose while always emitting
// failure and fatal lines (spec.md §6 CLI flags, §7 error handling).
package logging

import (
	"log"
	"os"
)

// Logger is safe for concurrent use; the underlying *log.Logger already
// serializes writes.
type Logger struct {
	verbose bool
	l       *log.Logger
}

// New returns a Logger writing to stderr. verbose controls whether
// per-item skip and begin lines are emitted; failures and the fatal
// line are always emitted regardless. No line is logged when a feed or
// article finishes successfully.
func New(verbose bool) *Logger {
	return &Logger{verbose: verbose, l: log.New(os.Stderr, "", log.LstdFlags)}
}

// FeedSkipped logs that a feed URL was already claimed by another worker.
func (lg *Logger) FeedSkipped(feedURL string) {
	if lg.verbose {
		lg.l.Printf("[crawl][feed] skipped (already seen): %s\n", feedURL)
	}
}

// ArticleSkipped logs that an article URL was already claimed.
func (lg *Logger) ArticleSkipped(articleURL string) {
	if lg.verbose {
		lg.l.Printf("[crawl][article] skipped (already seen): %s\n", articleURL)
	}
}

// FeedBegin logs that a feed worker is about to download and parse a feed.
func (lg *Logger) FeedBegin(feedURL, feedTitle string) {
	if lg.verbose {
		lg.l.Printf("[crawl][feed] downloading %q: %s\n", feedTitle, feedURL)
	}
}

// ArticleBegin logs that an article worker is about to fetch and tokenize
// an article.
func (lg *Logger) ArticleBegin(a, title string) {
	if lg.verbose {
		lg.l.Printf("[crawl][article] downloading %q: %s\n", title, a)
	}
}

// FeedFailure logs a feed-recoverable error. Never gated by --quiet: an
// operator should always see why a feed was skipped.
func (lg *Logger) FeedFailure(feedURL string, err error) {
	lg.l.Printf("[crawl][feed] download failure: %s: %v\n", feedURL, err)
}

// ArticleFailure logs an article-recoverable error.
func (lg *Logger) ArticleFailure(articleURL string, err error) {
	lg.l.Printf("[crawl][article] download failure: %s: %v\n", articleURL, err)
}

// Fatal logs a list-fatal error. The caller is expected to terminate the
// process with a non-zero exit status immediately after.
func (lg *Logger) Fatal(rootURL string, err error) {
	lg.l.Printf("[crawl][fatal] cannot obtain feed list %s: %v\n", rootURL, err)
}
