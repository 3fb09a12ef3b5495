// Package crawl implements the Crawl Coordinator, Feed Worker and Article
// Worker of spec.md §4: the three-level fan-out from one feed list to many
// feeds to many articles, bounded by the FeedBudget/ArticleBudget/
// PerHostBudget semaphores, deduped through the Dedup Registry, and folded
// into an Index through the Duplicate-Title Resolver.
//
// This mirrors cmd/gemplex/crawl.go's worker-pool-plus-waitgroup shape,
// generalized from the teacher's single global concurrency cap to the
// three nested budgets spec.md §4.1 requires.
package crawl

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"git.sr.ht/~adrake/newsdex/pkg/admission"
	"git.sr.ht/~adrake/newsdex/pkg/dedup"
	"git.sr.ht/~adrake/newsdex/pkg/index"
	"git.sr.ht/~adrake/newsdex/pkg/logging"
	"git.sr.ht/~adrake/newsdex/pkg/metrics"
	"git.sr.ht/~adrake/newsdex/pkg/model"
	"git.sr.ht/~adrake/newsdex/pkg/resolver"
	"git.sr.ht/~adrake/newsdex/pkg/urlutil"
)

// FeedListSource is the Feed-List Parser external collaborator
// (spec.md §6). A non-nil error is always list-fatal.
type FeedListSource interface {
	ParseFeedList(ctx context.Context, rootURL string) ([]model.FeedEntry, error)
}

// FeedSource is the Feed Parser external collaborator. A non-nil error
// is always feed-recoverable.
type FeedSource interface {
	ParseFeed(ctx context.Context, feedURL string) ([]model.Article, error)
}

// Tokenizer is the Tokenizer / Document Fetcher external collaborator.
// A non-nil error is always article-recoverable.
type Tokenizer interface {
	Tokenize(ctx context.Context, articleURL string) ([]string, error)
}

// Budgets holds the three concurrency caps of spec.md §4.1. The zero
// value is not usable; callers should start from DefaultBudgets.
type Budgets struct {
	FeedBudget    int64
	ArticleBudget int64
	PerHostBudget int64
}

// DefaultBudgets returns the hardcoded defaults spec.md §4.1 mandates.
func DefaultBudgets() Budgets {
	return Budgets{FeedBudget: 6, ArticleBudget: 24, PerHostBudget: 8}
}

// Coordinator owns the Dedup Registry, Server Admission Controller and
// Duplicate-Title Resolver for a single crawl, and drives the feed and
// article workers over them.
type Coordinator struct {
	feedListSrc FeedListSource
	feedSrc     FeedSource
	tokenizer   Tokenizer
	logger      *logging.Logger

	feedSem    *semaphore.Weighted
	articleSem *semaphore.Weighted

	dedup     *dedup.Registry
	admission *admission.Map
	resolver  *resolver.Resolver

	// feedsFetched and articlesFetched count successful (not skipped,
	// not failed) downloads, for pkg/history's run-summary bookkeeping.
	feedsFetched    int64
	articlesFetched int64
}

// New returns a Coordinator wired to the given external collaborators
// and budgets. logger must not be nil; use logging.New(false) for a
// quiet default.
func New(feedListSrc FeedListSource, feedSrc FeedSource, tokenizer Tokenizer, logger *logging.Logger, budgets Budgets) *Coordinator {
	return &Coordinator{
		feedListSrc: feedListSrc,
		feedSrc:     feedSrc,
		tokenizer:   tokenizer,
		logger:      logger,
		feedSem:     semaphore.NewWeighted(budgets.FeedBudget),
		articleSem:  semaphore.NewWeighted(budgets.ArticleBudget),
		dedup:       dedup.NewRegistry(),
		admission:   admission.NewMap(budgets.PerHostBudget),
		resolver:    resolver.New(),
	}
}

// Crawl runs the entire fetch-dedup-fold pipeline of spec.md §4.1 and
// returns the frozen Index, or a *ListFatalError if the root feed list
// could not be obtained or parsed.
func (c *Coordinator) Crawl(ctx context.Context, rootURL string) (*index.Index, error) {
	entries, err := c.feedListSrc.ParseFeedList(ctx, rootURL)
	if err != nil {
		c.logger.Fatal(rootURL, err)
		return nil, &ListFatalError{RootURL: rootURL, Err: err}
	}

	var wg sync.WaitGroup
	for _, entry := range entries {
		entry := entry

		if err := c.feedSem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		metrics.FeedsInFlight.Inc()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer metrics.FeedsInFlight.Dec()
			defer c.feedSem.Release(1)
			c.runFeedWorker(ctx, entry)
		}()
	}
	wg.Wait()

	idx := index.Build(c.resolver.Entries())
	return idx, nil
}

// FeedCount reports how many feeds were successfully downloaded and
// parsed during the most recent Crawl (skipped and failed feeds are
// not counted).
func (c *Coordinator) FeedCount() int {
	return int(atomic.LoadInt64(&c.feedsFetched))
}

// ArticleCount reports how many articles were successfully downloaded,
// tokenized, and merged into the resolver during the most recent Crawl.
func (c *Coordinator) ArticleCount() int {
	return int(atomic.LoadInt64(&c.articlesFetched))
}

// runFeedWorker implements spec.md §4.2. FeedBudget is released by the
// caller's deferred Release only after this function returns, which is
// itself only after every article worker it launched has joined — this
// is what makes FeedBudget cap "feeds with articles in flight," not just
// "feeds currently downloading."
func (c *Coordinator) runFeedWorker(ctx context.Context, entry model.FeedEntry) {
	feedURL, err := urlutil.Normalize(entry.URL)
	if err != nil {
		c.logger.FeedFailure(entry.URL, &FeedRecoverableError{FeedURL: entry.URL, Err: err})
		metrics.FeedFailures.Inc()
		return
	}

	if !c.dedup.ClaimFeed(feedURL) {
		c.logger.FeedSkipped(feedURL)
		metrics.FeedSkips.Inc()
		return
	}

	c.logger.FeedBegin(feedURL, entry.Title)
	articles, err := c.feedSrc.ParseFeed(ctx, feedURL)
	if err != nil {
		c.logger.FeedFailure(feedURL, &FeedRecoverableError{FeedURL: feedURL, Err: err})
		metrics.FeedFailures.Inc()
		return
	}
	atomic.AddInt64(&c.feedsFetched, 1)

	var wg sync.WaitGroup
	for _, article := range articles {
		article := article

		if err := c.articleSem.Acquire(ctx, 1); err != nil {
			break
		}
		metrics.ArticlesInFlight.Inc()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer metrics.ArticlesInFlight.Dec()
			defer c.articleSem.Release(1)
			c.runArticleWorker(ctx, article)
		}()
	}
	wg.Wait()
}

// runArticleWorker implements spec.md §4.3.
func (c *Coordinator) runArticleWorker(ctx context.Context, article model.Article) {
	articleURL, err := urlutil.Normalize(article.URL)
	if err != nil {
		c.logger.ArticleFailure(article.URL, &ArticleRecoverableError{ArticleURL: article.URL, Err: err})
		metrics.ArticleFailures.Inc()
		return
	}
	article.URL = articleURL

	if !c.dedup.ClaimArticle(article.URL) {
		c.logger.ArticleSkipped(article.URL)
		metrics.ArticleSkips.Inc()
		return
	}

	host, err := urlutil.ServerOf(article.URL)
	if err != nil {
		c.logger.ArticleFailure(article.URL, &ArticleRecoverableError{ArticleURL: article.URL, Err: err})
		metrics.ArticleFailures.Inc()
		return
	}

	if err := c.admission.Acquire(ctx, host); err != nil {
		return
	}
	metrics.HostsInFlight.WithLabelValues(host).Inc()

	c.logger.ArticleBegin(article.URL, article.Title)
	tokens, err := c.tokenizer.Tokenize(ctx, article.URL)

	// PerHostBudget is released immediately once the tokenizer returns:
	// the tokens are already in memory, and everything left is CPU/lock
	// work rather than network I/O (spec.md §4.3 step 5).
	c.admission.Release(host)
	metrics.HostsInFlight.WithLabelValues(host).Dec()

	if err != nil {
		c.logger.ArticleFailure(article.URL, &ArticleRecoverableError{ArticleURL: article.URL, Err: err})
		metrics.ArticleFailures.Inc()
		return
	}

	atomic.AddInt64(&c.articlesFetched, 1)

	sorted := model.TokenList(tokens).Sorted()
	c.resolver.Merge(host, article, sorted)
}
