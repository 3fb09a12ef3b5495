// Command newsdex crawls a feed list, builds a reverse index of its
// articles' tokens, and serves an interactive search REPL over stdin,
// per spec.md §6's CLI contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"git.sr.ht/~adrake/newsdex/pkg/config"
	"git.sr.ht/~adrake/newsdex/pkg/crawl"
	"git.sr.ht/~adrake/newsdex/pkg/feedsource"
	"git.sr.ht/~adrake/newsdex/pkg/history"
	"git.sr.ht/~adrake/newsdex/pkg/logging"
	"git.sr.ht/~adrake/newsdex/pkg/metrics"
	"git.sr.ht/~adrake/newsdex/pkg/query"
	"git.sr.ht/~adrake/newsdex/pkg/tokenize"
)

const defaultFeedListURL = "small-feed.xml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("newsdex", flag.ContinueOnError)
	fs.Usage = func() { usage(fs) }

	var rootURL string
	fs.StringVar(&rootURL, "url", defaultFeedListURL, "root feed-list URL")
	fs.StringVar(&rootURL, "u", defaultFeedListURL, "shorthand for -url")

	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "emit per-item progress logs")
	fs.BoolVar(&verbose, "v", false, "shorthand for -verbose")

	var quiet bool
	fs.BoolVar(&quiet, "quiet", false, "suppress per-item logs (default)")
	fs.BoolVar(&quiet, "q", false, "shorthand for -quiet")

	var configFile string
	fs.StringVar(&configFile, "config", "", "config file")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 1
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "newsdex:", err)
		return 1
	}

	logger := logging.New(verbose && !quiet)

	metrics.ServeDebug(cfg.Metrics.Address)

	rec, err := history.Open(cfg.History.DbConnStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "newsdex:", err)
		return 1
	}
	defer rec.Close()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	co := crawl.New(
		feedsource.NewFeedListClient(httpClient),
		feedsource.NewFeedClient(httpClient),
		tokenize.NewClient(httpClient),
		logger,
		crawl.Budgets{
			FeedBudget:    int64(cfg.Crawl.FeedBudget),
			ArticleBudget: int64(cfg.Crawl.ArticleBudget),
			PerHostBudget: int64(cfg.Crawl.PerHostBudget),
		},
	)

	started := time.Now()
	idx, err := co.Crawl(context.Background(), rootURL)
	finished := time.Now()

	if err != nil {
		recErr := rec.RecordRun(context.Background(), rootURL, started, finished, history.Stats{}, err)
		if recErr != nil {
			fmt.Fprintln(os.Stderr, "newsdex: history:", recErr)
		}
		return 1
	}

	if err := rec.RecordRun(context.Background(), rootURL, started, finished, history.Stats{
		FeedCount:    co.FeedCount(),
		ArticleCount: co.ArticleCount(),
		TokenCount:   idx.TokenCount(),
	}, nil); err != nil {
		fmt.Fprintln(os.Stderr, "newsdex: history:", err)
	}

	query.REPL(os.Stdin, os.Stdout, idx)
	return 0
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `newsdex - concurrent news aggregator and search REPL

usage: newsdex [flags]

  -url, -u <URI>     root feed-list URL (default %q)
  -verbose, -v       emit per-item progress logs
  -quiet, -q         suppress per-item logs (default)
  -config <file>     TOML config file (default: %v)

No positional arguments are accepted.
`, defaultFeedListURL, config.DefaultConfigFiles)
}
