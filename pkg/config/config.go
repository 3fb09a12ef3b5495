// Package config loads the crawl's tunables from an optional TOML file,
// in the teacher's style (pkg/config/config.go: BurntSushi/toml, a
// package-level Default() plus a discovered-file overlay).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigFilename is the default config file name looked for in the
// current directory when no -config flag is given.
const ConfigFilename = "newsdex.toml"

// DefaultConfigFiles lists, in order of preference, the files checked
// when no explicit config file is given.
var DefaultConfigFiles = []string{
	"./" + ConfigFilename,
	os.ExpandEnv("$HOME/.") + ConfigFilename,
	"/etc/" + ConfigFilename,
}

// Config holds every tunable named in spec.md plus the ambient stack
// additions of SPEC_FULL.md §2-§3.
type Config struct {
	Crawl struct {
		// FeedBudget caps simultaneous in-flight feed downloads+parses.
		FeedBudget int

		// ArticleBudget caps simultaneous in-flight article downloads+parses.
		ArticleBudget int

		// PerHostBudget caps simultaneous article downloads to one host.
		PerHostBudget int
	}

	History struct {
		// DbConnStr is a postgres connection string for the optional
		// crawl-run history recorder. Empty disables it.
		DbConnStr string
	}

	Metrics struct {
		// Address is the bind address for the Prometheus /metrics
		// endpoint, e.g. "localhost:9090". Empty disables it.
		Address string
	}
}

// Default returns a Config carrying the hardcoded defaults from spec.md
// §4.1's budget table.
func Default() *Config {
	c := &Config{}
	c.Crawl.FeedBudget = 6
	c.Crawl.ArticleBudget = 24
	c.Crawl.PerHostBudget = 8
	return c
}

// Load returns Default() overlaid with filename's contents. If filename
// is empty, DefaultConfigFiles is searched in order and the first
// existing file is used; if none exist, the defaults are returned
// unmodified.
func Load(filename string) (*Config, error) {
	c := Default()

	if filename == "" {
		for _, candidate := range DefaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				filename = candidate
				break
			}
		}
	}

	if filename == "" {
		return c, nil
	}

	if _, err := toml.DecodeFile(filename, c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", filename, err)
	}

	return c, nil
}
