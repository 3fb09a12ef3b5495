// Package urlutil provides the serverOf and URL-normalization
// collaborators described in spec.md §6, following the teacher's
// NormalizeUrl (pkg/gparse/gparse.go) which leans on purell.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

const normalizeFlags = purell.FlagLowercaseScheme |
	purell.FlagLowercaseHost |
	purell.FlagUppercaseEscapes |
	purell.FlagDecodeUnnecessaryEscapes |
	purell.FlagEncodeNecessaryEscapes |
	purell.FlagRemoveEmptyQuerySeparator |
	purell.FlagRemoveDotSegments |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveEmptyPortSeparator |
	purell.FlagRemoveUnnecessaryHostDots

// Normalize canonicalizes rawurl (lower-cased scheme/host, resolved dot
// segments, de-duplicated slashes, ...) so that trivially different
// spellings of the same URL claim the same dedup-registry slot.
func Normalize(rawurl string) (string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return "", fmt.Errorf("urlutil: parse %q: %w", rawurl, err)
	}
	return purell.NormalizeURL(u, normalizeFlags), nil
}

// ServerOf returns the normalized host portion of rawurl, for per-host
// admission control and cross-mirror duplicate detection (spec.md §6).
// www.example.com, EXAMPLE.COM and example.com are collapsed to the same
// key so that a mirror served under a "www." alias is still recognized.
func ServerOf(rawurl string) (string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return "", fmt.Errorf("urlutil: parse %q: %w", rawurl, err)
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", fmt.Errorf("urlutil: %q has no host", rawurl)
	}
	return host, nil
}
