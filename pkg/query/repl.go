// Package query implements the interactive Query Engine REPL of
// spec.md §6: prompt, read a line, trim it, print up to 15 matches. It
// is one of the components spec.md §1 explicitly treats as an external,
// substitutable shim, so it stays deliberately thin.
package query

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"git.sr.ht/~adrake/newsdex/pkg/index"
)

const (
	maxResults  = 15
	titleWidth  = 40
	urlWidth    = 60
)

// REPL reads search terms from in, one per line, and writes results to
// out until it reads an empty line (after trimming) or in is exhausted.
func REPL(in io.Reader, out io.Writer, idx *index.Index) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter a search term (blank to quit): ")
		if !scanner.Scan() {
			return
		}
		term := strings.TrimSpace(scanner.Text())
		if term == "" {
			return
		}
		printMatches(out, idx.GetMatchingArticles(term))
	}
}

func printMatches(out io.Writer, matches []index.ArticleCount) {
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches.")
		return
	}
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	for i, m := range matches {
		fmt.Fprintf(out, "%2d. %-*s %-*s appears %d time(s)\n",
			i+1, titleWidth, truncate(m.Article.Title, titleWidth), urlWidth, truncate(m.Article.URL, urlWidth), m.Count)
	}
}

// truncate shortens s to width runes, marking the cut with a trailing
// ellipsis so the REPL's columns stay aligned.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
