package query

import (
	"strings"
	"testing"

	"git.sr.ht/~adrake/newsdex/pkg/index"
	"git.sr.ht/~adrake/newsdex/pkg/model"
	"git.sr.ht/~adrake/newsdex/pkg/resolver"
)

func buildTestIndex(t *testing.T) *index.Index {
	t.Helper()
	r := resolver.New()
	r.Merge("h1", model.Article{Title: "X", URL: "http://h1/x"}, model.TokenList{"t", "t", "t"})
	r.Merge("h1", model.Article{Title: "Y", URL: "http://h1/y"}, model.TokenList{"t", "t", "t", "t", "t"})
	return index.Build(r.Entries())
}

// TestQueryOrderingViaREPL covers spec.md §8 S6 end-to-end through the
// REPL's own output formatting.
func TestQueryOrderingViaREPL(t *testing.T) {
	idx := buildTestIndex(t)

	in := strings.NewReader("t\n\n")
	var out strings.Builder
	REPL(in, &out, idx)

	text := out.String()
	yPos := strings.Index(text, "http://h1/y")
	xPos := strings.Index(text, "http://h1/x")
	if yPos == -1 || xPos == -1 {
		t.Fatalf("expected both articles in output, got:\n%s", text)
	}
	if yPos > xPos {
		t.Fatalf("expected Y (count 5) before X (count 3), got:\n%s", text)
	}
}

func TestEmptyLineExits(t *testing.T) {
	idx := buildTestIndex(t)
	in := strings.NewReader("\n")
	var out strings.Builder
	REPL(in, &out, idx)
	if strings.Count(out.String(), "Enter a search term") != 1 {
		t.Fatalf("expected the REPL to prompt once then exit, got:\n%s", out.String())
	}
}

func TestNoSubstringMatch(t *testing.T) {
	idx := buildTestIndex(t)
	in := strings.NewReader("t ra\n\n")
	var out strings.Builder
	REPL(in, &out, idx)
	if !strings.Contains(out.String(), "No matches.") {
		t.Fatalf("expected no matches for a non-exact term, got:\n%s", out.String())
	}
}

func TestTruncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := truncate(long, 10)
	if len([]rune(got)) != 10 {
		t.Fatalf("expected truncated string of length 10, got %q (%d)", got, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
}

func TestTruncationNoOpWhenShortEnough(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}
