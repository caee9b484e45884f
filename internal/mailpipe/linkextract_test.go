package mailpipe

import (
	"strings"
	"testing"
)

func TestLinkExtractorArchiveURLRewrite(t *testing.T) {
	le := NewLinkExtractor("lists.example.test", "archives", "rendered")
	body := `See <a href="https://lists.example.test/archives/go-dev/2024-May/123.html">this thread</a>.`

	got := le.Extract(body, true)
	want := "See [go-dev/2024-May/123.html](/rendered/go-dev/2024-May/123.html)."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLinkExtractorNoRewritePreservesURL(t *testing.T) {
	le := NewLinkExtractor("lists.example.test", "archives", "rendered")
	body := `See <a href="https://lists.example.test/archives/go-dev/2024-May/123.html">this thread</a>.`

	got := le.Extract(body, false)
	if !strings.Contains(got, "https://lists.example.test/archives/go-dev/2024-May/123.html") {
		t.Errorf("expected original archive URL preserved without rewrite: %q", got)
	}
}

func TestLinkExtractorTextEqualsURLCollapses(t *testing.T) {
	le := NewLinkExtractor("lists.example.test", "archives", "rendered")
	body := `<a href="https://example.test/x">https://example.test/x</a>`
	got := le.Extract(body, false)
	if got != "https://example.test/x" {
		t.Errorf("got %q, want bare URL", got)
	}
}

func TestLinkExtractorInsideMarkdownLink(t *testing.T) {
	le := NewLinkExtractor("lists.example.test", "archives", "rendered")
	body := `[label](<a href="https://example.test/x">https://example.test/x</a>)`
	got := le.Extract(body, false)
	if got != "[label](https://example.test/x)" {
		t.Errorf("got %q", got)
	}
}

func TestLinkExtractorUnbalancedAnchorPreservesText(t *testing.T) {
	le := NewLinkExtractor("lists.example.test", "archives", "rendered")
	body := `Check <a href="https://example.test">the docs`
	got := le.Extract(body, false)
	if !strings.Contains(got, "the docs") {
		t.Errorf("unbalanced anchor should be left alone: %q", got)
	}
}
