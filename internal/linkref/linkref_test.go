package linkref

import (
	"strings"
	"testing"
)

func TestRenderRewritesFootnotesAndAppendsReferences(t *testing.T) {
	input := "See docs[1] and example[2].\n\n[1] https://a.test/docs\n[2] https://a.test/example\n"
	got, err := Render(input)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, `<sup><a href="https://a.test/docs">[1]</a></sup>`) {
		t.Errorf("expected footnote 1 rewritten to a superscript link: %q", got)
	}
	if !strings.Contains(got, `<sup><a href="https://a.test/example">[2]</a></sup>`) {
		t.Errorf("expected footnote 2 rewritten to a superscript link: %q", got)
	}
	if !strings.Contains(got, `<div class="link-references">`) {
		t.Errorf("expected a references block: %q", got)
	}
	wantOrder := `<li><a href="https://a.test/docs">https://a.test/docs</a></li><li><a href="https://a.test/example">https://a.test/example</a></li>`
	if !strings.Contains(got, wantOrder) {
		t.Errorf("expected references listed in ascending number order: %q", got)
	}
	if strings.Contains(got, "[1] https://a.test/docs</p>") || strings.Contains(got, ">[1] https://a.test/docs<") {
		t.Errorf("the raw reference paragraph must not survive in the output: %q", got)
	}
}

func TestRenderLeavesUnmatchedBracketsAlone(t *testing.T) {
	input := "See item[9] here.\n"
	got, err := Render(input)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "[9]") {
		t.Errorf("an unmatched [n] with no reference table entry must be kept as plain text: %q", got)
	}
	if strings.Contains(got, "<sup>") {
		t.Errorf("no reference table was collected, so no superscript should be produced: %q", got)
	}
}

func TestRenderHandlesBodyWithNoReferences(t *testing.T) {
	got, err := Render("just a plain paragraph\n")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(got, "link-references") {
		t.Errorf("no references block should be emitted when nothing was collected: %q", got)
	}
}

func TestEscapeHTMLOrdersAmpersandFirst(t *testing.T) {
	got := escapeHTML(`a&b<c>d"e`)
	want := `a&amp;b&lt;c&gt;d&quot;e`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
