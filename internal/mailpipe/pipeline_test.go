package mailpipe

import (
	"strings"
	"testing"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(nil, Config{
		ArchiveHost:    "lists.example.test",
		ArchivePrefix:  "archives",
		RenderedPrefix: "rendered",
	})
}

func countFences(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if isFenceMarker(strings.TrimSpace(line)) {
			n++
		}
	}
	return n
}

func TestNormalizeEmptyBody(t *testing.T) {
	p := newTestPipeline()
	if got := p.Normalize("", "go-dev", "2024-May", "1", false); got != "" {
		t.Errorf("empty body: got %q, want empty string", got)
	}
}

func TestNormalizeBareBlockquoteDoesNotPanic(t *testing.T) {
	p := newTestPipeline()
	got := p.Normalize(">", "go-dev", "2024-May", "1", false)
	if strings.TrimSpace(got) != "" && strings.TrimSpace(got) != ">" {
		t.Errorf("bare blockquote: unexpected output %q", got)
	}
}

func TestNormalizeUnbalancedAnchorDoesNotPanic(t *testing.T) {
	p := newTestPipeline()
	got := p.Normalize(`Check <a href="https://example.test">the docs`, "go-dev", "2024-May", "1", false)
	if !strings.Contains(got, "the docs") {
		t.Errorf("unbalanced anchor: expected inner text preserved, got %q", got)
	}
}

func TestNormalizeAttachmentNoticeEmptiesBody(t *testing.T) {
	p := newTestPipeline()
	got := p.Normalize("----------\n next part\nsome binary gibberish", "go-dev", "2024-May", "1", false)
	if got != "" {
		t.Errorf("attachment notice at first line: got %q, want empty string", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	p := newTestPipeline()
	body := "Hi,\n\n  case Point(0, 0) -> foo();\n\nthanks,\nRemi"
	once := p.Normalize(body, "go-dev", "2024-May", "1", false)
	twice := p.Normalize(once, "go-dev", "2024-May", "1", false)
	if once != twice {
		t.Errorf("pipeline not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestScenario1LightlyIndentedCode(t *testing.T) {
	p := newTestPipeline()
	body := "Just a question, are you proposing that\n" +
		"  case Point(0, 0) -> ...\n" +
		"\n" +
		"is semantically equivalent to\n" +
		"  case Point(var x, var y) when x == 0 -> ..."
	got := p.Normalize(body, "go-dev", "2024-May", "1", false)

	if !strings.Contains(got, "Just a question, are you proposing that") {
		t.Errorf("lead-in prose missing: %q", got)
	}
	if !strings.Contains(got, "is semantically equivalent to") {
		t.Errorf("trailing prose missing: %q", got)
	}
	if strings.Contains(got, "that case") {
		t.Errorf("prose should not be merged with the following code line: %q", got)
	}
	if countFences(got) < 2 {
		t.Errorf("expected both case lines wrapped in a fenced block: %q", got)
	}
}

func TestScenario2WrapOrphanJoining(t *testing.T) {
	p := newTestPipeline()
	long := strings.Repeat("x", 64) + " on the `x` and `y`"
	body := long + " \ncomponents of\n`Point3d` is the type.\n\n" +
		"Rémi, thanks,\nregards,\nRémi"
	got := p.Normalize(body, "go-dev", "2024-May", "1", false)

	if !strings.Contains(got, long+" components of") {
		t.Errorf("expected wrap-orphan joined into preceding line: %q", got)
	}
	if strings.Contains(got, "regards, Rémi") {
		t.Errorf("signature lines must not be joined: %q", got)
	}
}

func TestScenario3NestedBlockquoteCode(t *testing.T) {
	p := newTestPipeline()
	body := "> > > record ColorPoint(int x, int y, RGB color) {}\n" +
		"> > >\n" +
		"> > > void somethingImportant(ColorPoint cp) {\n" +
		"> > >     if (cp instanceof ColorPoint(var x, var y, var c)) {\n" +
		"> > >         // important code\n" +
		"> > >     }\n" +
		"> > > }\n" +
		"> > >\n" +
		"> > > The use of pattern matching is great."
	got := p.Normalize(body, "go-dev", "2024-May", "1", false)

	if !strings.Contains(got, "> > > ```") {
		t.Errorf("expected a fenced block prefixed with '> > > ': %q", got)
	}
	if !strings.Contains(got, "The use of pattern matching is great.") {
		t.Errorf("trailing prose should survive as blockquoted text: %q", got)
	}

	// Every line inside the fence -- indented and unindented code lines
	// alike -- must carry exactly one depth-3 prefix, never a doubled one.
	lines := strings.Split(got, "\n")
	inFence := false
	sawFence := false
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasSuffix(trimmed, "```") && strings.HasPrefix(trimmed, ">") {
			sawFence = true
			inFence = !inFence
			continue
		}
		if !inFence {
			continue
		}
		p, rest := splitPrefix(l)
		if strings.TrimSpace(rest) == "" {
			continue
		}
		if p.depth != 3 {
			t.Errorf("expected every fenced content line to carry a single depth-3 prefix, got depth %d: %q", p.depth, l)
		}
	}
	if !sawFence {
		t.Fatalf("expected to find a fenced block: %q", got)
	}
}

func TestScenario6SeparatorInsideNestedQuote(t *testing.T) {
	got := StylizeSeparators("> > ----- Original Message -----")
	want := "> > **───── Original Message ─────**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.HasPrefix(got, "\n") {
		t.Errorf("no leading blank line should be inserted inside a blockquote: %q", got)
	}
}

func TestBoundaryBigONotInCode(t *testing.T) {
	if looksLikeCode("the algorithm runs in O(n log n) time") {
		t.Error("Big-O notation in prose must not be classified as code")
	}
}

