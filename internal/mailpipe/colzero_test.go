package mailpipe

import (
	"strings"
	"testing"
)

func TestPromoteColumnZeroCodeFencesRun(t *testing.T) {
	body := "some prose\nx = foo();\ny = bar(x);\nmore prose"
	got := PromoteColumnZeroCode(body)
	if countFences(got) != 2 {
		t.Fatalf("expected a run of >=2 code-like lines to be fenced, got %d in %q", countFences(got), got)
	}
}

func TestPromoteColumnZeroCodeSingleLineNotFenced(t *testing.T) {
	body := "prose before\nx = foo();\nprose after"
	got := PromoteColumnZeroCode(body)
	if countFences(got) != 0 {
		t.Errorf("a single code-like line must not be fenced on its own: %q", got)
	}
	if !strings.Contains(got, "x = foo();") {
		t.Errorf("the line itself must still be present verbatim: %q", got)
	}
}

func TestPromoteColumnZeroCodePreservesBlockquotePrefix(t *testing.T) {
	body := "> x = foo();\n> y = bar(x);"
	got := PromoteColumnZeroCode(body)
	if !strings.Contains(got, "> ```") {
		t.Errorf("expected the blockquote prefix preserved on the fence: %q", got)
	}
	want := "> ```\n> x = foo();\n> y = bar(x);\n> ```"
	if got != want {
		t.Errorf("expected content lines to carry exactly one '> ' prefix, not a doubled one:\ngot:  %q\nwant: %q", got, want)
	}
}
