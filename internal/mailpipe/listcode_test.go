package mailpipe

import (
	"strings"
	"testing"
)

func TestPromoteListCodeFencesIndentedRun(t *testing.T) {
	body := "- First do this:\n" +
		"    x = compute();\n" +
		"    y = transform(x);\n" +
		"- Then that."
	got := PromoteListCode(body)
	if countFences(got) != 2 {
		t.Fatalf("expected one fenced block under the list item, got %d fences in %q", countFences(got), got)
	}
	if !strings.Contains(got, "x = compute();") {
		t.Errorf("expected code content preserved: %q", got)
	}
	if !strings.Contains(got, "- Then that.") {
		t.Errorf("expected following list item preserved: %q", got)
	}
}

func TestPromoteListCodeLeavesProseAlone(t *testing.T) {
	body := "- just a plain list item\n- another plain item"
	got := PromoteListCode(body)
	if countFences(got) != 0 {
		t.Errorf("plain list prose should not be fenced: %q", got)
	}
}
