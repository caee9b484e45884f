package mailpipe

import (
	"strings"
	"testing"
)

func TestJoinWrapOrphansJoinsShortFragment(t *testing.T) {
	long := strings.Repeat("a", 65) + " on the x and y components of"
	body := long + "\n`Point3d`."
	got := JoinWrapOrphans(body)
	if got != long+" `Point3d`." {
		t.Errorf("got %q", got)
	}
}

func TestJoinWrapOrphansSkipsSignatureLines(t *testing.T) {
	long := strings.Repeat("a", 70) + " regards,"
	body := long + "\nRemi"
	got := JoinWrapOrphans(body)
	if got != body {
		t.Errorf("signature line followed by a name must not be joined: got %q, want %q", got, body)
	}
}

func TestJoinWrapOrphansDoesNotCrossQuoteBoundary(t *testing.T) {
	long := "> " + strings.Repeat("a", 70)
	body := long + "\nunquoted"
	got := JoinWrapOrphans(body)
	if got != body {
		t.Errorf("a blockquoted prev must not join a non-blockquoted cur: got %q, want %q", got, body)
	}
}

func TestJoinContinuationOrphansJoinsListContinuation(t *testing.T) {
	body := "- fix the bug\ncontinues here\n\nnext paragraph"
	got := JoinContinuationOrphans(body)
	if !strings.Contains(got, "- fix the bug continues here") {
		t.Errorf("expected the stranded continuation line joined to the list item: %q", got)
	}
}

func TestJoinContinuationOrphansLeavesClosingPunctuationForJ(t *testing.T) {
	body := "    foo(bar);\n}\n"
	got := JoinContinuationOrphans(body)
	if got != body {
		t.Errorf("closing punctuation continuations are J's responsibility, not I's: got %q, want %q", got, body)
	}
}
