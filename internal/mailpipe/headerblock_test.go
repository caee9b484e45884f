package mailpipe

import (
	"strings"
	"testing"
)

func TestRenestHeaderBlocksEntersContext(t *testing.T) {
	body := "> some reply text\n" +
		"> \n" +
		"> " + strings.Repeat(" ", 4) + "From: alice@example.test\n" +
		"> " + strings.Repeat(" ", 4) + "Subject: hi"
	got := RenestHeaderBlocks(body)
	if !strings.Contains(got, "> > From: alice@example.test") {
		t.Errorf("expected the forwarded header promoted one level deeper: %q", got)
	}
}

func TestRenestHeaderBlocksLeavesPlainQuotesAlone(t *testing.T) {
	body := "> just a normal reply\n> with two lines"
	got := RenestHeaderBlocks(body)
	if got != body {
		t.Errorf("plain quoted prose should be untouched: got %q, want %q", got, body)
	}
}
