package digestpdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mailarchive/beautifier/internal/merkle"
	"github.com/ternarybob/arbor"
)

func TestExportProducesAPDFDocument(t *testing.T) {
	root := &merkle.Entry{
		ID:      "001",
		Subject: "Bug in parser",
		Author:  "Alice",
		Replies: []*merkle.Entry{
			{ID: "002", Subject: "Re: Bug in parser", Author: "Bob"},
		},
	}
	tree := merkle.Digest("dev-list", "2026-07", []*merkle.Entry{root})

	pdf, err := NewExporter(arbor.NewLogger()).Export(tree)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("expected output to start with the PDF magic header, got %q", pdf[:minInt(len(pdf), 16)])
	}
}

func TestBuildReportMarkdownListsEveryEntry(t *testing.T) {
	root := &merkle.Entry{
		ID:      "001",
		Subject: "Bug in parser",
		Author:  "Alice",
		Replies: []*merkle.Entry{
			{ID: "002", Subject: "Re: Bug in parser", Author: "Bob"},
		},
	}
	tree := merkle.Digest("dev-list", "2026-07", []*merkle.Entry{root})

	md := buildReportMarkdown(tree)
	if !strings.Contains(md, "dev-list") || !strings.Contains(md, "2026-07") {
		t.Errorf("expected report header to name the list and month, got %q", md)
	}
	if !strings.Contains(md, "Bug in parser") || !strings.Contains(md, "Re: Bug in parser") {
		t.Errorf("expected report body to list both entries, got %q", md)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
