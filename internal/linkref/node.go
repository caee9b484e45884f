// -----------------------------------------------------------------------
// Link-Reference Extension - AST node kinds
// -----------------------------------------------------------------------

// Package linkref is a goldmark extension that recognizes mailing-list-style
// numeric footnote blocks (`[n] https://...`) at the end of a thread message,
// rewrites matching `[n]` occurrences in the body into superscript links,
// and appends a rendered References section.
package linkref

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// KindLinkRef identifies an inline superscript link node produced by the
// rewrite stage.
var KindLinkRef = ast.NewNodeKind("LinkRef")

// KindReferencesBlock identifies the block appended at the end of the
// document when at least one reference was collected.
var KindReferencesBlock = ast.NewNodeKind("ReferencesBlock")

// LinkRefNode is an inline node standing in for a `[n]` token that resolved
// against the collected reference table.
type LinkRefNode struct {
	ast.BaseInline
	Number int
	URL    string
}

// NewLinkRefNode builds a LinkRefNode for the given footnote number and URL.
func NewLinkRefNode(number int, url string) *LinkRefNode {
	return &LinkRefNode{Number: number, URL: url}
}

// Kind implements ast.Node.
func (n *LinkRefNode) Kind() ast.NodeKind { return KindLinkRef }

// Dump implements ast.Node.
func (n *LinkRefNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Number": fmt.Sprintf("%d", n.Number),
		"URL":    n.URL,
	}, nil)
}

// refEntry is one row of the collected reference table, ordered for
// rendering.
type refEntry struct {
	Number int
	URL    string
}

// ReferencesBlockNode renders the trailing "References:" section.
type ReferencesBlockNode struct {
	ast.BaseBlock
	Entries []refEntry
}

// NewReferencesBlockNode builds a ReferencesBlockNode; entries must already
// be sorted by Number ascending.
func NewReferencesBlockNode(entries []refEntry) *ReferencesBlockNode {
	return &ReferencesBlockNode{Entries: entries}
}

// Kind implements ast.Node.
func (n *ReferencesBlockNode) Kind() ast.NodeKind { return KindReferencesBlock }

// Dump implements ast.Node.
func (n *ReferencesBlockNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}
