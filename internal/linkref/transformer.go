package linkref

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// referenceLinePattern matches a single line of a reference paragraph:
// a bracketed decimal footnote number followed by a bare URL.
var referenceLinePattern = regexp.MustCompile(`^\[(\d+)\]\s+(https?://\S+)\s*$`)

// inlineRefPattern matches a `[n]` token anywhere in running text.
var inlineRefPattern = regexp.MustCompile(`\[(\d+)\]`)

// astTransformer implements component N's two-stage post-processing pass:
// collect trailing reference paragraphs, then rewrite matching `[n]`
// occurrences into superscript link nodes.
type astTransformer struct{}

// NewASTTransformer returns the parser.ASTTransformer to register with
// parser.WithASTTransformers.
func NewASTTransformer() parser.ASTTransformer {
	return &astTransformer{}
}

func (t *astTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	table := collectReferences(doc, source)
	if len(table) == 0 {
		return
	}
	rewriteInlineRefs(doc, source, table)
	doc.AppendChild(doc, NewReferencesBlockNode(sortedEntries(table)))
}

// collectReferences walks the document's top-level blocks from last to
// first. While the last block is a reference paragraph, its lines are
// recorded into the table and the block is removed from the tree. Blank
// lines between reference paragraphs never materialize as nodes in
// goldmark's tree, so no separate tolerance is needed for them. The walk
// stops at the first non-reference block.
func collectReferences(doc *ast.Document, source []byte) map[int]string {
	table := make(map[int]string)
	child := doc.LastChild()
	for child != nil {
		prev := child.PreviousSibling()
		para, ok := child.(*ast.Paragraph)
		if !ok {
			break
		}
		lines, ok := referenceParagraphLines(para, source)
		if !ok {
			break
		}
		for _, line := range lines {
			m := referenceLinePattern.FindStringSubmatch(line)
			num, _ := strconv.Atoi(m[1])
			if _, seen := table[num]; !seen {
				table[num] = m[2]
			}
		}
		doc.RemoveChild(doc, child)
		child = prev
	}
	return table
}

// referenceParagraphLines returns the paragraph's raw source lines and
// whether every non-blank one matches referenceLinePattern.
func referenceParagraphLines(para *ast.Paragraph, source []byte) ([]string, bool) {
	segs := para.Lines()
	if segs.Len() == 0 {
		return nil, false
	}
	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := string(seg.Value(source))
		if line == "" {
			continue
		}
		if !referenceLinePattern.MatchString(line) {
			return nil, false
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, false
	}
	return lines, true
}

// rewriteInlineRefs walks every remaining text node in the document and
// splices in LinkRefNode for each `[n]` token whose number is in table.
func rewriteInlineRefs(n ast.Node, source []byte, table map[int]string) {
	child := n.FirstChild()
	for child != nil {
		next := child.NextSibling()
		if textNode, ok := child.(*ast.Text); ok {
			rewriteTextNode(n, textNode, source, table)
		} else {
			rewriteInlineRefs(child, source, table)
		}
		child = next
	}
}

func rewriteTextNode(parent ast.Node, textNode *ast.Text, source []byte, table map[int]string) {
	seg := textNode.Segment
	raw := seg.Value(source)
	matches := inlineRefPattern.FindAllSubmatchIndex(raw, -1)
	if matches == nil {
		return
	}

	type piece struct {
		isRef     bool
		start     int
		stop      int
		number    int
		url       string
	}
	var pieces []piece
	cursor := 0
	hit := false
	for _, m := range matches {
		start, stop := m[0], m[1]
		num, _ := strconv.Atoi(string(raw[m[2]:m[3]]))
		url, ok := table[num]
		if !ok {
			continue
		}
		hit = true
		if start > cursor {
			pieces = append(pieces, piece{start: cursor, stop: start})
		}
		pieces = append(pieces, piece{isRef: true, number: num, url: url})
		cursor = stop
	}
	if !hit {
		return
	}
	if cursor < len(raw) {
		pieces = append(pieces, piece{start: cursor, stop: len(raw)})
	}

	base := seg.Start
	var lastText *ast.Text
	for _, p := range pieces {
		if p.isRef {
			parent.InsertBefore(parent, textNode, NewLinkRefNode(p.number, p.url))
			lastText = nil
			continue
		}
		t := ast.NewTextSegment(text.NewSegment(base+p.start, base+p.stop))
		parent.InsertBefore(parent, textNode, t)
		lastText = t
	}
	if lastText != nil {
		lastText.SetSoftLineBreak(textNode.SoftLineBreak())
		lastText.SetHardLineBreak(textNode.HardLineBreak())
	}
	parent.RemoveChild(parent, textNode)
}

func sortedEntries(table map[int]string) []refEntry {
	entries := make([]refEntry, 0, len(table))
	for num, url := range table {
		entries = append(entries, refEntry{Number: num, URL: url})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Number < entries[j].Number })
	return entries
}
