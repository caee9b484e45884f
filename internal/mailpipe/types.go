// -----------------------------------------------------------------------
// Mail Pipe - shared types for the mail body normalization pipeline
// -----------------------------------------------------------------------

package mailpipe

import "regexp"

// blockquotePrefixPattern matches a leading run of blockquote markers at
// column zero, e.g. ">", "> >", ">>". The match never ends in a space.
var blockquotePrefixPattern = regexp.MustCompile(`^>(\s?>)*`)

// emailHeaderPattern matches a trimmed line that begins a forwarded/quoted
// email header. Header lines are never treated as code, however indented.
var emailHeaderPattern = regexp.MustCompile(`(?i)^\*?(From|To|Cc|Bcc|Subject|Sent|Date|Reply-To):`)

// listMarkerPattern matches the start of a list item: "- ", "* ", "1. ".
var listMarkerPattern = regexp.MustCompile(`^([-*]|\d+\.)\s`)

// fenceMarkerPattern matches a trimmed line opening or closing a fenced block.
var fenceMarkerPattern = regexp.MustCompile("^```")

// closingPunctuationPattern matches a trimmed line of pure closing punctuation,
// the kind of fragment a hard line-wrap strands on its own line.
var closingPunctuationPattern = regexp.MustCompile(`^[}\]);]+$`)

// blockquotePrefix holds the parsed leading ">"-run of a line.
type blockquotePrefix struct {
	// raw is the exact matched substring, e.g. "> >".
	raw string
	// depth is the number of '>' characters in raw.
	depth int
}

// splitPrefix parses the blockquote prefix off the front of line, returning
// the prefix (depth 0 if none) and the remainder of the line unchanged.
func splitPrefix(line string) (blockquotePrefix, string) {
	m := blockquotePrefixPattern.FindString(line)
	if m == "" {
		return blockquotePrefix{}, line
	}
	depth := 0
	for _, r := range m {
		if r == '>' {
			depth++
		}
	}
	return blockquotePrefix{raw: m, depth: depth}, line[len(m):]
}

// equivalent reports whether two blockquote prefixes have the same depth,
// ignoring the exact spacing between '>' markers.
func (p blockquotePrefix) equivalent(other blockquotePrefix) bool {
	return p.depth == other.depth
}

// normalized renders the canonical form of the prefix: exactly one space
// after every '>' except where the next rune is itself '>'.
func (p blockquotePrefix) normalized() string {
	if p.depth == 0 {
		return ""
	}
	s := make([]byte, 0, p.depth*2)
	for i := 0; i < p.depth; i++ {
		s = append(s, '>')
		if i < p.depth-1 {
			s = append(s, ' ')
		}
	}
	s = append(s, ' ')
	return string(s)
}

// codeBlock accumulates the content lines of a promoted indented code run
// while a promoter stage scans forward.
type codeBlock struct {
	prefix blockquotePrefix
	lines  []string
}

func (b *codeBlock) reset() {
	b.lines = b.lines[:0]
}

func (b *codeBlock) empty() bool {
	return len(b.lines) == 0
}
