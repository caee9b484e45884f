// -----------------------------------------------------------------------
// Mail Pipe - component E: header-block renesting
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// maxELookahead bounds how far ahead a blank context line looks for more
// indented header content before deciding whether to keep the context open.
const maxELookahead = 5

// headerBlockState tracks the renester's scan across lines.
type headerBlockState struct {
	inContext        bool
	currentPrefix    blockquotePrefix
	emailIndentLevel int
}

// RenestHeaderBlocks implements component E: inside a blockquote, detects an
// indented forwarded-email header block and converts it into one additional
// level of blockquote nesting, without widening anything else.
func RenestHeaderBlocks(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	var st headerBlockState

	for i, line := range lines {
		p, rest := splitPrefix(line)
		if p.depth == 0 {
			st = headerBlockState{}
			out = append(out, line)
			continue
		}

		indent := leadingSpaces(rest)
		t := strings.TrimSpace(rest)

		if looksLikeCode(t) && !isEmailHeaderLine(t) {
			out = append(out, line)
			continue
		}

		switch {
		case !st.inContext && indent >= 4 && isEmailHeaderLine(t):
			st = headerBlockState{inContext: true, currentPrefix: p, emailIndentLevel: indent}
			out = append(out, markers(p.depth+1)+" "+t)

		case st.inContext && p.equivalent(st.currentPrefix):
			if t == "" {
				if lookaheadHasContent(lines, i+1, st.emailIndentLevel, p) {
					out = append(out, markers(p.depth+1))
				} else {
					out = append(out, markers(p.depth))
				}
				continue
			}
			if indent >= st.emailIndentLevel && !looksLikeCode(t) {
				levels := 1 + (indent-st.emailIndentLevel)/4
				out = append(out, markers(p.depth+levels)+" "+t)
			} else {
				out = append(out, line)
			}

		default:
			st = headerBlockState{}
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// lookaheadHasContent scans up to maxELookahead lines starting at start for
// more content at or beyond indentLevel under the same blockquote prefix.
func lookaheadHasContent(lines []string, start, indentLevel int, prefix blockquotePrefix) bool {
	end := start + maxELookahead
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		p, rest := splitPrefix(lines[i])
		if !p.equivalent(prefix) {
			return false
		}
		if strings.TrimSpace(rest) == "" {
			continue
		}
		if leadingSpaces(rest) >= indentLevel {
			return true
		}
	}
	return false
}

// markers renders depth '>' characters separated by single spaces, with no
// trailing space, e.g. markers(3) == "> > >".
func markers(depth int) string {
	if depth <= 0 {
		return ""
	}
	s := make([]byte, 0, depth*2-1)
	for i := 0; i < depth; i++ {
		if i > 0 {
			s = append(s, ' ')
		}
		s = append(s, '>')
	}
	return string(s)
}
