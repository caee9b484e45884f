// -----------------------------------------------------------------------
// Mail Pipe - component G: post-blockquote separator insertion
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// InsertPostQuoteSeparators implements component G: a blank line is inserted
// between a blockquoted line and an immediately following non-blank,
// non-blockquoted line, terminating CommonMark lazy continuation.
func InsertPostQuoteSeparators(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines)+len(lines)/8)

	for i, line := range lines {
		out = append(out, line)
		if i+1 >= len(lines) {
			continue
		}
		p, _ := splitPrefix(line)
		next := lines[i+1]
		nextPrefix, _ := splitPrefix(next)
		if p.depth > 0 && nextPrefix.depth == 0 && strings.TrimSpace(next) != "" {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}
