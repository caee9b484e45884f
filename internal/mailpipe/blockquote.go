// -----------------------------------------------------------------------
// Mail Pipe - component C: blockquote prefix normalization
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// NormalizeBlockquotes inserts one space after the leading run of '>'
// characters of a line when content follows the run directly (">>x" becomes
// ">> x"). Compact runs stay compact, and spaces already after the run are
// left as they are. Applied once, before any later stage consults the prefix.
func NormalizeBlockquotes(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = normalizeBlockquoteLine(line)
	}
	return strings.Join(lines, "\n")
}

func normalizeBlockquoteLine(line string) string {
	if !strings.HasPrefix(line, ">") {
		return line
	}
	var b strings.Builder
	i := 0
	for i < len(line) && line[i] == '>' {
		b.WriteByte('>')
		i++
		if i < len(line) && line[i] == '>' {
			continue
		}
		if i < len(line) && line[i] != ' ' {
			b.WriteByte(' ')
		}
		break
	}
	b.WriteString(line[i:])
	return b.String()
}
