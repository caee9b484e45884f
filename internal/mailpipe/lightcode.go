// -----------------------------------------------------------------------
// Mail Pipe - component F: lightly-indented code promotion
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// lightCodeLookahead bounds how far a blank line inside a light-code region
// looks ahead for more indented code before the region is considered closed.
// Purely an over-fit to archive data per the pipeline's own design notes;
// exposed here as a constant rather than a caller-facing knob.
const lightCodeLookahead = 3

// PromoteLightCode implements component F: 2-3-space indented code-like
// runs are re-indented to 4 spaces, preserving relative indentation across
// the run.
func PromoteLightCode(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))

	inRegion := false
	baseIndent := 0
	offset := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		indent := leadingSpaces(line)
		trimmed := strings.TrimSpace(line)

		if !inRegion {
			if (indent == 2 || indent == 3) && !isListItem(trimmed) && looksLikeCode(trimmed) {
				inRegion = true
				baseIndent = indent
				offset = 4 - indent
				if len(out) > 0 {
					prev := out[len(out)-1]
					if strings.TrimSpace(prev) != "" && leadingSpaces(prev) < 4 {
						out = append(out, "")
					}
				}
				out = append(out, strings.Repeat(" ", offset)+line)
				continue
			}
			out = append(out, line)
			continue
		}

		if trimmed == "" {
			if lightCodeLookaheadFindsCode(lines, i+1, baseIndent) {
				out = append(out, line)
				continue
			}
			inRegion = false
			out = append(out, line)
			continue
		}

		if indent >= baseIndent || (indent > 0 && looksLikeCode(trimmed)) {
			out = append(out, strings.Repeat(" ", offset)+line)
			continue
		}

		inRegion = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// lightCodeLookaheadFindsCode scans up to lightCodeLookahead lines starting
// at start for another indented code-like line, skipping intervening blanks.
func lightCodeLookaheadFindsCode(lines []string, start, baseIndent int) bool {
	end := start + lightCodeLookahead
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if leadingSpaces(lines[i]) >= baseIndent && looksLikeCode(trimmed) {
			return true
		}
	}
	return false
}
