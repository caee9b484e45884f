// -----------------------------------------------------------------------
// Mail Pipe - component K: list-item code promotion
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// PromoteListCode implements component K: runs inside a list item that are
// more indented than the marker and look like code are fenced at the
// marker's text-alignment column, preserving relative indentation within
// the run. Operates over the output of component J.
func PromoteListCode(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))

	inFenced := false
	markerColumn := -1

	runActive := false
	var run []string
	listIndent := 0
	baseCodeIndent := 0

	flush := func() {
		if !runActive {
			return
		}
		if len(run) > 0 {
			fence := strings.Repeat(" ", listIndent) + "```"
			out = append(out, fence)
			out = append(out, run...)
			out = append(out, fence)
		}
		runActive = false
		run = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isFenceMarker(trimmed) {
			flush()
			inFenced = !inFenced
			out = append(out, line)
			continue
		}
		if inFenced {
			out = append(out, line)
			continue
		}
		if trimmed == "" {
			flush()
			out = append(out, line)
			continue
		}

		indent := leadingSpaces(line)
		if markerColumn >= 0 && indent <= markerColumn {
			flush()
			markerColumn = -1
		}

		if isListItem(trimmed) {
			flush()
			markerColumn = indent
			out = append(out, line)
			continue
		}

		if markerColumn < 0 {
			out = append(out, line)
			continue
		}

		isContinuation := runActive && (isClosingPunctuation(trimmed) || strings.HasPrefix(trimmed, "//"))
		if indent > markerColumn && (looksLikeCode(trimmed) || isContinuation) {
			if !runActive {
				runActive = true
				baseCodeIndent = indent
				listIndent = markerColumn + 2
				if listIndent < 2 {
					listIndent = 2
				}
			}
			extra := indent - baseCodeIndent
			if extra < 0 {
				extra = 0
			}
			content := strings.TrimLeft(line, " ")
			run = append(run, strings.Repeat(" ", listIndent+extra)+content)
			continue
		}

		flush()
		out = append(out, line)
	}
	flush()
	return strings.Join(out, "\n")
}
