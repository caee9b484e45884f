// -----------------------------------------------------------------------
// Mail Pipe - component I: continuation-orphan joining
// -----------------------------------------------------------------------

package mailpipe

import (
	"regexp"
	"strings"
)

// indentedListMarkerPattern matches a list marker with up to 3 leading
// spaces, the shape component I recognizes as a list-item "prev".
var indentedListMarkerPattern = regexp.MustCompile(`^\s{0,3}([-*]|\d+\.)\s`)

// JoinContinuationOrphans implements component I: an unindented line that
// continues a preceding code block or list item, stranded there by the
// archive's hard wrap, is rejoined to that preceding line.
func JoinContinuationOrphans(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		hasNext := i+1 < len(lines)
		var next string
		if hasNext {
			next = lines[i+1]
		}
		if len(out) > 0 && isContinuationOrphan(out[len(out)-1], line, next, hasNext) {
			out[len(out)-1] = out[len(out)-1] + " " + line
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isContinuationOrphan(prev, cur, next string, hasNext bool) bool {
	if cur == "" {
		return false
	}
	if cur[0] == ' ' || cur[0] == '\t' || cur[0] == '>' {
		return false
	}
	trimmedCur := strings.TrimSpace(cur)
	if isListItem(trimmedCur) {
		return false
	}
	if isClosingPunctuation(trimmedCur) {
		return false
	}

	_, rest := splitPrefix(prev)
	indent := leadingSpaces(rest)
	isCodeIndent := indent >= 4
	isListPrev := indentedListMarkerPattern.MatchString(rest)
	if !isCodeIndent && !isListPrev {
		return false
	}

	if !hasNext {
		return false
	}
	trimmedNext := strings.TrimSpace(next)
	nextIsBlank := trimmedNext == ""
	nextIndented := leadingSpaces(next) > 0
	nextIsList := isListItem(trimmedNext)
	nextIsFence := isFenceMarker(trimmedNext)
	return nextIsBlank || nextIndented || nextIsList || nextIsFence
}
