// -----------------------------------------------------------------------
// Mail Pipe - component H: wrap-orphan joining
// -----------------------------------------------------------------------

package mailpipe

import (
	"regexp"
	"strings"
)

// signatureLinePattern matches common sign-off lines that must never be
// joined to a following short fragment.
var signatureLinePattern = regexp.MustCompile(`(?i)(regards|cheers|thanks|thank you|best|sincerely|cordialement|greetings),?\s*$`)

const (
	maxOrphan = 15
	minLong   = 65
)

// JoinWrapOrphans implements component H: short fragments pushed to the
// next line by the archive's hard wrap are rejoined to the preceding line.
// Joins chain: a merged line becomes the new "prev" for further look-ahead.
func JoinWrapOrphans(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(out) > 0 && isWrapOrphan(out[len(out)-1], line) {
			out[len(out)-1] = strings.TrimRight(out[len(out)-1], " \t") + " " + line
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isWrapOrphan(prev, cur string) bool {
	if cur == "" {
		return false
	}
	if cur[0] == ' ' || cur[0] == '\t' || cur[0] == '>' {
		return false
	}
	trimmedCur := strings.TrimSpace(cur)
	if isFenceMarker(trimmedCur) {
		return false
	}
	if len(cur) > maxOrphan {
		return false
	}

	rprev := strings.TrimRight(prev, " \t")
	if len(rprev) < minLong {
		return false
	}
	if signatureLinePattern.MatchString(rprev) {
		return false
	}

	prevPrefix, _ := splitPrefix(prev)
	curPrefix, _ := splitPrefix(cur)
	if prevPrefix.depth > 0 && curPrefix.depth == 0 {
		return false
	}
	return true
}
