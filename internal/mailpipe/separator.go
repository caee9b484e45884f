// -----------------------------------------------------------------------
// Mail Pipe - component D: separator stylization
// -----------------------------------------------------------------------

package mailpipe

import (
	"regexp"
	"strings"
)

// separatorPattern matches "----- Original Message -----" / "Forwarded
// Message" forms, optionally prefixed by a blockquote of any depth.
var separatorPattern = regexp.MustCompile(`^((?:> ?)*)-{3,}\s*(Original Message|Forwarded Message)\s*-{3,}$`)

// StylizeSeparators replaces recognized "----- Original Message -----" /
// "Forwarded Message" lines with a bold Unicode separator, preserving any
// blockquote prefix. A blank line is prepended only when there is no
// prefix; inside a blockquote a blank line would break lazy continuation.
func StylizeSeparators(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		sub := separatorPattern.FindStringSubmatch(line)
		if sub == nil {
			out = append(out, line)
			continue
		}
		prefix, kind := sub[1], sub[2]
		if prefix == "" {
			out = append(out, "")
		}
		out = append(out, prefix+"**───── "+kind+" ─────**")
	}
	return strings.Join(out, "\n")
}
