// -----------------------------------------------------------------------
// Mail Pipe - shared fenced-block emission (minimum-indent dedent)
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// emitDedented appends contentLines to out as the body of a fenced block,
// stripping the common leading-space indent of all non-empty lines while
// preserving the blockquote prefix on every emitted line. Used by the
// fence-closing step of components J, K, and L.
func emitDedented(out *[]string, prefix blockquotePrefix, contentLines []string) {
	minIndent := -1
	for _, l := range contentLines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := leadingSpaces(l)
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}
	pfx := prefix.normalized()
	for _, l := range contentLines {
		if len(l) >= minIndent {
			l = l[minIndent:]
		} else {
			l = strings.TrimLeft(l, " ")
		}
		*out = append(*out, pfx+l)
	}
}
