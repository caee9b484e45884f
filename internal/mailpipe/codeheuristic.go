// -----------------------------------------------------------------------
// Mail Pipe - component M: the shared "looks like code" predicate
// -----------------------------------------------------------------------

package mailpipe

import (
	"regexp"
	"strings"
)

// markdownLinkPattern strips already-formed Markdown links before the code
// heuristic runs, so link text never trips the punctuation checks below.
var markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)

// bigOPattern excludes algorithmic complexity notation from the method-call
// pattern; "O(n log n)" in prose must never be mistaken for a call.
var bigOPattern = regexp.MustCompile(`(?i)\bo\(`)

// wordAdjacentDoubleDash matches "--" immediately touching a word character
// on at least one side, e.g. "a--" or "--a", but not a bare "--" separator.
var wordAdjacentDoubleDash = regexp.MustCompile(`\w--|--\w`)

// doubleSlashNotURL matches "//" that is not part of a "://" scheme marker.
var doubleSlashNotURL = regexp.MustCompile(`[^:]//`)

// methodCallPattern matches identifier(...) call/generic/tuple shapes:
// foo(...), (x, y), <T>(, ) {, Identifier<T>.
var methodCallPattern = regexp.MustCompile(`[A-Za-z_]\w*\(.*\)|\([\w\s]+,\s*[\w\s]+\)|<\w+>\(|\)\s*\{|[A-Za-z_]\w*<\w+>`)

// typedDeclPattern matches "TYPE name =" where TYPE is a known primitive
// keyword or a bare/generic identifier.
var typedDeclPattern = regexp.MustCompile(`^(int|long|double|float|boolean|char|byte|short|var|String|[A-Za-z_]\w*(<[\w, ]+>)?)\s+[A-Za-z_]\w*\s*=`)

// simpleAssignPattern matches "ident = ident;".
var simpleAssignPattern = regexp.MustCompile(`^[A-Za-z_]\w*\s*=\s*[A-Za-z_][\w.]*\s*;\s*$`)

// bareDeclPattern matches "TypeName ident;".
var bareDeclPattern = regexp.MustCompile(`^[A-Za-z_]\w*\s+[A-Za-z_]\w*\s*;\s*$`)

// operatorTokens is the fixed punctuation set that is on its own sufficient
// evidence of code.
var operatorTokens = []string{"->", "=>", "==", "!=", "<=", ">=", "&&", "||", "{", "}", "/*", "*/", "++"}

// looksLikeCode implements the code-like line predicate. s must already be
// trimmed; the caller is responsible for that (callers vary in whether they
// trim first or pass a raw slice).
func looksLikeCode(s string) bool {
	if s == "" {
		return false
	}
	t := markdownLinkPattern.ReplaceAllString(s, "")
	t = strings.TrimSpace(t)
	if t == "" {
		return false
	}

	for _, tok := range operatorTokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	if doubleSlashNotURL.MatchString(t) || strings.HasPrefix(t, "//") {
		return true
	}
	if wordAdjacentDoubleDash.MatchString(t) {
		return true
	}

	if isMethodCallShape(t) {
		return true
	}
	if typedDeclPattern.MatchString(t) {
		return true
	}
	if simpleAssignPattern.MatchString(t) || bareDeclPattern.MatchString(t) {
		return true
	}
	return false
}

// isMethodCallShape applies the method-call/generic/tuple pattern with the
// Big-O exclusion carved out.
func isMethodCallShape(t string) bool {
	if !methodCallPattern.MatchString(t) {
		return false
	}
	// A bare "O(...)"/"o(...)" expression alone is Big-O notation, not a
	// call, unless some other evidence already matched (callers only reach
	// here when no operator/slash/dash evidence fired).
	stripped := bigOPattern.ReplaceAllString(t, "")
	if stripped == t {
		return true
	}
	// Re-test the pattern with Big-O occurrences removed; if nothing is
	// left that looks like a call, this was prose discussing complexity.
	return methodCallPattern.MatchString(stripped)
}

// isEmailHeaderLine reports whether the trimmed line is a forwarded/quoted
// email header, which is never treated as code regardless of indentation.
func isEmailHeaderLine(trimmed string) bool {
	return emailHeaderPattern.MatchString(trimmed)
}

// isListItem reports whether the trimmed line opens a list item.
func isListItem(trimmed string) bool {
	return listMarkerPattern.MatchString(trimmed)
}

// isFenceMarker reports whether the trimmed line opens/closes a fenced block.
func isFenceMarker(trimmed string) bool {
	return fenceMarkerPattern.MatchString(trimmed)
}

// isClosingPunctuation reports whether the trimmed line is pure closing
// punctuation, the shape a hard-wrapped closing brace/paren strands alone.
func isClosingPunctuation(trimmed string) bool {
	return closingPunctuationPattern.MatchString(trimmed)
}

// leadingSpaces counts the leading ASCII space run of a line (tabs are not
// counted; archive bodies are space-indented).
func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
