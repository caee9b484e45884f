// -----------------------------------------------------------------------
// Mail Pipe - component J: fenced-block promotion
// -----------------------------------------------------------------------

package mailpipe

import "strings"

// PromoteFencedBlocks implements component J: 4-space indented code at
// column zero (not inside a blockquote, not inside a list item — those are
// L's and K's responsibility respectively) is converted into a fenced
// block, passing any already-fenced region straight through.
func PromoteFencedBlocks(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))

	inExistingFenced := false
	inListContext := false
	inBlock := false
	var block codeBlock

	flush := func() {
		if !inBlock {
			return
		}
		emitDedented(&out, block.prefix, block.lines)
		out = append(out, block.prefix.normalized()+"```")
		inBlock = false
		block.reset()
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isFenceMarker(trimmed) {
			flush()
			inExistingFenced = !inExistingFenced
			out = append(out, line)
			continue
		}

		if inExistingFenced {
			out = append(out, line)
			continue
		}

		switch {
		case trimmed == "":
			// blank lines hold whatever list context is already active
		case isListItem(trimmed):
			inListContext = true
		case leadingSpaces(line) == 0:
			inListContext = false
		}

		_, code, isCode := jIndentedCodeInfo(line, inListContext)

		if !inBlock {
			if isCode {
				if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
					out = append(out, "")
				}
				out = append(out, "```")
				inBlock = true
				block.prefix = blockquotePrefix{}
				block.lines = append(block.lines, code)
			} else {
				out = append(out, line)
			}
			continue
		}

		switch {
		case isCode:
			block.lines = append(block.lines, code)
		case trimmed == "" && jMoreIndentedCodeAhead(lines, i+1, inListContext):
			block.lines = append(block.lines, "")
		case isClosingPunctuation(trimmed):
			p, _ := splitPrefix(line)
			if p.depth == 0 {
				block.lines = append(block.lines, line)
			} else {
				flush()
				out = append(out, line)
			}
		default:
			flush()
			out = append(out, line)
		}
	}
	flush()
	return strings.Join(out, "\n")
}

// jIndentedCodeInfo classifies a line for J's purposes: a 4-space-indented,
// non-blockquoted, non-email-header line yields its dedented content.
// Blockquote-indented code is L's responsibility, never J's.
func jIndentedCodeInfo(line string, inListContext bool) (prefix blockquotePrefix, code string, ok bool) {
	if inListContext {
		return blockquotePrefix{}, "", false
	}
	p, _ := splitPrefix(line)
	if p.depth > 0 {
		return blockquotePrefix{}, "", false
	}
	if leadingSpaces(line) < 4 {
		return blockquotePrefix{}, "", false
	}
	trimmed := strings.TrimSpace(line)
	if isEmailHeaderLine(trimmed) {
		return blockquotePrefix{}, "", false
	}
	return blockquotePrefix{}, line[4:], true
}

// jMoreIndentedCodeAhead reports whether the next non-blank line is itself
// qualifying indented code, letting a blank line inside a block survive.
func jMoreIndentedCodeAhead(lines []string, start int, inListContext bool) bool {
	for i := start; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			continue
		}
		_, _, ok := jIndentedCodeInfo(lines[i], inListContext)
		return ok
	}
	return false
}
