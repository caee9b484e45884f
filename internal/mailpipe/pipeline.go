// -----------------------------------------------------------------------
// Mail Pipe - pipeline driver: A -> B -> ... -> L
// -----------------------------------------------------------------------

package mailpipe

import (
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
)

// blankRunPattern collapses three or more consecutive newlines into two,
// i.e. at most one blank line between any two pieces of content.
var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// Config carries the small set of constants the pipeline treats as
// immutable after startup: the archive host/prefix it recognizes and the
// local prefix rewritten links are mapped onto.
type Config struct {
	ArchiveHost    string
	ArchivePrefix  string
	RenderedPrefix string
}

// Pipeline runs the mail body normalization pipeline: a sequence of pure
// text transformations over a single string.
type Pipeline struct {
	logger      arbor.ILogger
	linkExtract *LinkExtractor
}

// NewPipeline builds a Pipeline bound to the given archive URL configuration.
func NewPipeline(logger arbor.ILogger, cfg Config) *Pipeline {
	return &Pipeline{
		logger:      logger,
		linkExtract: NewLinkExtractor(cfg.ArchiveHost, cfg.ArchivePrefix, cfg.RenderedPrefix),
	}
}

// Normalize runs the raw preformatted body of an archived message through
// the full pipeline (A through L) and returns the resulting Markdown. The
// output ends in exactly one "\n" unless it is empty, which happens when body
// is empty or when nothing is left after normalization.
func (p *Pipeline) Normalize(body, list, yearMonth, id string, rewriteLinks bool) string {
	if body == "" {
		return ""
	}

	p.debug("A link-extract")
	text := p.linkExtract.Extract(body, rewriteLinks)

	p.debug("B entity/whitespace normalize")
	text = NormalizeEntities(text)

	p.debug("C blockquote normalize")
	text = NormalizeBlockquotes(text)

	p.debug("D separator stylize")
	text = StylizeSeparators(text)

	p.debug("E header-block renest")
	text = RenestHeaderBlocks(text)

	p.debug("F light-code promote")
	text = PromoteLightCode(text)

	p.debug("G post-quote separator")
	text = InsertPostQuoteSeparators(text)

	p.debug("H wrap-orphan join")
	text = JoinWrapOrphans(text)

	p.debug("I continuation-orphan join")
	text = JoinContinuationOrphans(text)

	text = stripTrailingAndCollapseBlanks(text)

	p.debug("J fence promote")
	text = PromoteFencedBlocks(text)

	p.debug("K list-code promote")
	text = PromoteListCode(text)

	p.debug("L column-zero promote")
	text = PromoteColumnZeroCode(text)

	return finalizeOutput(text)
}

func (p *Pipeline) debug(stage string) {
	if p.logger == nil {
		return
	}
	p.logger.Debug().Str("stage", stage).Msg("mailpipe: running stage")
}

// stripTrailingAndCollapseBlanks trims trailing whitespace from every line,
// drops trailing blank lines, and collapses runs of 2+ blank lines to one,
// the housekeeping pass between the orphan joiners and the fence promoters.
func stripTrailingAndCollapseBlanks(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	text = strings.Join(lines, "\n")
	return blankRunPattern.ReplaceAllString(text, "\n\n")
}

// finalizeOutput guarantees the output ends in exactly one "\n" unless it
// is empty.
func finalizeOutput(text string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}
