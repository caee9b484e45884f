// -----------------------------------------------------------------------
// Mail Pipe - component A: link extraction and archive URL rewriting
// -----------------------------------------------------------------------

package mailpipe

import (
	"fmt"
	"regexp"
	"strings"
)

// anchorPattern matches <a href="URL">TEXT</a>, case-insensitive, tolerant
// of extra attributes and single/double quoting.
var anchorPattern = regexp.MustCompile(`(?is)<a\s+[^>]*href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a>`)

// ArchiveURLPattern builds the archive-URL matcher for a given host/prefix
// pair. It is exported so callers driving many extractions can compile it
// once and reuse it across a LinkExtractor.
func ArchiveURLPattern(archiveHost, archivePrefix string) *regexp.Regexp {
	return regexp.MustCompile(
		`^https?://` + regexp.QuoteMeta(archiveHost) + `/` + regexp.QuoteMeta(archivePrefix) +
			`/([^/]+)/([^/]+)/(\d+)\.html$`,
	)
}

// LinkExtractor rewrites inline anchor markup in a raw preformatted body
// into bare URLs or Markdown links, optionally rewriting archive URLs to
// their locally-rendered path.
type LinkExtractor struct {
	archivePattern *regexp.Regexp
	renderedPrefix string
}

// NewLinkExtractor builds a LinkExtractor bound to one archive host/prefix
// and the local path prefix rewritten archive links are mapped onto.
func NewLinkExtractor(archiveHost, archivePrefix, renderedPrefix string) *LinkExtractor {
	return &LinkExtractor{
		archivePattern: ArchiveURLPattern(archiveHost, archivePrefix),
		renderedPrefix: strings.Trim(renderedPrefix, "/"),
	}
}

// Extract replaces every anchor in body with a bare URL or Markdown link per
// the rules in the component's design: archive URLs are optionally rewritten
// to a local path, and redundant display text collapses to the bare URL.
func (le *LinkExtractor) Extract(body string, rewriteLinks bool) string {
	return anchorPattern.ReplaceAllStringFunc(body, func(match string) string {
		return le.replaceAnchor(body, match, rewriteLinks)
	})
}

func (le *LinkExtractor) replaceAnchor(body, match string, rewriteLinks bool) string {
	sub := anchorPattern.FindStringSubmatch(match)
	if sub == nil {
		return match
	}
	url := sub[1]
	text := strings.TrimSpace(stripTags(sub[2]))

	insideMarkdownLink := false
	if idx := strings.Index(body, match); idx > 0 && body[idx-1] == '(' {
		insideMarkdownLink = true
	}

	list, yearMonth, id, isArchive := le.classify(url)
	finalURL := url
	if rewriteLinks && isArchive {
		finalURL = fmt.Sprintf("/%s/%s/%s/%s.html", le.renderedPrefix, list, yearMonth, id)
	}

	switch {
	case insideMarkdownLink:
		return finalURL
	case rewriteLinks && isArchive:
		return fmt.Sprintf("[%s/%s/%s.html](%s)", list, yearMonth, id, finalURL)
	case text == url || strings.HasPrefix(text, "http"):
		return finalURL
	default:
		return fmt.Sprintf("[%s](%s)", text, finalURL)
	}
}

// classify reports whether url is an archive URL, and if so its component
// parts. Pattern: https?://<archive-host>/<archive-prefix>/<list>/<year-month>/<id>.html
func (le *LinkExtractor) classify(url string) (list, yearMonth, id string, isArchive bool) {
	sub := le.archivePattern.FindStringSubmatch(url)
	if sub == nil {
		return "", "", "", false
	}
	return sub[1], sub[2], sub[3], true
}

// stripTags removes any nested tags from anchor inner text, leaving plain
// text. Archive anchors sometimes wrap inner text in <tt> or <b>.
func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
