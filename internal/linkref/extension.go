package linkref

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Extension wires the collect/rewrite transformer and the superscript/
// references renderer into a goldmark.Markdown instance.
type Extension struct{}

// New returns the goldmark.Extender to pass to goldmark.WithExtensions.
func New() goldmark.Extender {
	return &Extension{}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(NewASTTransformer(), 999),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewHTMLRenderer(), 500),
		),
	)
}

// Render parses markdown with the link-reference extension active and
// returns the rendered HTML. It is the entry point the digest and archive
// renderers use; component N never runs standalone.
func Render(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(New()))
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
