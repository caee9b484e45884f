package linkref

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// htmlRenderer renders LinkRefNode and ReferencesBlockNode. HTML escaping
// replaces & < > " with entities in that order, matching the escaping rule
// the rest of the document's links use.
type htmlRenderer struct{}

// NewHTMLRenderer returns the renderer.NodeRenderer to register with
// renderer.WithNodeRenderers.
func NewHTMLRenderer() renderer.NodeRenderer {
	return &htmlRenderer{}
}

func (r *htmlRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindLinkRef, r.renderLinkRef)
	reg.Register(KindReferencesBlock, r.renderReferencesBlock)
}

func (r *htmlRenderer) renderLinkRef(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*LinkRefNode)
	w.WriteString(`<sup><a href="`)
	w.WriteString(escapeHTML(node.URL))
	w.WriteString(`">[`)
	w.WriteString(strconv.Itoa(node.Number))
	w.WriteString(`]</a></sup>`)
	return ast.WalkSkipChildren, nil
}

func (r *htmlRenderer) renderReferencesBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*ReferencesBlockNode)
	w.WriteString("<hr>\n")
	w.WriteString(`<div class="link-references"><p><strong>References:</strong></p><ol>`)
	for _, e := range node.Entries {
		esc := escapeHTML(e.URL)
		w.WriteString(`<li><a href="`)
		w.WriteString(esc)
		w.WriteString(`">`)
		w.WriteString(esc)
		w.WriteString(`</a></li>`)
	}
	w.WriteString("</ol></div>\n")
	return ast.WalkSkipChildren, nil
}

// escapeHTML replaces & < > " with their entities, in that order, per the
// footnote renderer's escaping rule.
func escapeHTML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
