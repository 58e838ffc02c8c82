// Package markdown renders documentation pages with the markdown dialect the
// site record selects.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/kitware/sensei-site/site"
)

// Renderer converts markdown source to HTML.
type Renderer struct {
	md  goldmark.Markdown
	gfm bool
}

// New returns a renderer honoring opts. GitHub-flavored extensions (tables,
// strikethrough, autolinks, task lists) are only enabled when opts.GFMEnabled.
func New(opts site.MarkdownOptions) *Renderer {
	var exts []goldmark.Extender
	if opts.GFMEnabled {
		exts = append(exts, extension.GFM)
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		gfm: opts.GFMEnabled,
	}
}

// GFM reports whether GitHub-flavored extensions are enabled.
func (r *Renderer) GFM() bool {
	return r.gfm
}

// Render converts src to HTML.
func (r *Renderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Title returns the text of the first level-1 heading in src, or "" if there is none.
func (r *Renderer) Title(src []byte) string {
	doc := r.md.Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = string(headingText(h, src))
		return ast.WalkStop, nil
	})

	return title
}

func headingText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		buf.Write(headingText(c, src))
	}
	return buf.Bytes()
}
