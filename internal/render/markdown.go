// Package render turns post markdown into the HTML persisted next to
// it.
package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders a markdown body to HTML. Raw HTML in the source is
// skipped, so user-authored bodies cannot inject markup.
func Markdown(body string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(body))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML,
	})
	return string(markdown.Render(doc, renderer))
}

// Excerpt truncates a markdown body to a short leading excerpt when
// none was supplied. Markdown syntax is kept as written.
func Excerpt(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "…"
}
