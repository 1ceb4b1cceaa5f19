package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/vk/aplab/internal/chart"
	"gitlab.com/golang-commonmark/markdown"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var md = markdown.New(
	markdown.HTML(false),
	markdown.Tables(true),
	markdown.Linkify(false),
	markdown.Typographer(false),
)

var blockTemplates = template.Must(
	template.New("ui").Funcs(template.FuncMap{
		"markdown":   RenderMarkdown,
		"figureJSON": figureJSON,
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

// RenderMarkdown converts markdown source to HTML. Raw HTML in the source is
// escaped, not passed through.
func RenderMarkdown(src string) template.HTML {
	return template.HTML(md.RenderToString([]byte(src)))
}

func figureJSON(fig *chart.Figure) (string, error) {
	if fig == nil {
		return "{}", nil
	}
	return fig.JSON()
}

// RenderHTML renders a surface as an HTML fragment.
func RenderHTML(s *Surface) (template.HTML, error) {
	if s == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, "surface", s); err != nil {
		return "", fmt.Errorf("failed to render surface: %w", err)
	}
	return template.HTML(buf.String()), nil
}
