package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	summaryPolicy = bluemonday.UGCPolicy()

	// Comments are plain text; strip everything.
	textPolicy = bluemonday.StrictPolicy()
)

// RenderMarkdown converts a concall summary (pipeline-produced markdown)
// to sanitized HTML for the company page.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)) // fallback
	}
	return template.HTML(summaryPolicy.SanitizeBytes(buf.Bytes()))
}

// SanitizeText strips all markup from visitor-supplied text.
func SanitizeText(s string) string {
	return textPolicy.Sanitize(s)
}
