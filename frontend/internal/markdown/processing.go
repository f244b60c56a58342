package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// TextProcessor renders page content written in markdown into safe HTML.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// raw HTML passes through goldmark and is cleaned by the policy below
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Table, extension.Linkify),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[a-z0-9-]+$`)).OnElements("h1", "h2", "h3", "h4")
	p.RequireNoFollowOnLinks(false)
	p.AllowRelativeURLs(true)

	return &TextProcessor{md: md, policy: p}
}

// Render converts markdown to sanitized HTML.
func (tp *TextProcessor) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tp.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(tp.policy.SanitizeBytes(buf.Bytes())), nil
}
