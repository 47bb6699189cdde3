package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders catalog copy written in markdown. Output is sanitized
// down to inline formatting, paragraphs, lists and links.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown creates a renderer with GitHub flavored markdown enabled.
func NewMarkdown() *Markdown {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "del", "code")
	p.AllowElements("p", "br", "ul", "ol", "li")
	p.AllowElements("a")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: p,
	}
}

// Render converts src to sanitized HTML.
func (m *Markdown) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}

// Inline renders src and strips the wrapping paragraph, for copy placed
// inside an existing block element.
func (m *Markdown) Inline(src string) (template.HTML, error) {
	out, err := m.Render(src)
	if err != nil {
		return "", err
	}
	b := bytes.TrimSpace([]byte(out))
	b = bytes.TrimPrefix(b, []byte("<p>"))
	b = bytes.TrimSuffix(b, []byte("</p>"))
	return template.HTML(b), nil //nolint:gosec // sanitized by Render
}
