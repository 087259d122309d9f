package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/itchan-dev/minichan/shared/logger"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// >>123 in already escaped html
var threadLinkRegex = regexp.MustCompile(`&gt;&gt;(\d+)`)

// TextProcessor turns a message body into safe HTML. Only a small markdown
// subset is parsed: fenced code, code spans, emphasis, strikethrough and
// '>' quote lines. Headings, lists and raw HTML are left as plain text.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithHardWraps(),
		),
		goldmark.WithExtensions(extension.Strikethrough, quotes{}),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile("^thread-link$")).OnElements("a")
	policy.AllowAttrs("class").Matching(regexp.MustCompile("^quote$")).OnElements("span")
	policy.RequireNoFollowOnLinks(false)
	policy.AllowRelativeURLs(true)

	return &TextProcessor{md: md, policy: policy}
}

// Render converts message text to sanitized HTML ready for a template.
func (tp *TextProcessor) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		// fall back to the escaped source rather than failing the page
		logger.Log.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	linked := threadLinkRegex.ReplaceAllString(strings.TrimSpace(buf.String()), `<a href="/thread/$1" class="thread-link">&gt;&gt;$1</a>`)
	return template.HTML(tp.policy.Sanitize(linked))
}
