package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1f2937; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d5db; padding: 4px 10px; text-align: left; }
h1, h2 { border-bottom: 1px solid #e5e7eb; padding-bottom: 4px; }
</style>
</head>
<body>
%s</body>
</html>
`

// MarkdownToHTML renders a markdown report as a standalone HTML page.
func MarkdownToHTML(title string, md []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return []byte(fmt.Sprintf(htmlPage, html.EscapeString(title), body.String())), nil
}
