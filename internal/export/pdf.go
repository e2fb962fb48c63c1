package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const (
	pdfFont       = "Arial"
	pdfLineHeight = 5.0
	pdfIndent     = 6.0
)

// MarkdownToPDF lays out a markdown report on A4 pages.
func MarkdownToPDF(title string, md []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", 10)

	doc := markdown.Parser().Parse(text.NewReader(md))
	r := &pdfRenderer{
		pdf:    pdf,
		source: md,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
	r.renderBlocks(doc)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfRenderer walks a goldmark AST and writes it with fpdf.
type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	tr     func(string) string
	bold   bool
	italic bool
	depth  int
}

func (r *pdfRenderer) renderBlocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.renderBlock(n)
	}
}

func (r *pdfRenderer) renderBlock(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		sizes := map[int]float64{1: 18, 2: 14, 3: 12}
		size, ok := sizes[node.Level]
		if !ok {
			size = 11
		}
		r.pdf.Ln(2)
		r.pdf.SetFont(pdfFont, "B", size)
		r.pdf.MultiCell(0, size*0.5, r.tr(plainText(node, r.source)), "", "L", false)
		r.pdf.SetFont(pdfFont, "", 10)
		r.pdf.Ln(1)
	case *ast.Paragraph, *ast.TextBlock:
		r.renderInlines(node)
		r.pdf.Ln(pdfLineHeight + 1)
	case *ast.List:
		r.depth++
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			r.pdf.SetX(r.pdf.GetX() + pdfIndent*float64(r.depth))
			r.pdf.Write(pdfLineHeight, r.tr("- "))
			r.renderListItem(item)
		}
		r.depth--
		r.pdf.Ln(1)
	case *ast.ThematicBreak:
		left, _, right, _ := r.pdf.GetMargins()
		width, _ := r.pdf.GetPageSize()
		y := r.pdf.GetY() + 2
		r.pdf.Line(left, y, width-right, y)
		r.pdf.Ln(5)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var sb strings.Builder
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(r.source))
		}
		r.pdf.SetFont("Courier", "", 9)
		r.pdf.MultiCell(0, 4.5, r.tr(sb.String()), "", "L", false)
		r.pdf.SetFont(pdfFont, "", 10)
	case *extast.Table:
		r.renderTable(node)
	default:
		r.renderBlocks(node)
	}
}

func (r *pdfRenderer) renderListItem(item ast.Node) {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			r.renderInlines(child)
			r.pdf.Ln(pdfLineHeight)
		default:
			r.renderBlock(child)
		}
	}
}

func (r *pdfRenderer) renderInlines(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			r.pdf.Write(pdfLineHeight, r.tr(string(node.Segment.Value(r.source))))
			if node.SoftLineBreak() {
				r.pdf.Write(pdfLineHeight, " ")
			}
			if node.HardLineBreak() {
				r.pdf.Ln(pdfLineHeight)
			}
		case *ast.String:
			r.pdf.Write(pdfLineHeight, r.tr(string(node.Value)))
		case *ast.Emphasis:
			prevBold, prevItalic := r.bold, r.italic
			if node.Level >= 2 {
				r.bold = true
			} else {
				r.italic = true
			}
			r.setStyle()
			r.renderInlines(node)
			r.bold, r.italic = prevBold, prevItalic
			r.setStyle()
		case *ast.CodeSpan:
			r.pdf.SetFont("Courier", "", 9)
			r.pdf.Write(pdfLineHeight, r.tr(plainText(node, r.source)))
			r.setStyle()
		case *ast.Link:
			label := plainText(node, r.source)
			r.pdf.SetTextColor(30, 80, 180)
			r.pdf.WriteLinkString(pdfLineHeight, r.tr(label), string(node.Destination))
			r.pdf.SetTextColor(0, 0, 0)
		case *ast.AutoLink:
			url := string(node.URL(r.source))
			r.pdf.SetTextColor(30, 80, 180)
			r.pdf.WriteLinkString(pdfLineHeight, r.tr(url), url)
			r.pdf.SetTextColor(0, 0, 0)
		default:
			r.renderInlines(node)
		}
	}
}

func (r *pdfRenderer) setStyle() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(pdfFont, style, 10)
}

// renderTable draws equal-width bordered columns, header row in bold.
func (r *pdfRenderer) renderTable(table *extast.Table) {
	var rows [][]string
	header := -1
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.tr(plainText(cell, r.source)))
		}
		if _, ok := row.(*extast.TableHeader); ok {
			header = len(rows)
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	left, _, right, _ := r.pdf.GetMargins()
	pageWidth, _ := r.pdf.GetPageSize()
	width := (pageWidth - left - right) / float64(len(rows[0]))

	for i, cells := range rows {
		if i == header {
			r.pdf.SetFont(pdfFont, "B", 9)
		} else {
			r.pdf.SetFont(pdfFont, "", 9)
		}
		for _, cell := range cells {
			r.pdf.CellFormat(width, 6, cell, "1", 0, "L", false, 0, "")
		}
		r.pdf.Ln(6)
	}
	r.pdf.SetFont(pdfFont, "", 10)
	r.pdf.Ln(2)
}

// plainText concatenates the text content under n.
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
