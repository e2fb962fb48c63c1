package engine

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/jonathan/leadgen/internal/metrics"
	"github.com/jonathan/leadgen/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var reportTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

// reportData is the template context for both report layouts.
type reportData struct {
	Company   string
	Rule      string
	Dashboard *metrics.Dashboard
}

// RenderReport lays out a lead report for a profile.
func RenderReport(company string, profile *types.Profile, format ReportFormat) (string, error) {
	var name string
	switch format {
	case ReportMarkdown:
		name = "report.md.tmpl"
	case ReportText:
		name = "report.txt.tmpl"
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}

	data := reportData{
		Company:   strings.TrimSpace(company),
		Dashboard: metrics.BuildDashboard(profile),
	}
	if format == ReportText {
		data.Company = strings.ToUpper(data.Company)
	}
	// Underlines "<company> LEAD REPORT" in the text layout.
	data.Rule = strings.Repeat("=", utf8.RuneCountInString(data.Company)+len(" LEAD REPORT"))

	var sb strings.Builder
	if err := reportTemplates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return sb.String(), nil
}
