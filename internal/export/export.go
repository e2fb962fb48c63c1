// Package export turns the current profile into downloadable artifacts.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/types"
)

// Format is an export format.
type Format string

// Supported export formats
const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// formatInfo describes how each format is named and typed.
var formatInfo = map[Format]struct {
	ext         string
	contentType string
}{
	FormatJSON:     {"json", "application/json"},
	FormatMarkdown: {"md", "text/markdown"},
	FormatText:     {"txt", "text/plain"},
	FormatHTML:     {"html", "text/html"},
	FormatPDF:      {"pdf", "application/pdf"},
}

// Formats lists every supported format in menu order.
func Formats() []Format {
	return []Format{FormatJSON, FormatMarkdown, FormatText, FormatHTML, FormatPDF}
}

// ParseFormat accepts format names case-insensitively, plus "md" and "txt".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatMarkdown, FormatText, FormatHTML, FormatPDF:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// Extension returns the filename extension without a dot.
func (f Format) Extension() string { return formatInfo[f].ext }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string { return formatInfo[f].contentType }

// Artifact is a named download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Filename returns "<company>_analysis.<ext>".
func Filename(company string, format Format) string {
	return fmt.Sprintf("%s_analysis.%s", company, format.Extension())
}

// ReportGenerator renders prose reports. Engines satisfy it.
type ReportGenerator interface {
	GenerateLeadReport(ctx context.Context, company string, format engine.ReportFormat) (string, error)
}

// Exporter produces artifacts. It never changes engine state.
type Exporter struct {
	reports ReportGenerator
}

// New creates an Exporter that delegates prose reports to reports.
func New(reports ReportGenerator) *Exporter {
	return &Exporter{reports: reports}
}

// Export builds the artifact for profile in the requested format.
func (e *Exporter) Export(ctx context.Context, profile *types.Profile, company string, format Format) (*Artifact, error) {
	if _, ok := formatInfo[format]; !ok {
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	log.Debug().Str("company", company).Str("format", string(format)).Msg("exporting profile")

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = encodeJSON(profile)
	case FormatMarkdown:
		data, err = e.report(ctx, company, engine.ReportMarkdown)
	case FormatText:
		data, err = e.report(ctx, company, engine.ReportText)
	case FormatHTML:
		var md []byte
		if md, err = e.report(ctx, company, engine.ReportMarkdown); err == nil {
			data, err = MarkdownToHTML(company+" Lead Report", md)
		}
	case FormatPDF:
		var md []byte
		if md, err = e.report(ctx, company, engine.ReportMarkdown); err == nil {
			data, err = MarkdownToPDF(company+" Lead Report", md)
		}
	}
	if err != nil {
		return nil, &Error{Company: company, Format: format, Cause: err}
	}

	return &Artifact{
		Filename:    Filename(company, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (e *Exporter) report(ctx context.Context, company string, format engine.ReportFormat) ([]byte, error) {
	if e.reports == nil {
		return nil, fmt.Errorf("no report generator configured")
	}
	report, err := e.reports.GenerateLeadReport(ctx, company, format)
	if err != nil {
		return nil, err
	}
	return []byte(report), nil
}

// encodeJSON indents the profile's original document, keeping key order.
func encodeJSON(profile *types.Profile) ([]byte, error) {
	if profile == nil {
		return nil, fmt.Errorf("no profile to export")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, profile.Raw(), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent profile JSON: %w", err)
	}
	return buf.Bytes(), nil
}
