// Package observability provides logger setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/leadgen/internal/metrics"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// gaugeWidth is the number of cells in the score bar
	gaugeWidth = 40
	// barWidth is the maximum length of a histogram bar
	barWidth = 20
)

// Printer handles formatted output for the terminal dashboard
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		runes := []rune(line)
		if len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		// %-*s pads by bytes; pad by runes for box-drawing characters.
		pad := boxWidth - 4 - len([]rune(line))
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", max(pad, 0)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDashboard outputs every section of the dashboard as boxes.
func (p *Printer) PrintDashboard(company string, d *metrics.Dashboard) {
	if d == nil {
		return
	}
	p.PrintOverview(company, d)
	p.PrintInvestment(d.Investment)
	p.PrintFinancial(d.Financial)
	p.PrintGrowth(d.Growth)
	p.PrintTeam(d.Team)
}

// PrintOverview outputs the overview cards and summary.
func (p *Printer) PrintOverview(company string, d *metrics.Dashboard) {
	var sb strings.Builder
	writeCards(&sb, d.Overview)
	if d.Summary != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(d.Summary, boxWidth-4))
	}
	p.printBox(strings.ToUpper(company)+" OVERVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInvestment outputs the score gauge, risk level and recommendation.
func (p *Printer) PrintInvestment(inv metrics.Investment) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100   %s\n", inv.Score, inv.Risk))
	sb.WriteString(gaugeBar(inv.Gauge))
	sb.WriteString("\n")
	if inv.Gauge.AboveThreshold() {
		sb.WriteString(fmt.Sprintf("Above the %d threshold\n", inv.Gauge.Threshold))
	}
	sb.WriteString("\n")
	sb.WriteString(wrap(inv.Recommendation, boxWidth-4))
	p.printBox("INVESTMENT ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFinancial outputs the financial cards and funding timeline.
func (p *Printer) PrintFinancial(f metrics.Financial) {
	var sb strings.Builder
	writeCards(&sb, f.Cards)
	if len(f.Timeline) > 0 {
		sb.WriteString("\nFunding timeline:\n")
		for _, entry := range f.Timeline {
			sb.WriteString(fmt.Sprintf("  %d  %-18s %s\n", entry.Year, entry.RoundLabel, entry.Amount))
		}
	}
	p.printBox("FINANCIAL METRICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGrowth outputs the growth signal histogram.
func (p *Printer) PrintGrowth(g metrics.Growth) {
	if len(g.Histogram) == 0 {
		p.printBox("GROWTH SIGNALS", "No growth signals data available.")
		return
	}

	peak := 0
	for _, sc := range g.Histogram {
		peak = max(peak, sc.Count)
	}

	var sb strings.Builder
	for _, sc := range g.Histogram {
		n := sc.Count * barWidth / peak
		label := sc.Signal
		if len([]rune(label)) > 24 {
			label = string([]rune(label)[:21]) + "..."
		}
		sb.WriteString(fmt.Sprintf("%-24s %s %d\n", label, strings.Repeat("█", max(n, 1)), sc.Count))
	}
	p.printBox("GROWTH SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTeam outputs team size, locations, contacts and social links.
func (p *Printer) PrintTeam(t metrics.Team) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Team size:  %s\n", t.TeamSize.Value))
	sb.WriteString(fmt.Sprintf("Locations:  %s\n", t.Locations))
	for _, email := range t.Emails {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", email))
	}
	for _, phone := range t.Phones {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", phone))
	}
	for _, link := range t.Social {
		sb.WriteString(fmt.Sprintf("%-11s %s\n", link.Label+":", link.URL))
	}
	p.printBox("TEAM & CONTACT", strings.TrimSuffix(sb.String(), "\n"))
}

func writeCards(sb *strings.Builder, cards []metrics.Card) {
	for _, card := range cards {
		sb.WriteString(fmt.Sprintf("%-18s %s\n", card.Title, card.Value))
	}
}

// gaugeBar draws the clipped score on a 0-100 scale with the reference mark.
func gaugeBar(g metrics.Gauge) string {
	span := g.Max - g.Min
	if span <= 0 {
		return ""
	}
	filled := (g.Value - g.Min) * gaugeWidth / span
	ref := (g.Reference - g.Min) * gaugeWidth / span

	cells := make([]rune, gaugeWidth)
	for i := range cells {
		switch {
		case i < filled:
			cells[i] = '█'
		default:
			cells[i] = '░'
		}
	}
	if ref >= 0 && ref < gaugeWidth {
		cells[ref] = '│'
	}
	return fmt.Sprintf("[%s] %+d", string(cells), g.Delta)
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) string {
	var sb strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		n := len([]rune(word))
		if line > 0 && line+1+n > width {
			sb.WriteString("\n")
			line = 0
		}
		if line > 0 {
			sb.WriteString(" ")
			line++
		}
		sb.WriteString(word)
		line += n
	}
	return sb.String()
}
