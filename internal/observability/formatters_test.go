package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/metrics"
	"github.com/jonathan/leadgen/internal/types"
)

const printerProfile = `{
	"founded_year": 2018,
	"company_age": 7,
	"industry": "Climate Tech",
	"why_invest": "Growing carbon removal demand. Investment score: 92/100",
	"summary": "Direct air capture modules for industrial sites.",
	"revenue_est": "$4M",
	"funding_rounds": [{"type": "Seed", "amount": "$3M"}, {"type": "Series A", "amount": "$15M"}],
	"growth_signals": "Hiring, Hiring, New plant",
	"team_size": "45",
	"contact_info": {"emails": ["info@airco.example"]},
	"social_links": {"linkedin": "https://linkedin.com/company/airco"}
}`

func buildDashboard(t *testing.T, doc string) *metrics.Dashboard {
	t.Helper()
	p, err := types.ParseProfile([]byte(doc))
	require.NoError(t, err)
	return metrics.BuildDashboard(p)
}

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDashboard("AirCo", buildDashboard(t, printerProfile))
	output := buf.String()

	assert.Contains(t, output, "AIRCO OVERVIEW")
	assert.Contains(t, output, "Climate Tech")
	assert.Contains(t, output, "7 years")
	assert.Contains(t, output, "Score: 92/100   Low Risk")
	assert.Contains(t, output, "Above the 90 threshold")
	assert.Contains(t, output, "2021  Series A")
	assert.Contains(t, output, "Hiring")
	assert.Contains(t, output, "info@airco.example")
	assert.Contains(t, output, "Linkedin:")
}

func TestPrintDashboard_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDashboard("Nobody", nil)
	assert.Empty(t, buf.String())
}

func TestPrintGrowth_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGrowth(metrics.Growth{})
	assert.Contains(t, buf.String(), "No growth signals data available.")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDashboard("AirCo", buildDashboard(t, printerProfile))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestGaugeBar(t *testing.T) {
	bar := gaugeBar(metrics.BuildGauge(50))
	assert.Contains(t, bar, "+0")
	assert.Equal(t, gaugeWidth+len("[] +0"), utf8.RuneCountInString(bar))

	assert.Contains(t, gaugeBar(metrics.BuildGauge(130)), "+50")
}

func TestWrap(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(wrap(text, 20), "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
	assert.Equal(t, "", wrap("", 10))
}
