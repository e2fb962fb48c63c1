package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/types"
)

const reportProfile = `{
	"founded_year": 2012,
	"industry": "Logistics",
	"why_invest": "Efficient operator. Investment score: 64/100",
	"summary": "Freight marketplace.",
	"funding_rounds": [{"type": "Seed", "amount": "$1M"}, {"amount": "$9M"}],
	"growth_signals": "Hiring, Partnerships",
	"contact_info": {"emails": ["sales@freight.example"], "phones": ["+1 555 0100"]},
	"social_links": {"linkedin": "https://linkedin.com/company/freight"}
}`

func TestRenderReport_Markdown(t *testing.T) {
	p, err := types.ParseProfile([]byte(reportProfile))
	require.NoError(t, err)

	report, err := RenderReport("Freight Co", p, ReportMarkdown)
	require.NoError(t, err)

	assert.Contains(t, report, "# Freight Co Lead Report")
	assert.Contains(t, report, "| Founded Year | 2012 |")
	assert.Contains(t, report, "**Investment score:** 64/100")
	assert.Contains(t, report, "**Risk:** Moderate Risk")
	assert.Contains(t, report, "- Seed: $1M")
	assert.Contains(t, report, "- Round 2: $9M")
	assert.Contains(t, report, "- Partnerships (1)")
	assert.Contains(t, report, "**Email:** sales@freight.example")
	assert.Contains(t, report, "**Linkedin:** https://linkedin.com/company/freight")
}

func TestRenderReport_Text(t *testing.T) {
	p, err := types.ParseProfile([]byte(reportProfile))
	require.NoError(t, err)

	report, err := RenderReport("Freight Co", p, ReportText)
	require.NoError(t, err)

	assert.Contains(t, report, "FREIGHT CO LEAD REPORT\n======================")
	assert.Contains(t, report, "Investment score   64/100")
	assert.NotContains(t, report, "**")
	assert.NotContains(t, report, "|")
}

func TestRenderReport_TextRuleMatchesNonASCIIName(t *testing.T) {
	p, err := types.ParseProfile([]byte(reportProfile))
	require.NoError(t, err)

	report, err := RenderReport("Café Zürich", p, ReportText)
	require.NoError(t, err)

	lines := strings.SplitN(report, "\n", 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "CAFÉ ZÜRICH LEAD REPORT", lines[0])
	assert.Equal(t, strings.Repeat("=", 23), lines[1])
}

func TestRenderReport_EmptyProfile(t *testing.T) {
	p, err := types.ParseProfile([]byte(`{}`))
	require.NoError(t, err)

	report, err := RenderReport("Ghost", p, ReportMarkdown)
	require.NoError(t, err)
	assert.Contains(t, report, "No growth signals data available.")
	assert.NotContains(t, report, "### Funding Rounds")

	text, err := RenderReport("Ghost", p, ReportText)
	require.NoError(t, err)
	assert.Contains(t, text, "No growth signals data available.")
}
