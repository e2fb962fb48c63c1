package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/scoring"
	"github.com/jonathan/leadgen/internal/types"
)

func TestBuildDashboard(t *testing.T) {
	p, err := types.ParseProfile([]byte(`{
		"founded_year": 2016,
		"company_age": 9,
		"industry": "Climate",
		"why_invest": "Category leader. Investment score: 82/100",
		"summary": "Grid-scale storage.",
		"revenue_est": "$40M",
		"funding_rounds": [{"type": "Seed", "amount": "$2M"}],
		"growth_signals": "Hiring, Expansion, Hiring",
		"contact_info": {"emails": ["ir@example.com"]},
		"social_links": {"linkedin": "https://linkedin.com/company/example", "x": "https://x.com/example"}
	}`))
	require.NoError(t, err)

	d := BuildDashboard(p)

	assert.Equal(t, "2016", d.Overview[0].Value)
	assert.Equal(t, "9 years", d.Overview[1].Value)
	assert.Equal(t, "Climate", d.Overview[2].Value)

	assert.Equal(t, 82, d.Investment.Score)
	assert.Equal(t, scoring.RiskLow, d.Investment.Risk)
	assert.Equal(t, scoring.SeverityLow, d.Investment.Severity)
	assert.Equal(t, 82, d.Investment.Gauge.Value)
	assert.Equal(t, "Category leader. Investment score: 82/100", d.Investment.Recommendation)

	assert.Equal(t, "Grid-scale storage.", d.Summary)
	assert.Equal(t, "$40M", d.Financial.Cards[0].Value)
	assert.Equal(t, "N/A", d.Financial.Cards[1].Value)
	assert.Len(t, d.Financial.Timeline, 1)

	assert.Equal(t, []SignalCount{{"Hiring", 2}, {"Expansion", 1}}, d.Growth.Histogram)
	assert.Equal(t, []string{"Hiring", "Expansion", "Hiring"}, d.Growth.Signals)

	assert.Equal(t, "N/A", d.Team.TeamSize.Value)
	assert.Equal(t, []string{"ir@example.com"}, d.Team.Emails)
	assert.Empty(t, d.Team.Phones)
	require.Len(t, d.Team.Social, 2)
	assert.Equal(t, "Linkedin", d.Team.Social[0].Label)
	assert.Equal(t, "X", d.Team.Social[1].Label)

	assert.JSONEq(t, string(p.Raw()), string(d.Raw))
}

func TestBuildDashboard_EmptyProfile(t *testing.T) {
	p, err := types.ParseProfile([]byte(`{}`))
	require.NoError(t, err)

	d := BuildDashboard(p)
	assert.Equal(t, "N/A", d.Overview[1].Value)
	assert.Equal(t, scoring.DefaultScore, d.Investment.Score)
	assert.Equal(t, scoring.RiskModerateHigh, d.Investment.Risk)
	assert.Equal(t, "N/A", d.Investment.Recommendation)
	assert.Empty(t, d.Financial.Timeline)
	assert.Empty(t, d.Growth.Histogram)
	assert.Empty(t, d.Team.Social)

	_, err = json.Marshal(d)
	require.NoError(t, err)
}

func TestBuildDashboard_NilProfile(t *testing.T) {
	d := BuildDashboard(nil)
	require.NotNil(t, d)
	assert.Equal(t, scoring.DefaultScore, d.Investment.Score)
	assert.JSONEq(t, `{}`, string(d.Raw))
}
