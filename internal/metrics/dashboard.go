package metrics

import (
	"encoding/json"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/leadgen/internal/scoring"
	"github.com/jonathan/leadgen/internal/types"
)

// Card is a single labelled metric.
type Card struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Investment is the scored recommendation section.
type Investment struct {
	Score          int               `json:"score"`
	Gauge          Gauge             `json:"gauge"`
	Risk           scoring.RiskLevel `json:"risk"`
	Severity       scoring.Severity  `json:"severity"`
	Recommendation string            `json:"recommendation"`
}

// Financial is the money section.
type Financial struct {
	Cards    []Card          `json:"cards"`
	Timeline []TimelineEntry `json:"timeline"`
}

// Growth is the growth-signal section.
type Growth struct {
	Histogram []SignalCount `json:"histogram"`
	Signals   []string      `json:"signals"`
}

// SocialEntry is a social link with a display platform name.
type SocialEntry struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

// Team is the team & contact section.
type Team struct {
	TeamSize  Card          `json:"team_size"`
	Locations string        `json:"locations"`
	Emails    []string      `json:"emails"`
	Phones    []string      `json:"phones"`
	Social    []SocialEntry `json:"social"`
}

// Dashboard is everything a rendering host needs to paint one profile.
type Dashboard struct {
	Overview   []Card          `json:"overview"`
	Investment Investment      `json:"investment"`
	Summary    string          `json:"summary"`
	Financial  Financial       `json:"financial"`
	Growth     Growth          `json:"growth"`
	Team       Team            `json:"team"`
	Raw        json.RawMessage `json:"raw"`
}

// BuildDashboard derives every view of p. A nil profile yields an empty dashboard.
func BuildDashboard(p *types.Profile) *Dashboard {
	if p == nil {
		p = &types.Profile{}
	}

	score := scoring.ExtractScore(p.WhyInvest().Or(""))
	gauge := BuildGauge(score)
	contact := p.ContactInfo()

	return &Dashboard{
		Overview: []Card{
			{Title: "Founded Year", Value: p.FoundedYear().String(), Description: "Company establishment year"},
			{Title: "Company Age", Value: companyAge(p.CompanyAge()), Description: "Years since founding"},
			{Title: "Industry", Value: p.Industry().String(), Description: "Primary business sector"},
		},
		Investment: Investment{
			Score:          score,
			Gauge:          gauge,
			Risk:           gauge.Risk,
			Severity:       gauge.Risk.Severity(),
			Recommendation: p.WhyInvest().String(),
		},
		Summary: p.Summary().String(),
		Financial: Financial{
			Cards: []Card{
				{Title: "Revenue Estimate", Value: p.RevenueEst().String(), Description: "Annual revenue projection"},
				{Title: "Total Funding", Value: p.TotalFundingRaised().String(), Description: "Total capital raised"},
				{Title: "Valuation", Value: p.Valuation().String(), Description: "Company valuation"},
			},
			Timeline: BuildFundingTimeline(p.FundingRounds()),
		},
		Growth: Growth{
			Histogram: BuildGrowthHistogram(p.GrowthSignals().Or("")),
			Signals:   GrowthSignalList(p.GrowthSignals().Or("")),
		},
		Team: Team{
			TeamSize:  Card{Title: "Team Size", Value: p.TeamSize().String(), Description: "Number of employees"},
			Locations: p.Locations().String(),
			Emails:    contact.Emails,
			Phones:    contact.Phones,
			Social:    socialEntries(p.SocialLinks()),
		},
		Raw: json.RawMessage(p.Raw()),
	}
}

// companyAge renders "<n> years", or "N/A" when the age is unknown.
func companyAge(age types.Scalar) string {
	if !age.Known() {
		return types.NotAvailable
	}
	return age.String() + " years"
}

func socialEntries(links []types.SocialLink) []SocialEntry {
	title := cases.Title(language.English)
	entries := make([]SocialEntry, 0, len(links))
	for _, link := range links {
		entries = append(entries, SocialEntry{
			Platform: link.Platform,
			Label:    title.String(link.Platform),
			URL:      link.URL,
		})
	}
	return entries
}
