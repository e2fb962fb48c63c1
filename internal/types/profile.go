// Package types provides the record types shared across the leadgen pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// NotAvailable is the display value of any unknown scalar field.
const NotAvailable = "N/A"

// Profile field names as produced by the analysis engine.
const (
	FieldFoundedYear        = "founded_year"
	FieldCompanyAge         = "company_age"
	FieldIndustry           = "industry"
	FieldWhyInvest          = "why_invest"
	FieldSummary            = "summary"
	FieldRevenueEst         = "revenue_est"
	FieldTotalFundingRaised = "total_funding_raised"
	FieldValuation          = "valuation"
	FieldFundingRounds      = "funding_rounds"
	FieldGrowthSignals      = "growth_signals"
	FieldTeamSize           = "team_size"
	FieldLocations          = "locations"
	FieldContactInfo        = "contact_info"
	FieldSocialLinks        = "social_links"
)

// Scalar is an optional display value. The zero value is unknown.
type Scalar struct {
	text string
	set  bool
}

// NewScalar returns a known scalar, or an unknown one when text is blank.
func NewScalar(text string) Scalar {
	if strings.TrimSpace(text) == "" {
		return Scalar{}
	}
	return Scalar{text: text, set: true}
}

// Known reports whether the field carried a usable value.
func (s Scalar) Known() bool { return s.set }

// Or returns the value, or def when unknown.
func (s Scalar) Or(def string) string {
	if !s.set {
		return def
	}
	return s.text
}

// String returns the value, or "N/A" when unknown.
func (s Scalar) String() string { return s.Or(NotAvailable) }

// FundingRound is one capital-raising event. Either field may be unknown.
type FundingRound struct {
	Type   Scalar
	Amount Scalar
}

// SocialLink is one platform → URL entry of social_links.
type SocialLink struct {
	Platform string
	URL      string
}

// ContactInfo holds the optional contact lists.
type ContactInfo struct {
	Emails []string
	Phones []string
}

// Profile is the optional-field company record produced by the analysis engine.
//
// Every field is resolved once at parse time: a missing key, a null, an empty
// string and a value of the wrong shape all become the field's default. The
// original document is retained so that JSON output reproduces it verbatim.
// A Profile is never mutated after parsing.
type Profile struct {
	raw []byte

	foundedYear        Scalar
	companyAge         Scalar
	industry           Scalar
	whyInvest          Scalar
	summary            Scalar
	revenueEst         Scalar
	totalFundingRaised Scalar
	valuation          Scalar
	fundingRounds      []FundingRound
	growthSignals      Scalar
	teamSize           Scalar
	locations          Scalar
	contact            ContactInfo
	socialLinks        []SocialLink
}

// ParseProfile decodes an engine document. Only a document that is not a JSON
// object is rejected; malformed fields fall back to their defaults.
func ParseProfile(data []byte) (*Profile, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, &ProfileError{Message: "document is not valid JSON"}
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ProfileError{Message: "document is not a JSON object"}
	}

	p := &Profile{raw: append([]byte(nil), trimmed...)}
	p.foundedYear = scalarField(p.raw, FieldFoundedYear)
	p.companyAge = scalarField(p.raw, FieldCompanyAge)
	p.industry = scalarField(p.raw, FieldIndustry)
	p.whyInvest = scalarField(p.raw, FieldWhyInvest)
	p.summary = scalarField(p.raw, FieldSummary)
	p.revenueEst = scalarField(p.raw, FieldRevenueEst)
	p.totalFundingRaised = scalarField(p.raw, FieldTotalFundingRaised)
	p.valuation = scalarField(p.raw, FieldValuation)
	p.fundingRounds = fundingRoundsField(p.raw)
	p.growthSignals = scalarField(p.raw, FieldGrowthSignals)
	p.teamSize = scalarField(p.raw, FieldTeamSize)
	p.locations = scalarField(p.raw, FieldLocations)
	p.contact = ContactInfo{
		Emails: stringListField(p.raw, FieldContactInfo, "emails"),
		Phones: stringListField(p.raw, FieldContactInfo, "phones"),
	}
	p.socialLinks = socialLinksField(p.raw)
	return p, nil
}

// NewProfile builds a Profile from a field map. Map keys are emitted in sorted
// order; use ParseProfile when key order matters.
func NewProfile(fields map[string]any) (*Profile, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile fields: %w", err)
	}
	return ParseProfile(data)
}

// MarshalJSON returns the original engine document.
func (p *Profile) MarshalJSON() ([]byte, error) {
	if p == nil || len(p.raw) == 0 {
		return []byte("{}"), nil
	}
	return append([]byte(nil), p.raw...), nil
}

// UnmarshalJSON parses data with the same rules as ParseProfile.
func (p *Profile) UnmarshalJSON(data []byte) error {
	parsed, err := ParseProfile(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// Raw returns a copy of the original document.
func (p *Profile) Raw() []byte {
	out, _ := p.MarshalJSON()
	return out
}

// FoundedYear returns founded_year or "N/A".
func (p *Profile) FoundedYear() Scalar { return p.foundedYear }

// CompanyAge returns company_age or "N/A".
func (p *Profile) CompanyAge() Scalar { return p.companyAge }

// Industry returns industry or "N/A".
func (p *Profile) Industry() Scalar { return p.industry }

// WhyInvest returns the free-text recommendation.
func (p *Profile) WhyInvest() Scalar { return p.whyInvest }

// Summary returns the free-text company summary.
func (p *Profile) Summary() Scalar { return p.summary }

// RevenueEst returns revenue_est as formatted by the engine.
func (p *Profile) RevenueEst() Scalar { return p.revenueEst }

// TotalFundingRaised returns total_funding_raised as formatted by the engine.
func (p *Profile) TotalFundingRaised() Scalar { return p.totalFundingRaised }

// Valuation returns valuation as formatted by the engine.
func (p *Profile) Valuation() Scalar { return p.valuation }

// GrowthSignals returns the raw ", "-delimited growth signal string.
func (p *Profile) GrowthSignals() Scalar { return p.growthSignals }

// TeamSize returns team_size or "N/A".
func (p *Profile) TeamSize() Scalar { return p.teamSize }

// Locations returns locations or "N/A".
func (p *Profile) Locations() Scalar { return p.locations }

// FundingRounds returns the rounds in document order. Never nil.
func (p *Profile) FundingRounds() []FundingRound {
	return append([]FundingRound{}, p.fundingRounds...)
}

// ContactInfo returns the contact lists. The slices are never nil.
func (p *Profile) ContactInfo() ContactInfo {
	return ContactInfo{
		Emails: append([]string{}, p.contact.Emails...),
		Phones: append([]string{}, p.contact.Phones...),
	}
}

// SocialLinks returns the platform links in document order. Never nil.
func (p *Profile) SocialLinks() []SocialLink {
	return append([]SocialLink{}, p.socialLinks...)
}

// lookup returns the value at the key path. Keys arrive unescaped from
// ObjectEach. A key repeated within one object resolves to its last
// occurrence, as encoding/json does.
func lookup(data []byte, keys ...string) ([]byte, jsonparser.ValueType, bool) {
	value, dataType := data, jsonparser.Object
	for _, key := range keys {
		if dataType != jsonparser.Object {
			return nil, jsonparser.NotExist, false
		}
		var next []byte
		nextType := jsonparser.NotExist
		err := jsonparser.ObjectEach(value, func(k []byte, v []byte, vt jsonparser.ValueType, _ int) error {
			if string(k) == key {
				next, nextType = v, vt
			}
			return nil
		})
		if err != nil || nextType == jsonparser.NotExist {
			return nil, jsonparser.NotExist, false
		}
		value, dataType = next, nextType
	}
	return value, dataType, true
}

// decodeString unescapes the body of a JSON string. Invalid escapes such as
// lone surrogates become U+FFFD, as encoding/json does.
func decodeString(raw []byte) string {
	if text, err := jsonparser.ParseString(raw); err == nil {
		return text
	}
	quoted := make([]byte, 0, len(raw)+2)
	quoted = append(append(append(quoted, '"'), raw...), '"')
	var text string
	if err := json.Unmarshal(quoted, &text); err != nil {
		return ""
	}
	return text
}

// scalarValue converts a JSON scalar to its display text.
func scalarValue(value []byte, dataType jsonparser.ValueType) Scalar {
	switch dataType {
	case jsonparser.String:
		return NewScalar(decodeString(value))
	case jsonparser.Number, jsonparser.Boolean:
		return NewScalar(string(value))
	default:
		return Scalar{}
	}
}

func scalarField(data []byte, keys ...string) Scalar {
	value, dataType, ok := lookup(data, keys...)
	if !ok {
		return Scalar{}
	}
	return scalarValue(value, dataType)
}

func fundingRoundsField(data []byte) []FundingRound {
	rounds := []FundingRound{}
	value, dataType, ok := lookup(data, FieldFundingRounds)
	if !ok || dataType != jsonparser.Array {
		return rounds
	}
	// Non-object elements keep their slot so positional labels stay stable.
	_, _ = jsonparser.ArrayEach(value, func(elem []byte, elemType jsonparser.ValueType, _ int, _ error) {
		round := FundingRound{}
		if elemType == jsonparser.Object {
			round.Type = scalarField(elem, "type")
			round.Amount = scalarField(elem, "amount")
		}
		rounds = append(rounds, round)
	})
	return rounds
}

func stringListField(data []byte, keys ...string) []string {
	out := []string{}
	value, dataType, ok := lookup(data, keys...)
	if !ok || dataType != jsonparser.Array {
		return out
	}
	_, _ = jsonparser.ArrayEach(value, func(elem []byte, elemType jsonparser.ValueType, _ int, _ error) {
		if s := scalarValue(elem, elemType); s.Known() {
			out = append(out, s.text)
		}
	})
	return out
}

func socialLinksField(data []byte) []SocialLink {
	links := []SocialLink{}
	value, dataType, ok := lookup(data, FieldSocialLinks)
	if !ok || dataType != jsonparser.Object {
		return links
	}
	// A repeated platform keeps its first position and its last value.
	var order []string
	last := map[string]Scalar{}
	_ = jsonparser.ObjectEach(value, func(key []byte, elem []byte, elemType jsonparser.ValueType, _ int) error {
		platform := string(key)
		if _, seen := last[platform]; !seen {
			order = append(order, platform)
		}
		last[platform] = scalarValue(elem, elemType)
		return nil
	})
	for _, platform := range order {
		if s := last[platform]; s.Known() {
			links = append(links, SocialLink{Platform: platform, URL: s.text})
		}
	}
	return links
}
