package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// ExtractionSchema describes the JSON object a prompt asks the model for.
type ExtractionSchema struct {
	Name        string
	Description string // Task preamble placed before the field list
	Fields      []SchemaField
}

// SchemaField is one key of the requested object.
type SchemaField struct {
	Name        string
	Type        string // Type hint shown to the model, "string" when empty
	Description string
}

// BuildExtractionPrompt lays out the preamble, the field list, the output
// rules and the source text.
func BuildExtractionPrompt(schema ExtractionSchema, sources string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON with exactly these keys, in this order:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s | null", field.Name, typeHint))
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use null for anything the sources do not state.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Sources:\n\"\"\"\n")
	sb.WriteString(sources)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// CompanyProfileSchema returns the schema of a company investment profile.
func CompanyProfileSchema(description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "CompanyProfile",
		Description: description,
		Fields: []SchemaField{
			{Name: types.FieldFoundedYear, Type: "number", Description: "four-digit year"},
			{Name: types.FieldCompanyAge, Type: "number", Description: "years since founding"},
			{Name: types.FieldIndustry, Description: "primary sector"},
			{Name: types.FieldWhyInvest, Description: "2-4 sentences ending with \"Investment score: N/100\""},
			{Name: types.FieldSummary, Description: "what the company does, 2-3 sentences"},
			{Name: types.FieldRevenueEst, Description: "annual revenue, e.g. \"$12M\""},
			{Name: types.FieldTotalFundingRaised, Description: "e.g. \"$26M\""},
			{Name: types.FieldValuation, Description: "latest valuation"},
			{Name: types.FieldFundingRounds, Type: `[{"type": string, "amount": string}]`, Description: "oldest first"},
			{Name: types.FieldGrowthSignals, Description: "comma-and-space separated list, e.g. \"Hiring, New office\""},
			{Name: types.FieldTeamSize, Description: "headcount or range"},
			{Name: types.FieldLocations, Description: "headquarters and offices"},
			{Name: types.FieldContactInfo, Type: `{"emails": [string], "phones": [string]}`},
			{Name: types.FieldSocialLinks, Type: `{platform: url}`, Description: "lower-case platform names"},
		},
	}
}
