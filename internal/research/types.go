// Package research implements the live analysis engine: web search, page
// fetching and LLM extraction of company investment profiles.
package research

import "github.com/jonathan/leadgen/internal/fetch"

// RankedURL is a candidate source page with its read order.
type RankedURL struct {
	URL      string       `json:"url"`
	Source   fetch.Source `json:"source"`
	Priority float64      `json:"priority"` // 0.0-1.0, higher is read first
}

// SkippedURL is a search result that will not be fetched.
type SkippedURL struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Page is one fetched source in the corpus.
type Page struct {
	URL    string       `json:"url"`
	Source fetch.Source `json:"source"`
	Text   string       `json:"text"`
	Hash   string       `json:"hash"` // SHA-256 of Text
}

// HighValuePaths returns URL path fragments that mark pages rich in company facts.
func HighValuePaths() map[string]float64 {
	return map[string]float64{
		"about":     0.3,
		"company":   0.2,
		"investors": 0.3,
		"funding":   0.3,
		"press":     0.2,
		"news":      0.1,
		"team":      0.2,
		"contact":   0.2,
	}
}

// SearchQueries returns the queries issued for a company. The first one comes
// from the prompt file.
func SearchQueries(baseQuery, company string) []string {
	return []string{
		baseQuery,
		company + " funding round raised series",
		company + " about us headquarters employees",
	}
}
