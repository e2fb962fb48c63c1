package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		url      string
		expected Source
	}{
		{"https://www.crunchbase.com/organization/acme", SourceCrunchbase},
		{"https://www.linkedin.com/company/acme", SourceLinkedIn},
		{"https://en.wikipedia.org/wiki/Acme_Corporation", SourceWikipedia},
		{"https://techcrunch.com/2024/01/01/acme-raises", SourceNews},
		{"https://www.reuters.com/business/acme", SourceNews},
		{"https://acme.io/about", SourceCompanySite},
		{"https://notcrunchbase.com/acme", SourceCompanySite},
		{"://bad", SourceCompanySite},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectSource(tt.url))
		})
	}
}

func TestSource_Priority(t *testing.T) {
	assert.Less(t, SourceCompanySite.Priority(), SourceCrunchbase.Priority())
	assert.Less(t, SourceWikipedia.Priority(), SourceNews.Priority())
	assert.Less(t, SourceNews.Priority(), SourceLinkedIn.Priority())
}

func TestSource_Selectors(t *testing.T) {
	assert.Contains(t, SourceWikipedia.ContentSelectors(), "#mw-content-text")
	assert.Equal(t, CompanyPageSelectors(), SourceCompanySite.ContentSelectors())
	assert.Contains(t, SourceWikipedia.NoiseSelectors(), ".reflist")
	assert.Contains(t, SourceCompanySite.NoiseSelectors(), "form")
}
