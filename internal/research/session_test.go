package research

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/fetch"
)

func TestSession_AddPage(t *testing.T) {
	s := NewSession("Acme")

	s.AddPage(&fetch.Result{
		URL:    "https://acme.com/about",
		Source: fetch.SourceCompanySite,
		Text:   "Acme builds rockets.",
		Contacts: fetch.Contacts{
			Emails: []string{"hello@acme.com"},
			Social: map[string]string{"twitter": "https://x.com/acme"},
		},
	})
	s.AddPage(&fetch.Result{
		URL:  "https://acme.com/contact",
		Text: "Call us.",
		Contacts: fetch.Contacts{
			Emails: []string{"hello@acme.com", "sales@acme.com"},
			Phones: []string{"+1 555 0100"},
			Social: map[string]string{"twitter": "https://x.com/other"},
		},
	})
	s.AddPage(&fetch.Result{URL: "https://acme.com/blank", Text: "   "})
	s.AddPage(nil)

	require.Len(t, s.Pages, 2)
	assert.Equal(t, []string{"hello@acme.com", "sales@acme.com"}, s.Contacts.Emails)
	assert.Equal(t, "https://x.com/acme", s.Contacts.Social["twitter"])
}

func TestSession_AddPageSkipsDuplicateText(t *testing.T) {
	s := NewSession("Acme")

	assert.True(t, s.AddPage(&fetch.Result{URL: "https://acme.com/about", Text: "Acme builds rockets."}))
	assert.False(t, s.AddPage(&fetch.Result{
		URL:      "https://www.acme.com/about/",
		Text:     "Acme builds rockets.",
		Contacts: fetch.Contacts{Phones: []string{"+1 555 0100"}},
	}))

	require.Len(t, s.Pages, 1)
	assert.Equal(t, contentHash("Acme builds rockets."), s.Pages[0].Hash)
	assert.Len(t, s.Pages[0].Hash, 64)
	assert.Equal(t, []string{"+1 555 0100"}, s.Contacts.Phones, "contacts of a duplicate page are still merged")
}

func TestSession_AddFailure(t *testing.T) {
	s := NewSession("Acme")
	s.AddFailure("https://acme.com", errors.New("boom"))

	require.Len(t, s.Failed, 1)
	assert.Equal(t, SkippedURL{URL: "https://acme.com", Reason: "boom"}, s.Failed[0])
}

func TestSession_Corpus(t *testing.T) {
	s := NewSession("Acme")
	s.AddPage(&fetch.Result{URL: "https://a.com", Source: fetch.SourceCompanySite, Text: strings.Repeat("a", 50)})
	s.AddPage(&fetch.Result{URL: "https://b.com", Source: fetch.SourceNews, Text: "short"})

	corpus := s.Corpus(10, 1000)
	assert.Contains(t, corpus, "### Source: https://a.com (company)\n"+strings.Repeat("a", 10)+"\n")
	assert.NotContains(t, corpus, strings.Repeat("a", 11))
	assert.Contains(t, corpus, "### Source: https://b.com (news)\nshort")

	limited := s.Corpus(10, 20)
	assert.Len(t, []rune(limited), 20)
	assert.NotContains(t, limited, "b.com")
}

func TestSession_ContactSummary(t *testing.T) {
	s := NewSession("Acme")
	emails, phones, social := s.ContactSummary()
	assert.Equal(t, "none", emails)
	assert.Equal(t, "none", phones)
	assert.Equal(t, "none", social)

	s.Contacts.Merge(fetch.Contacts{
		Emails: []string{"a@acme.com", "b@acme.com"},
		Social: map[string]string{"twitter": "https://x.com/acme", "github": "https://github.com/acme"},
	})
	emails, _, social = s.ContactSummary()
	assert.Equal(t, "a@acme.com, b@acme.com", emails)
	assert.Equal(t, "github=https://github.com/acme, twitter=https://x.com/acme", social)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
	assert.Equal(t, "", truncateRunes("héllo", 0))
}
