package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acmeHomeHTML = `<html><body>
<nav>
  <a href="/about">About</a>
  <a href="/about#history">History</a>
  <a href="https://www.acme.com/team/">Team</a>
  <a href="/pricing">Pricing</a>
  <a href="https://blog.example.com/about">Elsewhere</a>
  <a href="mailto:hello@acme.com">Mail</a>
  <a href="javascript:void(0)">Menu</a>
  <a href="">Empty</a>
  <a href="investors/funding">Funding</a>
  <a href="https://acme.com/">Home</a>
</nav>
</body></html>`

func TestSiteLinks(t *testing.T) {
	links, err := SiteLinks(acmeHomeHTML, "https://acme.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://acme.com/about",
		"https://www.acme.com/team/",
		"https://acme.com/investors/funding",
	}, links)
}

func TestSiteLinks_NoMatches(t *testing.T) {
	links, err := SiteLinks(`<a href="/pricing">Pricing</a>`, "https://acme.com")
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.NotNil(t, links)
}

func TestSiteLinks_InvalidBase(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"unparseable", "://bad"},
		{"no host", "/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SiteLinks(acmeHomeHTML, tt.base)

			var linkErr *LinkError
			require.ErrorAs(t, err, &linkErr)
			assert.Equal(t, tt.base, linkErr.URL)
		})
	}
}
