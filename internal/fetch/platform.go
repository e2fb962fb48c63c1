package fetch

import (
	"net/url"
	"strings"
)

// Source classifies where a page comes from.
type Source string

// Known sources
const (
	SourceCrunchbase  Source = "crunchbase"
	SourceLinkedIn    Source = "linkedin"
	SourceWikipedia   Source = "wikipedia"
	SourceNews        Source = "news"
	SourceCompanySite Source = "company"
)

// newsHosts are outlets whose articles commonly cover funding rounds.
var newsHosts = []string{
	"techcrunch.com",
	"reuters.com",
	"bloomberg.com",
	"forbes.com",
	"businesswire.com",
	"prnewswire.com",
	"venturebeat.com",
}

// DetectSource identifies the kind of site a URL belongs to.
func DetectSource(urlStr string) Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceCompanySite
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	switch {
	case hostIs(host, "crunchbase.com"):
		return SourceCrunchbase
	case hostIs(host, "linkedin.com"):
		return SourceLinkedIn
	case hostIs(host, "wikipedia.org"):
		return SourceWikipedia
	}
	for _, news := range newsHosts {
		if hostIs(host, news) {
			return SourceNews
		}
	}
	return SourceCompanySite
}

// hostIs reports whether host is domain or one of its subdomains.
func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Priority orders sources for extraction; lower is read first.
func (s Source) Priority() int {
	switch s {
	case SourceCompanySite:
		return 0
	case SourceCrunchbase:
		return 1
	case SourceWikipedia:
		return 2
	case SourceNews:
		return 3
	default:
		return 4
	}
}

// ContentSelectors returns content selectors tuned for the source.
func (s Source) ContentSelectors() []string {
	switch s {
	case SourceWikipedia:
		return []string{"#mw-content-text", "#content"}
	case SourceCrunchbase:
		return []string{"profile-section", ".profile-section", "main"}
	case SourceNews:
		return []string{"article", ".article-content", ".article-body", "main"}
	case SourceLinkedIn:
		return []string{".core-section-container", "main"}
	default:
		return CompanyPageSelectors()
	}
}

// NoiseSelectors returns elements removed before text extraction.
func (s Source) NoiseSelectors() []string {
	common := []string{
		"form",
		".cookie-consent",
		".gdpr-notice",
		".newsletter",
		".share-buttons",
		".related-articles",
	}

	switch s {
	case SourceWikipedia:
		return append(common, ".reference", ".reflist", ".navbox", ".mw-editsection", "#toc")
	case SourceNews:
		return append(common, ".comments", ".paywall", ".recommended")
	case SourceLinkedIn:
		return append(common, ".sign-in-modal", ".join-form")
	default:
		return common
	}
}
