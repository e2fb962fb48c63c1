package research

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SiteLinks returns the same-host links of a company page whose path marks a
// page rich in company facts (about, team, funding, contact...). Links are
// deduplicated and returned in document order.
func SiteLinks(htmlContent, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkError{URL: baseURL, Message: "failed to parse base URL", Cause: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkError{URL: baseURL, Message: "base URL must have scheme and host"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkError{URL: baseURL, Message: "failed to parse HTML", Cause: err}
	}

	paths := HighValuePaths()
	seen := map[string]bool{normalizeURL(baseURL): true}
	links := []string{}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil || href == "" {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		if !strings.EqualFold(strings.TrimPrefix(abs.Hostname(), "www."), strings.TrimPrefix(base.Hostname(), "www.")) {
			return
		}
		abs.Fragment = ""

		lowerPath := strings.ToLower(abs.Path)
		valuable := false
		for fragment := range paths {
			if strings.Contains(lowerPath, fragment) {
				valuable = true
				break
			}
		}
		if !valuable {
			return
		}

		link := abs.String()
		if key := normalizeURL(link); !seen[key] {
			seen[key] = true
			links = append(links, link)
		}
	})

	return links, nil
}
