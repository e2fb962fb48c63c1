package research

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/fetch"
)

// skippedExtensions are links to documents that are not HTML pages.
var skippedExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".zip", ".jpg", ".png", ".mp4"}

// RankURLs deduplicates links, drops unusable ones and orders the rest by
// source kind, company-name match and path hints. At most limit are kept.
func RankURLs(company string, links []string, limit int) ([]RankedURL, []SkippedURL) {
	kept := []RankedURL{}
	skipped := []SkippedURL{}
	seen := map[string]bool{}
	slug := strings.ReplaceAll(engine.Slug(company), "-", "")

	for _, link := range links {
		key := normalizeURL(link)
		if seen[key] {
			continue
		}
		seen[key] = true

		if reason := skipReason(link); reason != "" {
			skipped = append(skipped, SkippedURL{URL: link, Reason: reason})
			continue
		}

		source := fetch.DetectSource(link)
		kept = append(kept, RankedURL{
			URL:      link,
			Source:   source,
			Priority: AssignPriority(link, source, slug),
		})
	}

	slices.SortStableFunc(kept, func(a, b RankedURL) int {
		switch {
		case a.Priority > b.Priority:
			return -1
		case a.Priority < b.Priority:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(kept) > limit {
		for _, r := range kept[limit:] {
			skipped = append(skipped, SkippedURL{URL: r.URL, Reason: "over page limit"})
		}
		kept = kept[:limit]
	}
	return kept, skipped
}

// AssignPriority scores a link in [0,1].
func AssignPriority(link string, source fetch.Source, slug string) float64 {
	priority := 0.5 - 0.1*float64(source.Priority())

	if slug != "" && strings.Contains(strings.ReplaceAll(getDomain(link), "-", ""), slug) {
		priority += 0.3
	}

	lowerPath := ""
	if parsed, err := url.Parse(link); err == nil {
		lowerPath = strings.ToLower(parsed.Path)
	}
	bonus := 0.0
	for fragment, value := range HighValuePaths() {
		if strings.Contains(lowerPath, fragment) {
			bonus = max(bonus, value)
		}
	}
	priority += bonus

	return min(max(priority, 0), 1)
}

// skipReason explains why a link is not fetched, or returns "".
func skipReason(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return "invalid URL"
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "unsupported scheme"
	}
	if slices.Contains(skippedExtensions, strings.ToLower(path.Ext(parsed.Path))) {
		return "not an HTML page"
	}
	// Profile pages require sign-in and return a login wall.
	if fetch.DetectSource(link) == fetch.SourceLinkedIn {
		return "requires sign-in"
	}
	return ""
}

// normalizeURL makes equivalent links compare equal.
func normalizeURL(link string) string {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return link
	}
	parsed.Fragment = ""
	parsed.Host = strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	if parsed.Scheme == "http" {
		parsed.Scheme = "https"
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	return parsed.String()
}
