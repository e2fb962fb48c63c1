package fetch

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Contacts holds the contact details harvested from a page.
type Contacts struct {
	Emails []string
	Phones []string
	Social map[string]string // platform → profile URL
}

// socialHosts maps profile hosts to platform names.
var socialHosts = map[string]string{
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"linkedin.com":  "linkedin",
	"facebook.com":  "facebook",
	"instagram.com": "instagram",
	"youtube.com":   "youtube",
	"github.com":    "github",
	"tiktok.com":    "tiktok",
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// ExtractContacts collects mailto and tel links, e-mail addresses in the
// text and links to social profiles.
func ExtractContacts(html, pageURL string) (Contacts, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Contacts{}, err
	}
	return contactsFromDocument(doc, pageURL), nil
}

func contactsFromDocument(doc *goquery.Document, pageURL string) Contacts {
	c := Contacts{Emails: []string{}, Phones: []string{}, Social: map[string]string{}}
	base, _ := url.Parse(pageURL)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)
		switch {
		case strings.HasPrefix(lower, "mailto:"):
			addr, _, _ := strings.Cut(href[len("mailto:"):], "?")
			c.Emails = appendUnique(c.Emails, strings.ToLower(strings.TrimSpace(addr)))
		case strings.HasPrefix(lower, "tel:"):
			c.Phones = appendUnique(c.Phones, strings.TrimSpace(href[len("tel:"):]))
		default:
			link, err := url.Parse(href)
			if err != nil {
				return
			}
			if base != nil {
				link = base.ResolveReference(link)
			}
			if platform, ok := socialPlatform(link); ok {
				if _, seen := c.Social[platform]; !seen {
					c.Social[platform] = link.String()
				}
			}
		}
	})

	for _, addr := range emailPattern.FindAllString(doc.Find("body").Text(), -1) {
		c.Emails = appendUnique(c.Emails, strings.ToLower(addr))
	}
	return c
}

// socialPlatform matches profile links; share widgets and bare hosts are skipped.
func socialPlatform(link *url.URL) (string, bool) {
	host := strings.TrimPrefix(strings.ToLower(link.Hostname()), "www.")
	platform, ok := socialHosts[host]
	if !ok {
		return "", false
	}
	path := strings.Trim(link.Path, "/")
	if path == "" || strings.Contains(path, "share") || strings.HasPrefix(path, "intent") {
		return "", false
	}
	return platform, true
}

// Merge adds other's contacts, keeping the first URL seen per platform.
func (c *Contacts) Merge(other Contacts) {
	for _, e := range other.Emails {
		c.Emails = appendUnique(c.Emails, e)
	}
	for _, p := range other.Phones {
		c.Phones = appendUnique(c.Phones, p)
	}
	if c.Social == nil {
		c.Social = map[string]string{}
	}
	for platform, link := range other.Social {
		if _, seen := c.Social[platform]; !seen {
			c.Social[platform] = link
		}
	}
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
