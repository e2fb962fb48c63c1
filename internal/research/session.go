package research

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jonathan/leadgen/internal/fetch"
)

// Session accumulates the sources gathered for one extraction.
type Session struct {
	Company  string         `json:"company"`
	Frontier []RankedURL    `json:"frontier"`
	Skipped  []SkippedURL   `json:"skipped"`
	Pages    []Page         `json:"pages"`
	Failed   []SkippedURL   `json:"failed"`
	Contacts fetch.Contacts `json:"contacts"`

	hashes map[string]bool
}

// NewSession creates an empty session for company.
func NewSession(company string) *Session {
	return &Session{
		Company:  company,
		Frontier: []RankedURL{},
		Skipped:  []SkippedURL{},
		Pages:    []Page{},
		Failed:   []SkippedURL{},
		Contacts: fetch.Contacts{Emails: []string{}, Phones: []string{}, Social: map[string]string{}},
		hashes:   map[string]bool{},
	}
}

// AddPage records a fetched page and its contacts. Pages without text, and
// pages whose text was already seen under another URL, are not added.
func (s *Session) AddPage(r *fetch.Result) bool {
	if r == nil || strings.TrimSpace(r.Text) == "" {
		return false
	}
	s.Contacts.Merge(r.Contacts)

	hash := contentHash(r.Text)
	if s.hashes[hash] {
		return false
	}
	s.hashes[hash] = true
	s.Pages = append(s.Pages, Page{URL: r.URL, Source: r.Source, Text: r.Text, Hash: hash})
	return true
}

// AddFailure records a page that could not be fetched.
func (s *Session) AddFailure(url string, err error) {
	s.Failed = append(s.Failed, SkippedURL{URL: url, Reason: err.Error()})
}

// Corpus joins page texts under source headers, truncating each page to
// perPage runes and the whole corpus to total runes.
func (s *Session) Corpus(perPage, total int) string {
	var sb strings.Builder
	for _, page := range s.Pages {
		text := truncateRunes(page.Text, perPage)
		block := fmt.Sprintf("### Source: %s (%s)\n%s\n\n", page.URL, page.Source, text)
		remaining := total - len([]rune(sb.String()))
		if remaining <= 0 {
			break
		}
		sb.WriteString(truncateRunes(block, remaining))
	}
	return strings.TrimSpace(sb.String())
}

// ContactSummary renders harvested contacts for the prompt.
func (s *Session) ContactSummary() (emails, phones, social string) {
	emails = joinOrNone(s.Contacts.Emails)
	phones = joinOrNone(s.Contacts.Phones)

	links := make([]string, 0, len(s.Contacts.Social))
	for _, platform := range slices.Sorted(maps.Keys(s.Contacts.Social)) {
		links = append(links, platform+"="+s.Contacts.Social[platform])
	}
	social = joinOrNone(links)
	return emails, phones, social
}

// contentHash returns the hex SHA-256 of text.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
