package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Searcher returns result links for a web query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// GoogleSearcher queries a Google Programmable Search Engine.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a searcher for the engine identified by cx.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine id are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// Search returns up to limit links (the API caps a page at 10).
func (g *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	limit = min(max(limit, 1), 10)
	resp, err := g.svc.Cse.List().Cx(g.cx).Q(query).Num(int64(limit)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	links := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		links = append(links, item.Link)
	}
	return links, nil
}

// getDomain returns the host of a URL without scheme or "www.".
func getDomain(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "www.")
	host, _, _ := strings.Cut(url, "/")
	host, _, _ = strings.Cut(host, "?")
	return strings.ToLower(host)
}
