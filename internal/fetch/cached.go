package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/phuslu/log"
)

// DefaultPageCacheTTL is how long a fetched page is reused.
const DefaultPageCacheTTL = 30 * time.Minute

// DefaultPageCacheSize is the number of pages kept in memory.
const DefaultPageCacheSize = 128

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL   time.Duration
	CacheSize  int
	Options    *Options
	UseBrowser bool     // Render short pages in a headless browser
	Renderer   Renderer // Defaults to ChromeRenderer
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultPageCacheTTL,
		CacheSize: DefaultPageCacheSize,
		Options:   DefaultOptions(),
	}
}

// CachedFetcher fetches pages, extracts their text and contacts, and keeps
// the processed results in an expiring LRU.
type CachedFetcher struct {
	options    *Options
	useBrowser bool
	renderer   Renderer
	cache      *expirable.LRU[string, *Result]
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultPageCacheTTL
	}
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultPageCacheSize
	}
	renderer := config.Renderer
	if renderer == nil {
		renderer = ChromeRenderer{}
	}
	return &CachedFetcher{
		options:    config.Options,
		useBrowser: config.UseBrowser,
		renderer:   renderer,
		cache:      expirable.NewLRU[string, *Result](config.CacheSize, nil, config.CacheTTL),
	}
}

// Fetch returns the processed page for urlStr, from cache when fresh.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	if cached, ok := f.cache.Get(urlStr); ok {
		log.Debug().Str("url", urlStr).Msg("page cache hit")
		return cached, nil
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	if err := process(result); err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse page", Cause: err}
	}

	if f.useBrowser && ShouldUseBrowser(result.Text) {
		if html, err := f.renderer.Render(ctx, urlStr); err != nil {
			log.Warn().Str("url", urlStr).Err(err).Msg("browser fallback failed, keeping HTTP content")
		} else {
			rendered := &Result{
				URL:         urlStr,
				HTML:        html,
				ContentType: result.ContentType,
				StatusCode:  result.StatusCode,
				Source:      result.Source,
				Rendered:    true,
			}
			if err := process(rendered); err == nil && len(rendered.Text) > len(result.Text) {
				result = rendered
			}
		}
	}

	f.cache.Add(urlStr, result)
	return result, nil
}

// FetchMultiple fetches urls in order. Failed fetches are nil in the result
// slice with the matching error set.
func (f *CachedFetcher) FetchMultiple(ctx context.Context, urls []string) ([]*Result, []error) {
	results := make([]*Result, len(urls))
	errs := make([]error, len(urls))
	for i, u := range urls {
		results[i], errs[i] = f.Fetch(ctx, u)
	}
	return results, errs
}

// Invalidate drops urlStr from the cache.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.cache.Remove(urlStr)
}

// Len returns the number of cached pages.
func (f *CachedFetcher) Len() int {
	return f.cache.Len()
}

// process fills Text and Contacts from HTML. Contacts are read before noise
// removal so footer links are kept.
func process(r *Result) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.HTML))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}
	r.Contacts = contactsFromDocument(doc, r.URL)
	r.Text = mainText(doc, r.Source.ContentSelectors(), r.Source.NoiseSelectors())
	return nil
}
