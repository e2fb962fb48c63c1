package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phuslu/log"

	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/prompts"
	"github.com/jonathan/leadgen/internal/schemas"
	"github.com/jonathan/leadgen/internal/types"
)

// Engine defaults
const (
	DefaultMaxPages        = 6
	DefaultMaxSitePages    = 3
	DefaultResultsPerQuery = 5
	DefaultCacheSize       = 64
	DefaultPageChars       = 6000
	DefaultCorpusChars     = 30000
)

// PageFetcher returns a processed page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Options configures an Engine. Searcher, Fetcher and LLM are required.
type Options struct {
	Searcher        Searcher
	Fetcher         PageFetcher
	LLM             llm.Client
	MaxPages        int
	MaxSitePages    int // Company-site pages followed from fetched company pages
	ResultsPerQuery int
	CacheSize       int
	PageChars       int
	CorpusChars     int
}

// Engine researches companies on the web and extracts profiles with an LLM.
// Extracted profiles are cached per company.
type Engine struct {
	engine.Settings

	searcher Searcher
	fetcher  PageFetcher
	llm      llm.Client
	cache    *lru.Cache[string, *types.Profile]
	sleep    func(ctx context.Context, r engine.DelayRange) error

	maxPages        int
	maxSitePages    int
	resultsPerQuery int
	pageChars       int
	corpusChars     int
}

// New creates a live engine.
func New(opts Options) (*Engine, error) {
	if opts.Searcher == nil || opts.Fetcher == nil || opts.LLM == nil {
		return nil, errors.New("research engine requires a searcher, a fetcher and an LLM client")
	}

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *types.Profile](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}

	return &Engine{
		searcher:        opts.Searcher,
		fetcher:         opts.Fetcher,
		llm:             opts.LLM,
		cache:           cache,
		sleep:           pause,
		maxPages:        positiveOr(opts.MaxPages, DefaultMaxPages),
		maxSitePages:    positiveOr(opts.MaxSitePages, DefaultMaxSitePages),
		resultsPerQuery: positiveOr(opts.ResultsPerQuery, DefaultResultsPerQuery),
		pageChars:       positiveOr(opts.PageChars, DefaultPageChars),
		corpusChars:     positiveOr(opts.CorpusChars, DefaultCorpusChars),
	}, nil
}

// ExtractCompanyProfile researches company from scratch and replaces any
// cached profile with the result.
func (e *Engine) ExtractCompanyProfile(ctx context.Context, company string) (*types.Profile, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, errors.New("company name is empty")
	}

	sess, err := e.gather(ctx, company)
	if err != nil {
		return nil, err
	}

	profile, err := e.extract(ctx, sess)
	if err != nil {
		return nil, err
	}

	e.cache.Add(engine.Slug(company), profile)
	log.Info().Str("company", company).Int("pages", len(sess.Pages)).Msg("profile extracted")
	return profile, nil
}

// GenerateLeadReport renders a report from the last profile extracted for
// company, researching it first when none is cached.
func (e *Engine) GenerateLeadReport(ctx context.Context, company string, format engine.ReportFormat) (string, error) {
	profile, ok := e.cache.Get(engine.Slug(company))
	if ok {
		log.Debug().Str("company", company).Msg("profile cache hit")
	} else {
		var err error
		if profile, err = e.ExtractCompanyProfile(ctx, company); err != nil {
			return "", err
		}
	}
	return engine.RenderReport(company, profile, format)
}

// Close releases the LLM client.
func (e *Engine) Close() error {
	return e.llm.Close()
}

// gather searches for sources and fetches the best of them.
func (e *Engine) gather(ctx context.Context, company string) (*Session, error) {
	sess := NewSession(company)

	baseQuery, err := prompts.Render(prompts.ResearchFile, prompts.KeySearchQuery, map[string]string{"Company": company})
	if err != nil {
		return nil, err
	}

	var links []string
	var searchErr error
	for _, query := range SearchQueries(baseQuery, company) {
		var found []string
		err := e.withRetry(ctx, "search", func(ctx context.Context) error {
			var err error
			found, err = e.searcher.Search(ctx, query, e.resultsPerQuery)
			return err
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Str("query", query).Err(err).Msg("search query failed")
			searchErr = err
			continue
		}
		links = append(links, found...)
	}
	if len(links) == 0 {
		return nil, &NoSourcesError{Company: company, Cause: searchErr}
	}

	sess.Frontier, sess.Skipped = RankURLs(company, links, e.maxPages)
	log.Debug().Str("company", company).Int("candidates", len(links)).Int("kept", len(sess.Frontier)).Msg("ranked sources")

	visited := map[string]bool{}
	var siteLinks []string
	for _, ranked := range sess.Frontier {
		visited[normalizeURL(ranked.URL)] = true
		page, err := e.fetchPage(ctx, sess, ranked.URL)
		if err != nil {
			return nil, err
		}
		if page != nil && page.Source == fetch.SourceCompanySite {
			siteLinks = append(siteLinks, e.followLinks(page)...)
		}
	}

	followed := 0
	for _, link := range siteLinks {
		if followed >= e.maxSitePages {
			break
		}
		key := normalizeURL(link)
		if visited[key] {
			continue
		}
		visited[key] = true
		followed++
		if _, err := e.fetchPage(ctx, sess, link); err != nil {
			return nil, err
		}
	}

	if len(sess.Pages) == 0 {
		return nil, &NoSourcesError{Company: company, Failed: len(sess.Failed)}
	}
	return sess, nil
}

// fetchPage fetches link into sess. Fetch failures are recorded and return a
// nil page; only cancellation is returned as an error.
func (e *Engine) fetchPage(ctx context.Context, sess *Session, link string) (*fetch.Result, error) {
	var page *fetch.Result
	err := e.withRetry(ctx, "fetch", func(ctx context.Context) error {
		var err error
		page, err = e.fetcher.Fetch(ctx, link)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		sess.AddFailure(link, err)
		return nil, nil
	}
	sess.AddPage(page)
	return page, nil
}

// followLinks returns the high-value same-site links of a company page.
func (e *Engine) followLinks(page *fetch.Result) []string {
	if page.HTML == "" {
		return nil
	}
	links, err := SiteLinks(page.HTML, page.URL)
	if err != nil {
		log.Debug().Str("url", page.URL).Err(err).Msg("skipping site links")
		return nil
	}
	return links
}

// extract asks the model for a profile document built from the session corpus.
func (e *Engine) extract(ctx context.Context, sess *Session) (*types.Profile, error) {
	guidance, err := prompts.Render(prompts.ResearchFile, prompts.KeyInvestmentGuidance, map[string]string{"Company": sess.Company})
	if err != nil {
		return nil, err
	}
	emails, phones, social := sess.ContactSummary()
	description, err := prompts.Render(prompts.ResearchFile, prompts.KeyExtractProfile, map[string]string{
		"Guidance": guidance,
		"Company":  sess.Company,
		"Emails":   emails,
		"Phones":   phones,
		"Social":   social,
	})
	if err != nil {
		return nil, err
	}
	prompt := llm.BuildExtractionPrompt(llm.CompanyProfileSchema(description), sess.Corpus(e.pageChars, e.corpusChars))

	var profile *types.Profile
	err = e.withRetry(ctx, "extract", func(ctx context.Context) error {
		raw, err := e.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err != nil {
			return fmt.Errorf("LLM generation failed: %w", err)
		}
		p, err := types.ParseProfile([]byte(raw))
		if err != nil {
			return err
		}
		if verr := schemas.ValidateProfile([]byte(raw)); verr != nil {
			log.Warn().Str("company", sess.Company).Err(verr).Msg("profile has unexpected field shapes")
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, &ExtractionError{Company: sess.Company, Cause: err}
	}
	return profile, nil
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
