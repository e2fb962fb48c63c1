package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/phuslu/log"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP
// fetch before falling back to browser rendering.
const MinContentLength = 500

// DefaultRenderTimeout bounds one headless render.
const DefaultRenderTimeout = 30 * time.Second

// ShouldUseBrowser reports whether the extracted text is too short,
// indicating a script-rendered page.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the HTML of a page after scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	Timeout time.Duration
}

// Render navigates to url, waits for the body and returns the outer HTML.
func (r ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	log.Debug().Str("url", url).Msg("starting headless browser")

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Cookie walls hide content on many company sites; a missing button is fine.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	log.Debug().Str("url", url).Int("bytes", len(html)).Msg("rendered page")
	return html, nil
}
