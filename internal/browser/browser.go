package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/jgunter/gaia-stats/internal/logger"
)

const (
	// GameFrameID is the id of the iframe that hosts the game and its log.
	GameFrameID = "game-iframe"

	// UserAgent identifies this tool to the target site.
	UserAgent = "gaia-stats/1.0 (github.com/jgunter/gaia-stats)"

	// DefaultTimeout bounds the render wait when no timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// frameHTML reads the rendered document out of the game iframe. It returns
// "" when the frame document is not directly readable, in which case the
// caller falls back to the top-level page.
const frameHTML = `(function() {
	const frame = document.getElementById('` + GameFrameID + `');
	if (frame && frame.contentDocument && frame.contentDocument.documentElement) {
		return frame.contentDocument.documentElement.outerHTML;
	}
	return '';
})()`

// Fetcher renders game pages in Chrome and returns their HTML.
type Fetcher struct {
	remoteURL string
	timeout   time.Duration
}

// New creates a Fetcher. With a non-empty remoteURL it attaches to a
// running Chrome instance's debugging port; otherwise it launches a local
// headless Chrome.
func New(remoteURL string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		remoteURL: remoteURL,
		timeout:   timeout,
	}
}

// Timeout returns the configured render wait budget.
func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

// FetchGamePage navigates to url, waits for the game iframe to be ready,
// and returns the rendered HTML of the frame document. The wait is bounded
// by the fetcher's timeout; exceeding it is an error, never a hang.
func (f *Fetcher) FetchGamePage(ctx context.Context, url string) (string, error) {
	var allocCtx context.Context
	var cancelAlloc context.CancelFunc
	if f.remoteURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, f.remoteURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
		)
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	}
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, f.timeout)
	defer cancelRun()

	logger.Debug("navigating", logger.Fields{"url": url, "timeout": f.timeout.String()})
	start := time.Now()

	var html string
	err := chromedp.Run(runCtx,
		emulation.SetUserAgentOverride(UserAgent),
		chromedp.Navigate(url),
		chromedp.WaitReady("#"+GameFrameID, chromedp.ByID),
		chromedp.Evaluate(frameHTML, &html),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("page did not render within %s: %w", f.timeout, err)
		}
		return "", fmt.Errorf("driving browser: %w", err)
	}

	if strings.TrimSpace(html) == "" {
		// Cross-origin frame; take the top-level document instead.
		if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html)); err != nil {
			return "", fmt.Errorf("reading page HTML: %w", err)
		}
	}

	logger.Timing("browser.fetch", time.Since(start))
	return html, nil
}
