// Package rod implements pagerag.Fetcher with a headless Chrome browser,
// for pages whose text only exists after JavaScript has run.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagerag"
	"github.com/go-rod/rod/lib/proto"
)

var _ pagerag.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher returns the rendered HTML of a URL.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int
}

// WithFetchTimeout bounds each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) { c.timeout = d }
}

// WithPagesPerBrowser sets how many pages are rendered before the browser
// is restarted.
func WithPagesPerBrowser(n int) Option {
	return func(c *fetcherConfig) { c.maxPages = n }
}

// NewFetcher launches a headless browser. It returns an error if Chrome
// cannot be found or started. Close must be called when done.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{timeout: DefaultFetchTimeout, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: m, timeout: cfg.timeout}, nil
}

// Fetch navigates to url, waits for the load event and returns the HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, release, ok := f.manager.Acquire()
	if !ok {
		return "", pagerag.Errorf(pagerag.EINVALID, "fetcher is closed")
	}
	defer release()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html of %s: %w", url, err)
	}
	return html, nil
}

// Close stops the browser. It is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the PID of the browser process, or 0 when closed.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
