package resourcepool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// BrowserEntry pairs a browser driver with its inner page pool.
type BrowserEntry struct {
	Browser ports.BrowserDriver
	Pages   *Pool[ports.Page]
}

// TwoTier implements the C6 page acquisition algorithm (spec §4.5): under
// a global mutex, acquire a browser from the outer pool, acquire a page
// from that browser's inner pool; if the inner pool is not saturated,
// immediately release the browser back to the outer pool so other
// acquirers may enter it; if it is saturated, record a deferred check that
// releases the browser once it drops below saturation. A ticker walks
// deferred checks every 5 seconds.
type TwoTier struct {
	mu       sync.Mutex
	browsers *Pool[*BrowserEntry]
	deferred map[*BrowserEntry]bool
	logger   ports.Logger

	tickerStop chan struct{}
}

// NewTwoTier constructs the outer browser pool plus the deferred-release
// ticker. newBrowser/newPage/closeBrowser/closePage are supplied by
// pkg/browserdriver.
func NewTwoTier(
	numBrowserMin, numBrowserMax, numPageMin, numPageMax int,
	newBrowser Factory[ports.BrowserDriver],
	closeBrowser Closer[ports.BrowserDriver],
	log ports.Logger,
) *TwoTier {
	t := &TwoTier{
		deferred: make(map[*BrowserEntry]bool),
		logger:   log,
	}

	browserFactory := func(ctx context.Context) (*BrowserEntry, error) {
		b, err := newBrowser(ctx)
		if err != nil {
			return nil, err
		}
		entry := &BrowserEntry{Browser: b}
		entry.Pages = New[ports.Page](numPageMin, numPageMax,
			func(ctx context.Context) (ports.Page, error) {
				return b.NewPage(ctx)
			},
			func(ctx context.Context, page ports.Page) error {
				return page.Close(ctx)
			},
		)
		return entry, nil
	}
	browserCloser := func(ctx context.Context, entry *BrowserEntry) error {
		if err := entry.Pages.Close(ctx); err != nil && log != nil {
			log.Warn("Browser closed", err)
		}
		return closeBrowser(ctx, entry.Browser)
	}

	t.browsers = New(numBrowserMin, numBrowserMax, browserFactory, browserCloser)
	t.tickerStop = make(chan struct{})
	go t.runDeferredTicker(5 * time.Second)
	return t
}

// AcquirePage runs the two-step algorithm and returns a page plus the
// BrowserEntry it came from (needed by ReleasePage).
func (t *TwoTier) AcquirePage(ctx context.Context) (ports.Page, *BrowserEntry, error) {
	t.mu.Lock()
	entry, err := t.browsers.Acquire(ctx)
	if err != nil {
		t.mu.Unlock()
		return nil, nil, fmt.Errorf("acquire browser: %w", err)
	}

	page, err := entry.Pages.Acquire(ctx)
	if err != nil {
		t.browsers.Release(entry)
		t.mu.Unlock()
		return nil, nil, fmt.Errorf("acquire page: %w", err)
	}

	if !entry.Pages.Saturated() {
		t.browsers.Release(entry)
	} else {
		t.deferred[entry] = true
	}
	t.mu.Unlock()

	return page, entry, nil
}

// ReleasePage returns a page to its owning browser's inner pool and, if
// that browser is currently held back by a deferred check, re-evaluates it
// immediately rather than waiting for the next ticker pass.
func (t *TwoTier) ReleasePage(entry *BrowserEntry, page ports.Page) {
	entry.Pages.Release(page)

	t.mu.Lock()
	if t.deferred[entry] && !entry.Pages.Saturated() {
		delete(t.deferred, entry)
		t.browsers.Release(entry)
	}
	t.mu.Unlock()
}

func (t *TwoTier) runDeferredTicker(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-t.tickerStop:
			return
		case <-ticker.C:
			t.mu.Lock()
			for entry := range t.deferred {
				if !entry.Pages.Saturated() {
					delete(t.deferred, entry)
					t.browsers.Release(entry)
				}
			}
			t.mu.Unlock()
		}
	}
}

// Close stops the ticker and closes the outer browser pool (which closes
// every browser's inner page pool and every browser).
func (t *TwoTier) Close(ctx context.Context) error {
	close(t.tickerStop)
	return t.browsers.Close(ctx)
}
