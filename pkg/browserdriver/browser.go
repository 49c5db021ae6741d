// Package browserdriver implements the Browser Driver (C5): one Chrome
// process launched with deterministic-capture flags, owning an inner pool
// of pages created lazily by pkg/pagedriver.
package browserdriver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ideamans/go-webvideocreator/pkg/pagedriver"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// Browser implements ports.BrowserDriver using chromedp.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	opts ports.LaunchOptions
	log  ports.Logger

	mu     sync.Mutex
	closed bool
}

// New creates a Browser. log may be nil.
func New(log ports.Logger) *Browser {
	return &Browser{log: log}
}

// deterministicFlags is the launch-flag table grounded in the teacher's
// chromebrowser.Launch, extended with the begin-frame/compositor flags
// spec §4.5 requires for frame-accurate offline capture.
func deterministicFlags(opts ports.LaunchOptions) []chromedp.ExecAllocatorOption {
	flags := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-namespace-sandbox", true),
		chromedp.Flag("disable-seccomp-filter-sandbox", true),
		chromedp.Flag("no-zygote", true),

		// Determinism for offline video capture: no rAF throttling, no
		// background timer coalescing, fixed compositor cadence.
		chromedp.Flag("disable-threaded-animation", true),
		chromedp.Flag("disable-threaded-scrolling", true),
		chromedp.Flag("deterministic-mode", true),
		chromedp.Flag("run-all-compositor-stages-before-draw", true),
		chromedp.Flag("disable-new-content-rendering-timeout", true),
		chromedp.Flag("disable-features", "RendererCodeIntegrity,VizDisplayCompositor"),
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
	}

	if !opts.CompatibleRenderingMode {
		flags = append(flags,
			chromedp.Flag("enable-begin-frame-control", true),
			chromedp.Flag("disable-frame-rate-limit", true),
			chromedp.Flag("disable-gpu-vsync", true),
		)
	}

	if opts.GPU {
		flags = append(flags, chromedp.Flag("use-angle", "swiftshader"))
	} else {
		flags = append(flags,
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-software-rasterizer", true),
		)
	}

	if opts.Headless {
		flags = append(flags, chromedp.Flag("headless", "new"))
	}

	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		flags = append(flags,
			chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
			chromedp.Flag("window-size", fmt.Sprintf("%d,%d", opts.WindowWidth, opts.WindowHeight)),
		)
	}

	if opts.ExecutablePath != "" {
		flags = append(flags, chromedp.ExecPath(opts.ExecutablePath))
	}
	if opts.UserDataDir != "" {
		flags = append(flags, chromedp.UserDataDir(opts.UserDataDir))
	}

	for _, f := range opts.ExtraFlags {
		flags = append(flags, chromedp.Flag(f, true))
	}

	return flags
}

// Launch starts the browser process. Launch may be called once; a second
// call on an already-launched Browser is an error.
func (b *Browser) Launch(ctx context.Context, opts ports.LaunchOptions) error {
	if b.ctx != nil {
		return fmt.Errorf("browser already launched")
	}
	b.opts = opts

	timeout := 30 * time.Second
	if opts.LaunchTimeoutMs > 0 {
		timeout = time.Duration(opts.LaunchTimeoutMs) * time.Millisecond
	}
	launchCtx, launchCancel := context.WithTimeout(ctx, timeout)
	defer launchCancel()

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, deterministicFlags(opts)...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)

	if err := chromedp.Run(launchCtx); err != nil {
		b.cancel()
		b.allocCancel()
		return fmt.Errorf("launch browser: %w", err)
	}
	return nil
}

// NewPage creates a page bound to this browser. Every call, the first one
// included, opens a new target via chromedp.NewContext(b.ctx) so each page
// gets its own CDP session (one session per page, per spec §5); the tab
// created at launch is not handed out as a page.
func (b *Browser) NewPage(ctx context.Context) (ports.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("browser is closed")
	}

	tabCtx, tabCancel := chromedp.NewContext(b.ctx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("new page: %w", err)
	}

	return pagedriver.New(tabCtx, tabCancel, b.opts.CompatibleRenderingMode, b.log), nil
}

// Close shuts down the browser process and every page it owns.
func (b *Browser) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	if b.cancel != nil {
		b.cancel()
	}
	time.Sleep(100 * time.Millisecond)
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}

// Closed reports whether Close has completed.
func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

var _ ports.BrowserDriver = (*Browser)(nil)
