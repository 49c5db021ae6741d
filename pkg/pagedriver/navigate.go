package pagedriver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/animation"
	"github.com/chromedp/chromedp"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// rendererAssetsScript stubs the renamed-off-namespace globals spec §4.4
// expects document-start code to find (____MP4Box, ____lottie). Vendoring
// the real mp4box.js/lottie-web bundles is outside this module's scope
// (no embedded third-party JS assets ship here); a deployment wires real
// builds of both in via the same injection point.
const rendererAssetsScript = `
window.____MP4Box = window.____MP4Box || { createFile: function () { throw new Error("MP4Box asset not installed"); } };
window.____lottie = window.____lottie || { loadAnimation: function () { throw new Error("lottie asset not installed"); } };
`

func (p *Page) resetPerNavigationState() {
	p.mu.Lock()
	p.cssAnimations = make(map[string]*cssAnimState)
	p.timeActions = make(map[float64]TimeAction)
	p.frameIndex = 0
	p.mu.Unlock()
}

func isSafeTarget(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme == "https" {
		return true
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// Goto navigates to a URL. Non-HTTPS/non-loopback URLs are rejected
// unless opts.AllowUnsafeContext is set.
func (p *Page) Goto(ctx context.Context, target string, opts ports.NavigateOptions) error {
	if !opts.AllowUnsafeContext && !isSafeTarget(target) {
		return fmt.Errorf("%w: %s", ErrUnsafeNavigation, target)
	}

	p.resetPerNavigationState()

	timeout := 30 * time.Second
	if opts.TimeoutMs > 0 {
		timeout = time.Duration(opts.TimeoutMs) * time.Millisecond
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := chromedp.Run(p.ctx,
		animation.Enable(),
		chromedp.Navigate(target),
		chromedp.Evaluate(rendererAssetsScript, nil),
	); err != nil {
		return fmt.Errorf("goto %s: %w", target, err)
	}
	_ = navCtx

	return p.initCaptureContext(ctx)
}

// SetContent loads an inline HTML document instead of navigating.
func (p *Page) SetContent(ctx context.Context, html string, opts ports.NavigateOptions) error {
	if !opts.AllowUnsafeContext {
		return fmt.Errorf("%w: inline content requires AllowUnsafeContext", ErrUnsafeNavigation)
	}

	p.resetPerNavigationState()

	escaped := strings.ReplaceAll(html, "`", "\\`")
	setDoc := "document.open(); document.write(`" + escaped + "`); document.close();"

	if err := chromedp.Run(p.ctx,
		animation.Enable(),
		chromedp.Navigate("about:blank"),
		chromedp.Evaluate(setDoc, nil),
		chromedp.Evaluate(rendererAssetsScript, nil),
	); err != nil {
		return fmt.Errorf("set content: %w", err)
	}

	return p.initCaptureContext(ctx)
}

func (p *Page) initCaptureContext(ctx context.Context) error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(
		`window.__captureCtx && window.__captureCtx.init()`, nil,
	))
}
