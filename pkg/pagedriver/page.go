// Package pagedriver implements the Page Driver (C4): the per-tab
// host-side controller that drives navigation, CDP request interception,
// the exposed host RPC surface, CSS-animation scheduling, and frame
// capture for one browser tab.
package pagedriver

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/ideamans/go-webvideocreator/pkg/capturectx"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// cssAnimState tracks one CSS/Web Animation pinned to virtual time (spec
// §4.4: "On first observation ... startTime is pinned to the current
// virtual time and it is paused via Animation.setPaused").
type cssAnimState struct {
	id          string
	pinnedAt    float64
	delay       float64
	duration    float64
	iterations  float64
	backendNode int64
}

// TimeAction is a host-side callback registered against a virtual time.
type TimeAction func(ctx context.Context, page ports.Page) error

// Page implements ports.Page using chromedp/cdproto.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc

	compatibleMode bool
	log            ports.Logger
	preprocessor   ports.Preprocessor
	fontCache      ports.FontCache

	mu    sync.Mutex
	state ports.PageState
	opts  ports.PageInitOptions

	frameTimeout time.Duration
	frameIndex   int
	stopRequested bool
	captureDone  chan error

	timeActions   map[float64]TimeAction
	cssAnimations map[string]*cssAnimState

	pending   map[int]chan bindingResult
	pendingMu sync.Mutex
	nextID    int

	sink ports.FrameSink
}

type bindingResult struct {
	value any
	err   error
}

// New constructs a Page bound to an already-created chromedp tab context.
// log, and the preprocessor/font cache wired in later via SetPreprocessor/
// SetFontCache, may be nil for tests that don't exercise those routes.
func New(tabCtx context.Context, tabCancel context.CancelFunc, compatibleMode bool, log ports.Logger) *Page {
	return &Page{
		ctx:            tabCtx,
		cancel:         tabCancel,
		compatibleMode: compatibleMode,
		log:            log,
		state:          ports.PageUninitialized,
		timeActions:    make(map[float64]TimeAction),
		cssAnimations:  make(map[string]*cssAnimState),
		pending:        make(map[int]chan bindingResult),
		frameTimeout:   5 * time.Second,
	}
}

// SetPreprocessor wires C7 into the /api/video_preprocess route.
func (p *Page) SetPreprocessor(pp ports.Preprocessor) { p.preprocessor = pp }

// SetFontCache wires local font serving into the /local_font/* route.
func (p *Page) SetFontCache(fc ports.FontCache) { p.fontCache = fc }

func (p *Page) setState(s ports.PageState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// State returns the current lifecycle state.
func (p *Page) State() ports.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Init prepares the tab for reuse: sets user-agent, disables CSP, enables
// request interception, subscribes to page events, and pre-injects the
// capture-context script in document-start order.
func (p *Page) Init(ctx context.Context, opts ports.PageInitOptions) error {
	p.mu.Lock()
	p.opts = opts
	if opts.CompatibleRenderingMode {
		p.compatibleMode = true
	}
	p.mu.Unlock()

	if opts.FrameTimeoutMs > 0 {
		p.frameTimeout = time.Duration(opts.FrameTimeoutMs) * time.Millisecond
	}

	if err := p.enableBinding(); err != nil {
		return fmt.Errorf("page init: enable binding: %w", err)
	}
	if err := p.enableInterception(); err != nil {
		return fmt.Errorf("page init: enable interception: %w", err)
	}
	p.subscribeEvents()

	if opts.DisableCSP {
		if err := chromedp.Run(p.ctx, page.SetBypassCSP(true)); err != nil {
			return fmt.Errorf("page init: bypass csp: %w", err)
		}
	}

	script, err := p.buildInjectedScript(opts)
	if err != nil {
		return fmt.Errorf("page init: build script: %w", err)
	}
	if err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx)
		return err
	})); err != nil {
		return fmt.Errorf("page init: inject script: %w", err)
	}

	if opts.UserAgent != "" {
		if err := chromedp.Run(p.ctx, emulation.SetUserAgentOverride(opts.UserAgent)); err != nil {
			return fmt.Errorf("page init: user agent: %w", err)
		}
	}

	p.setState(ports.PageReady)
	return nil
}

// buildInjectedScript concatenates the host-binding wrapper with the
// capture-context asset (C1->C2->C3), matching spec §4.4's document-start
// ordering requirement.
func (p *Page) buildInjectedScript(opts ports.PageInitOptions) (string, error) {
	bindings, err := bindingsScript()
	if err != nil {
		return "", err
	}

	loop, err := capturectx.Script(capturectx.Config{
		FPS:                              opts.FPS,
		StartTimeMs:                      opts.StartTimeMs,
		DurationMs:                       opts.DurationMs,
		FrameCount:                       opts.FrameCount,
		Autostart:                        true,
		VideoDecoderHardwareAcceleration: opts.VideoDecoderHardwareAcceleration,
	})
	if err != nil {
		return "", err
	}

	return bindings + "\n" + loop, nil
}

// Abort flips the page's stop flag; the in-page capture loop drains to
// screencastCompleted on its next tick.
func (p *Page) Abort() {
	p.mu.Lock()
	p.stopRequested = true
	p.mu.Unlock()
	go chromedp.Run(p.ctx, chromedp.Evaluate(`window.__captureCtx && window.__captureCtx.abort()`, nil))
}

// RegisterTimeAction schedules fn to run once virtual time reaches tMs.
func (p *Page) RegisterTimeAction(tMs float64, fn func(ctx context.Context, page ports.Page) error) {
	p.mu.Lock()
	p.timeActions[tMs] = fn
	p.mu.Unlock()
}

// runDueTimeActions finds the smallest registered key <= t, consumes it,
// and runs it (spec §4.4: the literal single-fire-per-tick legacy policy,
// see DESIGN.md's Open Question decision).
func (p *Page) runDueTimeActions(ctx context.Context, t float64) error {
	p.mu.Lock()
	keys := make([]float64, 0, len(p.timeActions))
	for k := range p.timeActions {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	var due float64
	found := false
	for _, k := range keys {
		if k <= t {
			due = k
			found = true
			break
		}
	}
	var fn TimeAction
	if found {
		fn = p.timeActions[due]
		delete(p.timeActions, due)
	}
	p.mu.Unlock()

	if !found {
		return nil
	}
	return fn(ctx, p)
}

// Close releases the tab and the underlying CDP session.
func (p *Page) Close(ctx context.Context) error {
	p.setState(ports.PageClosed)
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

var _ ports.Page = (*Page)(nil)
