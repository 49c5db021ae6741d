// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// BrowserDriver owns one browser process (C5). It is the outer member of
// the two-tier resource pool: a BrowserDriver owns a pool of Pages.
type BrowserDriver interface {
	// Launch starts the browser process with the given options. Launch may
	// be called once; a second call is an error.
	Launch(ctx context.Context, opts LaunchOptions) error

	// NewPage creates and initializes a new Page bound to this browser.
	// The first call may reuse the tab created at launch.
	NewPage(ctx context.Context) (Page, error)

	// Close shuts down the browser and every Page it owns.
	Close(ctx context.Context) error

	// Closed reports whether Close has completed.
	Closed() bool
}

// LaunchOptions configures a browser process launch (C5 §4.5).
type LaunchOptions struct {
	Headless                bool
	ExecutablePath           string
	UserDataDir              string
	WindowWidth              int
	WindowHeight             int
	DeviceScaleFactor        float64
	GPU                      bool
	CompatibleRenderingMode  bool // drop beginFrame flags, use Page.screenshot
	ExtraFlags               []string
	LaunchTimeoutMs          int
}

// Page is the per-tab host-side controller (C4). One Page wraps one CDP
// session and the in-page capture context it drives.
type Page interface {
	// State returns the current lifecycle state.
	State() PageState

	// Init prepares the tab for reuse: sets user-agent, disables CSP,
	// enables request interception, subscribes to page events, and
	// pre-injects the capture-context script in document-start order.
	Init(ctx context.Context, opts PageInitOptions) error

	// Goto navigates to a URL. Non-HTTPS/non-loopback URLs are rejected
	// unless opts.AllowUnsafeContext is set.
	Goto(ctx context.Context, url string, opts NavigateOptions) error

	// SetContent loads an inline HTML document instead of navigating.
	SetContent(ctx context.Context, html string, opts NavigateOptions) error

	// Capture runs the capture loop to completion, delivering frames and
	// audio descriptors to sink, and driving C7 (via the Preprocessor wired
	// into the page) and C8 (via the FrameSink).
	Capture(ctx context.Context, sink FrameSink) error

	// Abort flips the page's stop flag; the capture loop drains to
	// screencastCompleted on its next tick.
	Abort()

	// RegisterTimeAction schedules fn to run once virtual time reaches
	// tMs (spec §4.4: the host-side "t_ms -> fn(page)" map). fn receives
	// this Page so it can drive further host-side actions (e.g. clicks
	// via a higher-level automation layer) mid-capture.
	RegisterTimeAction(tMs float64, fn func(ctx context.Context, page Page) error)

	// Close releases the tab and the underlying CDP session.
	Close(ctx context.Context) error
}

// PageState is the C4/C6 page lifecycle (spec §3).
type PageState int

const (
	PageUninitialized PageState = iota
	PageReady
	PageCapturing
	PagePaused
	PageStopped
	PageClosed
	PageUnavailabled
)

func (s PageState) String() string {
	switch s {
	case PageUninitialized:
		return "uninitialized"
	case PageReady:
		return "ready"
	case PageCapturing:
		return "capturing"
	case PagePaused:
		return "paused"
	case PageStopped:
		return "stopped"
	case PageClosed:
		return "closed"
	case PageUnavailabled:
		return "unavailabled"
	default:
		return "unknown"
	}
}

// PageInitOptions configures Page.Init.
type PageInitOptions struct {
	UserAgent                        string
	DisableCSP                       bool
	FPS                              int
	Quality                          int
	ScreenshotFormat                 string // "png" | "jpeg"
	CompatibleRenderingMode          bool
	VideoDecoderHardwareAcceleration string
	FrameTimeoutMs                   int

	// StartTimeMs/DurationMs/FrameCount parameterize the document-start
	// capture-context script (C3) for this one capture job; Init is
	// called once per job acquisition, not once per browser tab.
	StartTimeMs float64
	DurationMs  float64
	FrameCount  int
}

// NavigateOptions configures Goto/SetContent.
type NavigateOptions struct {
	AllowUnsafeContext bool
	TimeoutMs          int
}

// FrameSink receives emitted frames and audio descriptors during capture.
// It is implemented by the Frame Encoder (C8) and the Chunk Synthesizer's
// audio collector (C10).
type FrameSink interface {
	// OnFrame receives one screenshot image (already in the configured
	// format) for frame index i. An empty data slice still counts toward
	// the frame budget (a permitted no-op frame).
	OnFrame(ctx context.Context, index int, data []byte) error

	// OnAudio receives an audio descriptor registered by the page
	// (addAudio) or produced by the preprocessor for a video's audio
	// track. End-time updates arrive through OnAudioEndTimeUpdated.
	OnAudio(desc AudioDescriptor) error

	// OnAudioEndTimeUpdated updates a previously emitted descriptor.
	OnAudioEndTimeUpdated(id string, endTimeMs float64) error

	// OnPageError receives a page-context error (uncaught exception or
	// rejected promise). Fatal reports whether the page was CAPTURING.
	OnPageError(code, message string, fatal bool)

	// OnCompleted is called once the capture loop notifies
	// screencastCompleted.
	OnCompleted(totalFrames int) error
}

// AudioDescriptor mirrors spec §3's Audio descriptor. Declared here (not in
// pkg/synthesizer) because Page emits it directly from the CDP exposed
// function addAudio.
type AudioDescriptor struct {
	ID               string
	Source           string // local path or URL
	StartTimeMs      float64
	EndTimeMs        float64
	DurationMs       float64
	Loop             bool
	Volume           int // 0..100
	SeekStartMs      float64
	SeekEndMs        float64
	FadeInDurationMs float64
	FadeOutDurationMs float64
}
