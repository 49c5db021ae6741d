package pagedriver

import "errors"

// Sentinel error kinds named in spec §7: page-context errors (uncaught
// page exceptions/rejections) and renderer stalls (a captureFrame that
// never returns).
var (
	// ErrPageContext wraps an uncaught exception or rejected promise
	// surfaced by the page via throwError.
	ErrPageContext = errors.New("pagedriver: page-context error")

	// ErrRendererStall is returned when captureFrame does not resolve
	// within the configured frame timeout (default 5s, spec §5).
	ErrRendererStall = errors.New("pagedriver: renderer stall, frame capture timed out")

	// ErrUnsafeNavigation is returned by Goto/SetContent when the target
	// is neither HTTPS nor loopback and AllowUnsafeContext is not set.
	ErrUnsafeNavigation = errors.New("pagedriver: refusing non-HTTPS/non-loopback navigation")

	// ErrNavigationDuringCapture is surfaced when the target fires
	// domcontentloaded while the page is CAPTURING (spec §4.4 lifecycle
	// hooks: an unexpected refresh mid-capture).
	ErrNavigationDuringCapture = errors.New("pagedriver: unexpected navigation during capture")
)
