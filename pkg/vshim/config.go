// Package vshim generates the in-page virtual clock & API shim (C1): the
// document-start script that replaces setInterval/setTimeout/
// requestAnimationFrame/Date/performance.now with frame-indexed virtual
// equivalents, preserving the originals under reserved names.
package vshim

// Config parameterizes the generated shim script.
type Config struct {
	// FPS is only used to pre-seed frameInterval for pre-start housekeeping;
	// the capture context (pkg/capturectx) owns the authoritative value
	// once capture starts.
	FPS int

	// DisableDateEpsilon turns off the +0.01ms-per-call monotonic nudge
	// Date.now applies within one virtual tick (spec §4.1, §9 Open
	// Questions: documented and made opt-outable rather than silent).
	DisableDateEpsilon bool

	// ReservedPrefix is prepended to the names under which the original
	// functions are preserved (e.g. "____setTimeout"). Defaults to "____".
	ReservedPrefix string
}

// DefaultConfig returns the Config used when none is supplied.
func DefaultConfig() Config {
	return Config{
		FPS:            30,
		ReservedPrefix: "____",
	}
}

func (c Config) prefix() string {
	if c.ReservedPrefix == "" {
		return "____"
	}
	return c.ReservedPrefix
}
