// Package capturectx assembles the single document-start script (C3) that
// the Page Driver injects: C1's virtual clock shim, C2's media adapter,
// and the capture loop itself, in that fixed order.
package capturectx

import "math"

// Config mirrors spec §4.3's capture context configuration.
type Config struct {
	FPS                              int
	StartTimeMs                      float64
	DurationMs                       float64
	FrameCount                       int // 0 => derive from DurationMs*FPS/1000
	Autostart                        bool
	VideoDecoderHardwareAcceleration string
	DisableDateEpsilon               bool
}

// FrameInterval returns 1000/FPS.
func (c Config) FrameInterval() float64 {
	return 1000.0 / float64(c.FPS)
}

// ResolvedFrameCount returns FrameCount when it is set explicitly (> 0);
// otherwise it derives floor(duration_ms * fps / 1000) as spec §9 prescribes.
func (c Config) ResolvedFrameCount() int {
	if c.FrameCount > 0 {
		return c.FrameCount
	}
	return int(math.Floor(c.DurationMs * float64(c.FPS) / 1000.0))
}
