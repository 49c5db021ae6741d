package frameencoder

// deriveBitrateKbps implements spec §4.7's fallback bitrate formula when
// no explicit bitrate is configured: (2560·pixels/921600)·(quality/100).
// 921600 is 1280x720 in pixels; 2560 kbps is the reference bitrate for
// that resolution at quality 100.
func deriveBitrateKbps(width, height, quality int) int {
	pixels := width * height
	return int((2560.0 * float64(pixels) / 921600.0) * (float64(quality) / 100.0))
}
