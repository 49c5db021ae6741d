package ports

import "context"

// Preprocessor serves the page-originated /api/video_preprocess RPC (C7):
// it downloads/caches source media, transcodes as needed, and packs the
// result for the in-page VideoCanvas decoder.
type Preprocessor interface {
	// Process runs the full download/transcode/clip pipeline for one
	// VideoConfig and returns the packed payload described in spec §6
	// ("len!json+binary").
	Process(ctx context.Context, cfg VideoConfig) (packed []byte, audio *AudioDescriptor, err error)
}

// VideoConfig is the JSON body the page posts to /api/video_preprocess,
// cloned from a <video>/<canvas video-capture> element's attributes
// (spec §4.2/§6). Extra carries attributes the closed field set doesn't
// know about yet, read loosely with gjson so a schema change on the page
// side doesn't require a Go struct change.
type VideoConfig struct {
	ID               string
	Src              string
	MaskSrc          string
	StartTimeMs      float64
	EndTimeMs        float64
	SeekStartMs      float64
	SeekEndMs        float64
	FadeInDurationMs float64
	FadeOutDurationMs float64
	Loop             bool
	Autoplay         bool
	Muted            bool
	Volume           int
	RetryFetchs      int
	IgnoreCache      bool
	Format           string

	Extra map[string]any
}
