package mediashim

import (
	"github.com/ideamans/go-webvideocreator/pkg/ports"
	"github.com/tidwall/gjson"
)

// knownFields lists the VideoConfig attributes with a dedicated struct
// field; everything else in the POST body lands in ports.VideoConfig.Extra
// so a page-side attribute the closed field set doesn't know about yet is
// still forwarded to the preprocessor (spec §6).
var knownFields = map[string]bool{
	"id": true, "src": true, "maskSrc": true,
	"startTimeMs": true, "endTimeMs": true,
	"seekStartMs": true, "seekEndMs": true,
	"fadeInDurationMs": true, "fadeOutDurationMs": true,
	"loop": true, "autoplay": true, "muted": true, "volume": true,
	"retryFetchs": true, "ignoreCache": true, "format": true,
}

// ParseVideoConfig decodes the raw JSON POST body of /api/video_preprocess
// using gjson, so a partial or attribute-drifted payload still parses
// without a struct-shape round trip.
func ParseVideoConfig(raw []byte) (ports.VideoConfig, error) {
	root := gjson.ParseBytes(raw)
	if !root.Exists() {
		return ports.VideoConfig{}, errInvalidJSON
	}

	cfg := ports.VideoConfig{
		ID:                 root.Get("id").String(),
		Src:                root.Get("src").String(),
		MaskSrc:            root.Get("maskSrc").String(),
		StartTimeMs:        root.Get("startTimeMs").Float(),
		EndTimeMs:          root.Get("endTimeMs").Float(),
		SeekStartMs:        root.Get("seekStartMs").Float(),
		SeekEndMs:          root.Get("seekEndMs").Float(),
		FadeInDurationMs:   root.Get("fadeInDurationMs").Float(),
		FadeOutDurationMs:  root.Get("fadeOutDurationMs").Float(),
		Loop:               root.Get("loop").Bool(),
		Autoplay:           root.Get("autoplay").Bool(),
		Muted:              root.Get("muted").Bool(),
		Volume:             int(root.Get("volume").Int()),
		RetryFetchs:        int(root.Get("retryFetchs").Int()),
		IgnoreCache:        root.Get("ignoreCache").Bool(),
		Format:             root.Get("format").String(),
		Extra:              map[string]any{},
	}
	if !root.Get("endTimeMs").Exists() {
		cfg.EndTimeMs = 0 // clamped to config.duration by the caller (spec §8 boundary case)
	}

	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if !knownFields[k] {
			cfg.Extra[k] = value.Value()
		}
		return true
	})

	return cfg, nil
}

type configError string

func (e configError) Error() string { return string(e) }

const errInvalidJSON configError = "video_preprocess: invalid JSON body"
