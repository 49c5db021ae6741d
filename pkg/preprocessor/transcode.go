package preprocessor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// isWebM reports whether src (its URL path, ignoring query strings) names
// a WebM container. The HEAD MIME check upstream only tells us "video/*"
// or "application/octet-stream"; the container itself decides whether a
// transcode to H.264 is required (spec §4.6).
func isWebM(src string) bool {
	path := src
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(strings.ToLower(path), ".webm")
}

// probeAlphaMode runs ffprobe against the VP8/VP9 stream's tags looking
// for an alpha_mode entry (WebM's way of flagging a side alpha channel).
// A non-zero value means the source is transparent and a mask track must
// be extracted (spec §4.2/§4.6: "source has an ALPHA_MODE>0 tag").
func probeAlphaMode(path string) (bool, error) {
	out, err := runFFprobeJSON([]string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream_tags=alpha_mode",
		"-of", "default=nw=1:nk=1",
		path,
	})
	if err != nil {
		return false, err
	}
	val := strings.TrimSpace(string(out))
	if val == "" {
		return false, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return false, nil
	}
	return n > 0, nil
}

// transcodeToH264 converts a WebM source to an MP4-compatible H.264
// stream with faststart metadata (spec §4.6: "+faststart, -crf 18").
func transcodeToH264(srcPath, destPath string) error {
	return runFFmpeg([]string{
		"-y",
		"-i", srcPath,
		"-c:v", "libx264",
		"-crf", "18",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-an",
		destPath,
	})
}

// extractAlphaMask runs ffmpeg's alphaextract filter against the WebM
// source, producing a standalone H.264 mask track whose luminance
// encodes the original alpha channel (spec §4.6).
func extractAlphaMask(srcPath, destPath string) error {
	return runFFmpeg([]string{
		"-y",
		"-i", srcPath,
		"-vf", "alphaextract",
		"-c:v", "libx264",
		"-crf", "18",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-an",
		destPath,
	})
}

// demuxAudioToMP3 extracts the audio track to a standalone MP3 (spec
// §4.6: "demux the audio to MP3 (libmp3lame)").
func demuxAudioToMP3(srcPath, destPath string) error {
	return runFFmpeg([]string{
		"-y",
		"-i", srcPath,
		"-vn",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		destPath,
	})
}

// probeHasAudio reports whether srcPath carries an audio stream at all,
// so a silent source doesn't pay for a pointless demux pass.
func probeHasAudio(path string) (bool, error) {
	out, err := runFFprobeJSON([]string{
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path,
	})
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// transcodeErrorf wraps a transcode failure with the VideoConfig's ID for context,
// matching the error-wrapping idiom used everywhere else in this repo.
func transcodeErrorf(cfg ports.VideoConfig, step string, err error) error {
	return fmt.Errorf("preprocessor: %s failed for %s: %w", step, cfg.ID, err)
}
