// Package audiomixer implements C9, the second ffmpeg pass that overlays
// every audio descriptor emitted during capture onto a video-only
// intermediate (spec §4.8). Grounded in the same subprocess-wrapping
// idiom as pkg/preprocessor and pkg/frameencoder.
package audiomixer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

var customFFmpegPath string

// SetFFmpegPath overrides the ffmpeg binary lookup.
func SetFFmpegPath(path string) { customFFmpegPath = path }

func findFFmpeg() (string, error) {
	if customFFmpegPath != "" {
		if _, err := os.Stat(customFFmpegPath); err == nil {
			return customFFmpegPath, nil
		}
		return "", fmt.Errorf("audiomixer: custom ffmpeg path %s not found", customFFmpegPath)
	}
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("audiomixer: FFMPEG_PATH %s not found", envPath)
	}
	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}
	for _, p := range []string{"/usr/bin/ffmpeg", "/usr/local/bin/ffmpeg", "/opt/homebrew/bin/ffmpeg", "/snap/bin/ffmpeg"} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("audiomixer: ffmpeg not found in PATH")
}

// Options configures one Mix invocation.
type Options struct {
	OutputPath      string
	AudioCodec      string // "aac" (default) | "libopus"
	VideoVolume     int    // 0..100, default 100
	ClampDurationMs float64
	ContainerFormat string // "mp4" | "webm"; selects the audio codec default
}

// Mixer runs the C9 ffmpeg filter-graph pass.
type Mixer struct{}

// New creates a Mixer.
func New() *Mixer { return &Mixer{} }

// Mix overlays descs (each descriptor's Source must already be a local
// file path) onto videoPath and writes opts.OutputPath. Returns the
// output path. The video stream is copied untouched (spec §4.8:
// "-c:v copy"); only the audio track is re-encoded.
func (m *Mixer) Mix(ctx context.Context, videoPath string, descs []ports.AudioDescriptor, opts Options) (string, error) {
	if videoPath == "" {
		return "", ErrNoVideoPath
	}

	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return "", err
	}

	args := []string{"-y", "-i", videoPath}
	for _, d := range descs {
		args = append(args, "-i", d.Source)
	}

	args = append(args, "-map", "0:v", "-c:v", "copy")

	if len(descs) > 0 {
		filterComplex, outLabel := buildFilterComplex(descs, opts.VideoVolume)
		args = append(args, "-filter_complex", filterComplex, "-map", outLabel)

		codec := opts.AudioCodec
		if codec == "" {
			if strings.EqualFold(opts.ContainerFormat, "webm") {
				codec = "libopus"
			} else {
				codec = "aac"
			}
		}
		args = append(args, "-c:a", codec)
	} else {
		args = append(args, "-an")
	}

	if opts.ClampDurationMs > 0 {
		args = append(args, "-t", fmt.Sprintf("%.3f", opts.ClampDurationMs/1000.0))
	}

	args = append(args, opts.OutputPath)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		if classified := classifyMixerFailure(stderr.String(), exitCode); classified != nil {
			return "", classified
		}
		return "", fmt.Errorf("%w: %v\nstderr: %s", ErrEncoderFailure, err, stderr.String())
	}

	return opts.OutputPath, nil
}
