// Package synthesizer implements C10: it owns the ordered chunk list,
// computes cumulative effective offsets for audio re-tagging, splices
// the per-chunk MPEG-TS intermediates (Xfade where a transition is
// configured, concat protocol otherwise), and hands the spliced,
// video-only result to one pkg/audiomixer invocation.
package synthesizer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/ideamans/go-webvideocreator/pkg/audiomixer"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// ErrDimensionMismatch is returned when a chunk's width/height/fps
// disagrees with chunks already added.
var ErrDimensionMismatch = fmt.Errorf("synthesizer: chunk dimensions or fps do not match prior chunks")

// Synthesizer owns the ordered chunk list for one run.
type Synthesizer struct {
	chunks    []*Chunk
	coverPath string
}

// New creates an empty Synthesizer.
func New() *Synthesizer { return &Synthesizer{} }

// SetCoverPath configures an optional cover image overlaid on the final
// spliced output (spec §4.9: "An optional cover is overlaid on the final
// output with repeatlast=0").
func (s *Synthesizer) SetCoverPath(path string) { s.coverPath = path }

// AddChunk appends c, validating its own invariants and that its
// width/height/fps match chunks already added.
func (s *Synthesizer) AddChunk(c *Chunk) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(s.chunks) > 0 {
		first := s.chunks[0]
		if c.Width != first.Width || c.Height != first.Height || c.FPS != first.FPS {
			return ErrDimensionMismatch
		}
	}
	s.chunks = append(s.chunks, c)
	return nil
}

// Chunks returns the ordered chunk list.
func (s *Synthesizer) Chunks() []*Chunk { return s.chunks }

// CumulativeOffsetMs returns the spliced-timeline start time of
// s.chunks[index]: the sum of every prior chunk's effective duration.
func (s *Synthesizer) CumulativeOffsetMs(index int) float64 {
	var total float64
	for i := 0; i < index && i < len(s.chunks); i++ {
		total += s.chunks[i].EffectiveDurationMs()
	}
	return total
}

// RetaggedAudioDescriptors flattens every chunk's audio descriptors,
// shifting each one's time fields by the chunk's cumulative offset (spec
// §4.9: "every audio descriptor it emits is re-tagged with the
// cumulative offset").
func (s *Synthesizer) RetaggedAudioDescriptors() []ports.AudioDescriptor {
	var out []ports.AudioDescriptor
	for i, c := range s.chunks {
		offset := s.CumulativeOffsetMs(i)
		for _, d := range c.AudioDescriptors {
			d.StartTimeMs += offset
			d.EndTimeMs += offset
			out = append(out, d)
		}
	}
	return out
}

// TotalDurationMs is the spliced timeline's length.
func (s *Synthesizer) TotalDurationMs() float64 {
	return s.CumulativeOffsetMs(len(s.chunks))
}

// TotalFrameCount sums every chunk's rendered frame count, used for the
// 95%-weighted progress split spec §4.9 describes.
func (s *Synthesizer) TotalFrameCount() int {
	var total int
	for _, c := range s.chunks {
		total += c.FrameCount
	}
	return total
}

// Progress returns the overall [0,1] progress given how many frames of
// the chunk stage have rendered so far and how far the mixing stage (if
// any) has progressed, per spec §4.9's 95/5 split.
func Progress(framesRendered, totalFrames int, mixProgress float64) float64 {
	chunkFraction := 0.0
	if totalFrames > 0 {
		chunkFraction = float64(framesRendered) / float64(totalFrames)
	}
	if chunkFraction > 1 {
		chunkFraction = 1
	}
	if mixProgress < 0 {
		mixProgress = 0
	}
	if mixProgress > 1 {
		mixProgress = 1
	}
	return chunkFraction*0.95 + mixProgress*0.05
}

var customFFmpegPath string

// SetFFmpegPath overrides the ffmpeg binary lookup used for the splice pass.
func SetFFmpegPath(path string) { customFFmpegPath = path }

func findFFmpeg() (string, error) {
	if customFFmpegPath != "" {
		if _, err := os.Stat(customFFmpegPath); err == nil {
			return customFFmpegPath, nil
		}
		return "", fmt.Errorf("synthesizer: custom ffmpeg path %s not found", customFFmpegPath)
	}
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("synthesizer: FFMPEG_PATH %s not found", envPath)
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
	return "", fmt.Errorf("synthesizer: ffmpeg not found in PATH")
}

// spliceVideoOnly runs the ffmpeg splice pass (Xfade or concat, plus an
// optional cover overlay) and returns the path to the video-only result.
func (s *Synthesizer) spliceVideoOnly(ctx context.Context, workDir string) (string, error) {
	if len(s.chunks) == 0 {
		return "", fmt.Errorf("synthesizer: no chunks to splice")
	}

	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return "", err
	}

	groups := buildSpliceGroups(s.chunks)
	inputs, filterComplex, outLabel := buildSpliceFilterComplex(groups)

	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}

	outPath := workDir + "/spliced.mp4"

	if s.coverPath != "" {
		coverInputIdx := len(inputs)
		args = append(args, "-i", s.coverPath)
		overlay := fmt.Sprintf("[%s][%d:v]overlay=repeatlast=0[vout]", outLabel, coverInputIdx)
		if filterComplex != "" {
			filterComplex = filterComplex + ";" + overlay
		} else {
			filterComplex = overlay
		}
		outLabel = "[vout]"
	}

	if filterComplex != "" {
		args = append(args, "-filter_complex", filterComplex, "-map", outLabel, "-c:v", "libx264", "-pix_fmt", "yuv420p")
	} else {
		args = append(args, "-map", outLabel, "-c:v", "copy")
	}

	args = append(args, outPath)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("synthesizer: splice failed: %w\nstderr: %s", err, stderr.String())
	}

	return outPath, nil
}

// Synthesize runs the full C10 pipeline: splice every chunk's MPEG-TS
// intermediate into one video-only stream, then hand it to mixer.Mix
// along with every chunk's re-tagged audio descriptors (C9).
func (s *Synthesizer) Synthesize(ctx context.Context, workDir, finalOutputPath string, mixer *audiomixer.Mixer, mixOpts audiomixer.Options) (string, error) {
	splicedPath, err := s.spliceVideoOnly(ctx, workDir)
	if err != nil {
		return "", err
	}

	mixOpts.OutputPath = finalOutputPath
	if mixOpts.ClampDurationMs <= 0 {
		mixOpts.ClampDurationMs = s.TotalDurationMs()
	}

	return mixer.Mix(ctx, splicedPath, s.RetaggedAudioDescriptors(), mixOpts)
}
