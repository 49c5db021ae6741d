// Package frameencoder implements C8, the frame-stream-to-subprocess
// encoder. Grounded directly in the teacher's
// h264encoder.FFmpegEncoder.Begin/EncodeFrame/End (stdin pipe,
// image2pipe, batched writes), generalized to the full encoder
// vocabulary and to the MPEG-TS chunk output mode spec §4.7 adds.
package frameencoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

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
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, customFFmpegPath)
	}
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
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
	return "", ErrFFmpegNotFound
}

// Encoder streams raw screenshot images into an ffmpeg subprocess over a
// stdin pipe (spec §4.7: "-f image2pipe -r fps -i pipe:0").
type Encoder struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	opts   ports.EncodeOptions
	batch  [][]byte
	closed bool
}

// New creates an Encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin launches ffmpeg with the arguments spec §4.7 describes.
func (e *Encoder) Begin(ctx context.Context, opts ports.EncodeOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return err
	}

	codec, err := ParseVideoCodec(opts.VideoCodec)
	if err != nil {
		return err
	}
	opts.VideoCodec = string(codec)

	e.opts = opts
	e.batch = nil
	e.closed = false

	args := []string{
		"-y",
		"-f", "image2pipe",
		"-r", fmt.Sprintf("%.5f", opts.FPS),
		"-i", "pipe:0",
	}

	if opts.AttachCoverPath != "" {
		args = append(args, "-i", opts.AttachCoverPath,
			"-filter_complex", fmt.Sprintf("[1:v]scale=%d:%d[cov];[0:v][cov]overlay", opts.Width, opts.Height))
	}

	args = append(args, "-c:v", opts.VideoCodec)

	bitrate := opts.BitrateKbps
	if bitrate <= 0 {
		bitrate = deriveBitrateKbps(opts.Width, opts.Height, opts.Quality)
	}
	args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))

	pixFmt := opts.PixelFormat
	if pixFmt == "" {
		pixFmt = "yuv420p"
	}
	args = append(args, "-pix_fmt", pixFmt)

	if codec.supportsProfilePreset() {
		args = append(args, "-profile:v", "main", "-preset", "medium")
	}

	outputPath := opts.OutputPath
	if opts.ChunkMode {
		args = append(args, "-bsf:v", codec.annexBFilter(), "-f", "mpegts", outputPath)
	} else {
		args = append(args, "-movflags", "+faststart", outputPath)
	}

	e.cmd = exec.CommandContext(ctx, ffmpegPath, args...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("frameencoder: stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("frameencoder: start ffmpeg: %w", err)
	}
	return nil
}

// WriteFrame appends data to the pending batch, flushing automatically
// once ParallelWriteFrames images have queued (spec §4.7: default 10).
func (e *Encoder) WriteFrame(ctx context.Context, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return ErrNotInitialized
	}

	e.batch = append(e.batch, data)

	batchSize := e.opts.ParallelWriteFrames
	if batchSize < 1 {
		batchSize = 10
	}
	if len(e.batch) < batchSize {
		return nil
	}
	return e.flushLocked()
}

// Flush forces any batched frames to be written now.
func (e *Encoder) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stdin == nil || e.closed {
		return ErrNotInitialized
	}
	return e.flushLocked()
}

func (e *Encoder) flushLocked() error {
	if len(e.batch) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, frame := range e.batch {
		buf.Write(frame)
	}
	e.batch = e.batch[:0]
	if _, err := e.stdin.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("frameencoder: write batch: %w", err)
	}
	return nil
}

// End finalizes encoding and returns the output path.
func (e *Encoder) End(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return "", ErrNotInitialized
	}
	if err := e.flushLocked(); err != nil {
		return "", err
	}

	e.stdin.Close()
	e.stdin = nil
	e.closed = true

	if err := e.cmd.Wait(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		if classified := classifyEncoderFailure(e.stderr.String(), exitCode); classified != nil {
			return "", classified
		}
		return "", fmt.Errorf("%w: %v\nstderr: %s", ErrEncoderFailure, err, e.stderr.String())
	}

	return e.opts.OutputPath, nil
}

// Abort sends ffmpeg its quit signal on stdin and releases resources
// without waiting for a clean finish (spec §4.7: "sent q on stdin").
func (e *Encoder) Abort(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return nil
	}
	e.stdin.Write([]byte("q"))
	e.stdin.Close()
	e.stdin = nil
	e.closed = true

	go e.cmd.Wait()
	return nil
}

var _ ports.VideoEncoder = (*Encoder)(nil)
