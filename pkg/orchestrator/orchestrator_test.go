package orchestrator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/adapters/osfilesystem"
	"github.com/ideamans/go-webvideocreator/pkg/config"
	"github.com/ideamans/go-webvideocreator/pkg/logger"
	"github.com/ideamans/go-webvideocreator/pkg/mocks"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	o := New(osfilesystem.New(), &mocks.NullSink{}, logger.NewNoop())

	cfg := config.Defaults()
	cfg.DurationMs = 1000
	// Neither URL nor HTML set: config error, caught before any resource
	// is acquired.

	if _, err := o.Run(context.Background(), cfg); err == nil {
		t.Fatal("expected a config validation error, got nil")
	}
}

func TestRunRejectsUnknownCodec(t *testing.T) {
	o := New(osfilesystem.New(), &mocks.NullSink{}, logger.NewNoop())

	cfg := config.Defaults()
	cfg.URL = "https://example.com"
	cfg.DurationMs = 1000
	cfg.VideoCodec = "not-a-real-codec"

	if _, err := o.Run(context.Background(), cfg); err == nil {
		t.Fatal("expected an unknown codec error, got nil")
	}
}

func encodeJPEGFrame(t *testing.T, w, h int, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// TestRunEndToEndWithMockBrowser drives Run with a mocked browser/page
// (pkg/mocks), but the real frame encoder, synthesizer, and audio mixer,
// so it requires a real ffmpeg binary on PATH. The mock page feeds a
// handful of synthetic JPEG frames straight into the capture sink,
// exercising C8 (frame encoder) -> C10 (synthesizer) -> C9 (mixer) end to
// end without needing a real browser.
func TestRunEndToEndWithMockBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a real ffmpeg binary; skipped in -short mode")
	}

	tmpRoot := t.TempDir()
	o := New(osfilesystem.New(), &mocks.NullSink{}, logger.NewNoop())

	frames := [][]byte{
		encodeJPEGFrame(t, 160, 120, 40),
		encodeJPEGFrame(t, 160, 120, 120),
		encodeJPEGFrame(t, 160, 120, 200),
	}

	mockPage := &mocks.Page{
		CaptureFunc: func(ctx context.Context, sink ports.FrameSink) error {
			for i, f := range frames {
				if err := sink.OnFrame(ctx, i, f); err != nil {
					return err
				}
			}
			return sink.OnCompleted(len(frames))
		},
	}
	mockBrowser := &mocks.BrowserDriver{
		NewPageFunc: func(ctx context.Context) (ports.Page, error) { return mockPage, nil },
	}
	o.newBrowser = func(ctx context.Context, opts ports.LaunchOptions) (ports.BrowserDriver, error) {
		return mockBrowser, nil
	}

	cfg := config.Defaults()
	cfg.URL = "https://example.com"
	cfg.Width = 160
	cfg.Height = 120
	cfg.FPS = 10
	cfg.DurationMs = 300
	cfg.TmpDir = filepath.Join(tmpRoot, "tmp")
	cfg.OutputPath = filepath.Join(tmpRoot, "out.mp4")
	cfg.NumBrowserMin = 1
	cfg.NumBrowserMax = 1
	cfg.NumPageMin = 1
	cfg.NumPageMax = 1

	result, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	info, statErr := os.Stat(result.OutputPath)
	if statErr != nil {
		t.Fatalf("output file missing: %v", statErr)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
	if result.FrameCount != 3 {
		t.Errorf("expected frame count 3, got %d", result.FrameCount)
	}
	if result.OutputPath != cfg.OutputPath {
		t.Errorf("expected output path %s, got %s", cfg.OutputPath, result.OutputPath)
	}
}

// TestRunAbortsEncoderOnCaptureFailure verifies a capture failure tears
// down the in-flight encoder rather than leaving its ffmpeg subprocess
// hanging. The encoder itself is mocked, so this needs no real ffmpeg.
func TestRunAbortsEncoderOnCaptureFailure(t *testing.T) {
	o := New(osfilesystem.New(), &mocks.NullSink{}, logger.NewNoop())

	mockEncoder := &mocks.VideoEncoder{}
	o.newEncoder = func() ports.VideoEncoder { return mockEncoder }

	captureErr := context.DeadlineExceeded
	mockPage := &mocks.Page{
		CaptureFunc: func(ctx context.Context, sink ports.FrameSink) error {
			return captureErr
		},
	}
	mockBrowser := &mocks.BrowserDriver{
		NewPageFunc: func(ctx context.Context) (ports.Page, error) { return mockPage, nil },
	}
	o.newBrowser = func(ctx context.Context, opts ports.LaunchOptions) (ports.BrowserDriver, error) {
		return mockBrowser, nil
	}

	tmpRoot := t.TempDir()
	cfg := config.Defaults()
	cfg.URL = "https://example.com"
	cfg.DurationMs = 300
	cfg.TmpDir = filepath.Join(tmpRoot, "tmp")
	cfg.OutputPath = filepath.Join(tmpRoot, "out.mp4")

	_, err := o.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected Run to propagate the capture error")
	}
	if !mockEncoder.Aborted {
		t.Error("expected the encoder to be aborted after a capture failure")
	}
	if mockEncoder.EndCalled {
		t.Error("End should not be called after a capture failure")
	}
}
