package frameencoder

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

func encodePNGFrame(t *testing.T, width, height, frameNum int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*255/width + frameNum*10) % 256),
				G: uint8((y*255/height + frameNum*5) % 256),
				B: uint8((x + y + frameNum*3) % 256),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestEncoderBasicMP4(t *testing.T) {
	if testing.Short() {
		t.Skip("requires ffmpeg")
	}

	outPath := filepath.Join(t.TempDir(), "out.mp4")
	enc := New()
	ctx := context.Background()

	opts := ports.EncodeOptions{
		OutputPath:          outPath,
		Width:               320,
		Height:              240,
		FPS:                 30,
		VideoCodec:          string(CodecLibx264),
		Quality:             25,
		ParallelWriteFrames: 5,
	}
	if err := enc.Begin(ctx, opts); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		frame := encodePNGFrame(t, 320, 240, i)
		if err := enc.WriteFrame(ctx, frame); err != nil {
			t.Fatalf("WriteFrame failed at %d: %v", i, err)
		}
	}

	path, err := enc.End(ctx)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if path != outPath {
		t.Errorf("expected %s, got %s", outPath, path)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output file is empty")
	}
}

func TestEncoderChunkMode(t *testing.T) {
	if testing.Short() {
		t.Skip("requires ffmpeg")
	}

	outPath := filepath.Join(t.TempDir(), "chunk.ts")
	enc := New()
	ctx := context.Background()

	opts := ports.EncodeOptions{
		OutputPath:          outPath,
		Width:               160,
		Height:              120,
		FPS:                 30,
		VideoCodec:          string(CodecLibx264),
		Quality:             25,
		ParallelWriteFrames: 10,
		ChunkMode:           true,
	}
	if err := enc.Begin(ctx, opts); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		frame := encodePNGFrame(t, 160, 120, i)
		if err := enc.WriteFrame(ctx, frame); err != nil {
			t.Fatalf("WriteFrame failed at %d: %v", i, err)
		}
	}

	if _, err := enc.End(ctx); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("chunk output is empty")
	}
}

func TestEncoderNotInitialized(t *testing.T) {
	enc := New()
	ctx := context.Background()

	if err := enc.WriteFrame(ctx, []byte("x")); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := enc.End(ctx); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestEncoderAbort(t *testing.T) {
	if testing.Short() {
		t.Skip("requires ffmpeg")
	}

	outPath := filepath.Join(t.TempDir(), "aborted.mp4")
	enc := New()
	ctx := context.Background()

	opts := ports.EncodeOptions{
		OutputPath: outPath,
		Width:      160,
		Height:     120,
		FPS:        30,
		VideoCodec: string(CodecLibx264),
		Quality:    25,
	}
	if err := enc.Begin(ctx, opts); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := enc.WriteFrame(ctx, encodePNGFrame(t, 160, 120, 0)); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if err := enc.Abort(ctx); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}

	// A second Abort should be a harmless no-op.
	if err := enc.Abort(ctx); err != nil {
		t.Errorf("second Abort should be a no-op, got %v", err)
	}
}

func TestClassifyEncoderFailure(t *testing.T) {
	if err := classifyEncoderFailure("Error while opening encoder for output stream #0:0", 1); err == nil {
		t.Error("expected classified hardware hint error")
	}
	if err := classifyEncoderFailure("some unrelated failure", 1); err != nil {
		t.Error("expected unclassified failure to return nil")
	}
	if err := classifyEncoderFailure("", 3221225477); err == nil {
		t.Error("expected classified error for known hardware abort exit code")
	}
}
