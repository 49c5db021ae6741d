// Package orchestrator wires the full pipeline together: the two-tier
// resource pool (C6) hands out a browser page (C5/C4), the page's
// capture loop streams frames and audio descriptors into the frame
// encoder (C8) via a FrameSink bridge, and the resulting chunk is handed
// to the chunk synthesizer (C10), which splices and mixes (C9) into the
// final output file.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ideamans/go-webvideocreator/pkg/audiomixer"
	"github.com/ideamans/go-webvideocreator/pkg/browserdriver"
	"github.com/ideamans/go-webvideocreator/pkg/config"
	"github.com/ideamans/go-webvideocreator/pkg/fontcache"
	"github.com/ideamans/go-webvideocreator/pkg/frameencoder"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
	"github.com/ideamans/go-webvideocreator/pkg/preprocessor"
	"github.com/ideamans/go-webvideocreator/pkg/resourcepool"
	"github.com/ideamans/go-webvideocreator/pkg/synthesizer"
)

// RunResult summarizes one completed render for the CLI/caller.
type RunResult struct {
	URL           string
	OutputPath    string
	Width, Height int
	FrameCount    int
	DurationMs    float64
	VideoFileSize int64
}

// Orchestrator coordinates one render run end to end.
type Orchestrator struct {
	fs     ports.FileSystem
	sink   ports.DebugSink
	logger ports.Logger

	// newBrowser and newEncoder are swappable seams so tests can drive
	// Run against pkg/mocks instead of a real Chrome process and ffmpeg
	// subprocess. New wires them to the real adapters; tests in this
	// package may overwrite the fields directly before calling Run.
	newBrowser func(ctx context.Context, opts ports.LaunchOptions) (ports.BrowserDriver, error)
	newEncoder func() ports.VideoEncoder
}

// New creates an Orchestrator wired to the real browser and encoder
// adapters.
func New(fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		fs:     fs,
		sink:   sink,
		logger: logger,
		newBrowser: func(ctx context.Context, opts ports.LaunchOptions) (ports.BrowserDriver, error) {
			b := browserdriver.New(logger)
			if err := b.Launch(ctx, opts); err != nil {
				return nil, fmt.Errorf("launch browser: %w", err)
			}
			return b, nil
		},
		newEncoder: func() ports.VideoEncoder { return frameencoder.New() },
	}
}

// preprocessorSetter is the optional wiring surface a concrete ports.Page
// implementation exposes beyond the minimal ports.Page interface (C7/font
// cache are wired once at acquisition time, not part of the per-tab
// lifecycle contract every Page must support).
type preprocessorSetter interface {
	SetPreprocessor(ports.Preprocessor)
	SetFontCache(ports.FontCache)
}

// Run executes one full render: acquire a page, navigate, capture frames
// into C8, splice and mix via C10/C9, and write the output file.
func (o *Orchestrator) Run(ctx context.Context, cfg config.Config) (RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return RunResult{}, err
	}
	if _, err := frameencoder.ParseVideoCodec(cfg.VideoCodec); err != nil {
		return RunResult{}, err
	}

	o.logger.Info("Starting render of %s", displayTarget(cfg))

	browserDir := filepath.Join(cfg.TmpDir, "browser")
	preprocDir := filepath.Join(cfg.TmpDir, "preprocessor")
	synthDir := filepath.Join(cfg.TmpDir, "synthesizer")
	fontDir := filepath.Join(cfg.TmpDir, "local_font")
	for _, dir := range []string{browserDir, preprocDir, synthDir, fontDir} {
		if err := o.fs.MkdirAll(dir); err != nil {
			return RunResult{}, fmt.Errorf("prepare tmp dir %s: %w", dir, err)
		}
	}

	fc := fontcache.New(fontDir, o.fs)
	pp := preprocessor.New(o.fs, o.logger, preprocessor.Options{
		TmpDir:        cfg.TmpDir,
		MaxDownloads:  cfg.MaxDownloads,
		MaxTranscodes: cfg.MaxTranscodes,
		RetryFetchs:   cfg.RetryFetchs,
		RetryDelayMs:  cfg.RetryDelayMs,
	})

	launchOpts := ports.LaunchOptions{
		Headless:                cfg.Headless,
		ExecutablePath:          cfg.ChromePath,
		UserDataDir:             browserDir,
		WindowWidth:             cfg.Width,
		WindowHeight:            cfg.Height,
		DeviceScaleFactor:       cfg.DeviceScaleFactor,
		GPU:                     cfg.GPU,
		CompatibleRenderingMode: cfg.CompatibleRenderingMode,
	}

	newBrowser := func(ctx context.Context) (ports.BrowserDriver, error) {
		return o.newBrowser(ctx, launchOpts)
	}
	closeBrowser := func(ctx context.Context, b ports.BrowserDriver) error {
		return b.Close(ctx)
	}

	pool := resourcepool.NewTwoTier(
		cfg.NumBrowserMin, cfg.NumBrowserMax,
		cfg.NumPageMin, cfg.NumPageMax,
		newBrowser, closeBrowser, o.logger,
	)
	defer pool.Close(ctx)

	page, entry, err := pool.AcquirePage(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("acquire page: %w", err)
	}
	defer pool.ReleasePage(entry, page)

	if setter, ok := page.(preprocessorSetter); ok {
		setter.SetPreprocessor(pp)
		setter.SetFontCache(fc)
	}

	frameCount := cfg.FrameCount()

	if err := page.Init(ctx, ports.PageInitOptions{
		UserAgent:                        cfg.UserAgent,
		DisableCSP:                       true,
		FPS:                              cfg.FPS,
		Quality:                          cfg.Quality,
		ScreenshotFormat:                 "jpeg",
		CompatibleRenderingMode:          cfg.CompatibleRenderingMode,
		VideoDecoderHardwareAcceleration: cfg.VideoDecoderHardwareAcceleration,
		FrameTimeoutMs:                   cfg.FrameTimeoutMs,
		StartTimeMs:                      cfg.StartTimeMs,
		DurationMs:                       cfg.DurationMs,
		FrameCount:                       frameCount,
	}); err != nil {
		return RunResult{}, fmt.Errorf("init page: %w", err)
	}

	navOpts := ports.NavigateOptions{AllowUnsafeContext: cfg.AllowUnsafeContext, TimeoutMs: cfg.TimeoutMs}
	if cfg.HTML != "" {
		if err := page.SetContent(ctx, cfg.HTML, navOpts); err != nil {
			return RunResult{}, fmt.Errorf("set content: %w", err)
		}
	} else {
		if err := page.Goto(ctx, cfg.URL, navOpts); err != nil {
			return RunResult{}, fmt.Errorf("navigate: %w", err)
		}
	}

	chunkPath := filepath.Join(synthDir, "chunk_0.ts")
	encoder := o.newEncoder()
	encOpts := ports.EncodeOptions{
		OutputPath:          chunkPath,
		Width:               cfg.Width,
		Height:              cfg.Height,
		FPS:                 float64(cfg.FPS),
		VideoCodec:          cfg.VideoCodec,
		BitrateKbps:         cfg.Bitrate,
		Quality:             cfg.Quality,
		AttachCoverPath:     cfg.AttachCoverPath,
		ParallelWriteFrames: cfg.ParallelWriteFrames,
		ChunkMode:           true,
		ContainerFormat:     "mpegts",
	}
	if err := encoder.Begin(ctx, encOpts); err != nil {
		return RunResult{}, fmt.Errorf("begin encoder: %w", err)
	}
	if o.sink.Enabled() {
		o.sink.SaveEncoderCommand("chunk_0", encoderArgvForDebug(encOpts))
	}

	sink := newCaptureSink(o.logger, o.sink, encoder)

	if err := page.Capture(ctx, sink); err != nil {
		encoder.Abort(ctx)
		return RunResult{}, fmt.Errorf("capture: %w", err)
	}

	if err := encoder.Flush(ctx); err != nil {
		return RunResult{}, fmt.Errorf("flush encoder: %w", err)
	}
	encodedPath, err := encoder.End(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("finalize encoder: %w", err)
	}

	chunk, err := synthesizer.NewChunk(0, cfg.Width, cfg.Height, float64(cfg.FPS), cfg.DurationMs, encodedPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("build chunk: %w", err)
	}
	chunk.FrameCount = frameCount
	chunk.AudioDescriptors = sink.audioDescriptors()

	synth := synthesizer.New()
	if err := synth.AddChunk(chunk); err != nil {
		return RunResult{}, fmt.Errorf("add chunk: %w", err)
	}

	mixer := audiomixer.New()
	outputPath, err := synth.Synthesize(ctx, synthDir, cfg.OutputPath, mixer, audiomixer.Options{
		AudioCodec:      cfg.AudioCodec,
		VideoVolume:     cfg.VideoVolume,
		ContainerFormat: cfg.Format,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("synthesize: %w", err)
	}

	o.logger.Info("Render complete: %s", outputPath)

	var fileSize int64
	if info, statErr := os.Stat(outputPath); statErr == nil {
		fileSize = info.Size()
	}

	return RunResult{
		URL:           cfg.URL,
		OutputPath:    outputPath,
		Width:         cfg.Width,
		Height:        cfg.Height,
		FrameCount:    frameCount,
		DurationMs:    cfg.DurationMs,
		VideoFileSize: fileSize,
	}, nil
}

func displayTarget(cfg config.Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return "<inline html>"
}

// encoderArgvForDebug reconstructs a human-readable argv summary for
// SaveEncoderCommand; the encoder builds the authoritative argv itself,
// this is only a debug artifact.
func encoderArgvForDebug(opts ports.EncodeOptions) []string {
	return []string{
		"ffmpeg", "-f", "image2pipe", "-i", "pipe:0",
		"-c:v", opts.VideoCodec,
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", fmt.Sprintf("%.3f", opts.FPS),
		opts.OutputPath,
	}
}
