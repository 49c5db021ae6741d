// Package main provides the CLI entry point for webvideocreator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/ideamans/go-webvideocreator/pkg/adapters/osfilesystem"
	"github.com/ideamans/go-webvideocreator/pkg/config"
	"github.com/ideamans/go-webvideocreator/pkg/debugsink"
	"github.com/ideamans/go-webvideocreator/pkg/logger"
	"github.com/ideamans/go-webvideocreator/pkg/orchestrator"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Render  RenderCmd  `cmd:"" help:"Render a web page into a deterministic offline video."`
	Clean   CleanCmd   `cmd:"" help:"Remove cached browser/preprocessor/synthesizer tmp state."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// RenderCmd defines the render subcommand.
type RenderCmd struct {
	URL    string `arg:"" optional:"" help:"URL of the page to render (mutually exclusive with --html)."`
	Output string `short:"o" required:"" help:"Output video file path."`

	HTML   string `help:"Inline HTML document to render instead of a URL."`
	Format string `short:"f" default:"mp4" enum:"mp4,webm" help:"Container format."`

	Width             int     `short:"W" default:"1280" help:"Output video width in pixels (must be even)."`
	Height            int     `short:"H" default:"720" help:"Output video height in pixels (must be even)."`
	FPS               int     `default:"30" help:"Frames per second."`
	DurationMs        float64 `required:"" help:"Capture duration in milliseconds."`
	StartTimeMs       float64 `help:"Virtual time at which frame capture begins (pre-roll is rendered but not emitted)."`
	DeviceScaleFactor float64 `default:"1.0" help:"Device scale factor."`

	VideoCodec  string `default:"libx264" help:"Video encoder (see closed vocabulary in pkg/frameencoder)."`
	AudioCodec  string `default:"aac" enum:"aac,libopus" help:"Audio encoder."`
	Quality     int    `short:"q" default:"75" help:"Encoder quality (0-100, ignored if --bitrate is set)."`
	Bitrate     int    `help:"Target video bitrate in kbps."`
	VideoVolume int    `default:"100" help:"Master volume applied to every audio track (0-100)."`

	NoHeadless              bool   `help:"Run the browser in non-headless mode."`
	ChromePath              string `help:"Path to the Chrome executable (falls back to CHROME_PATH env)."`
	CompatibleRenderingMode bool   `help:"Use Page.screenshot instead of HeadlessExperimental.beginFrame."`
	AllowUnsafeContext      bool   `help:"Allow navigating to non-HTTPS/non-loopback URLs."`

	NumBrowserMax int `default:"2" help:"Maximum concurrent browsers."`
	NumPageMax    int `default:"2" help:"Maximum concurrent pages per browser."`

	Config   string `short:"c" help:"Load a YAML config file for settings without a CLI flag; every CLI flag's value, given or default, replaces the file's, and a file that fails to load is ignored."`
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// CleanCmd removes the tmp subtrees the pipeline writes to.
type CleanCmd struct {
	TmpDir string `default:"./tmp" help:"Root of the browser/preprocessor/synthesizer/local_font tmp state."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("webvideocreator"),
		kong.Description("Render web pages into deterministic, offline video files."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (cmd *RenderCmd) Run() error {
	cfg := cmd.buildConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()

	var sink ports.DebugSink
	if cmd.Debug {
		if err := fs.MkdirAll(cmd.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = debugsink.New(cmd.DebugDir, fs)
	} else {
		sink = debugsink.NewNull()
	}

	orch := orchestrator.New(fs, sink, log)

	log.Info(l10n.F("Rendering %s...", cmd.displayTarget()))

	if _, err := orch.Run(ctx, cfg); err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", cmd.Output))
	return nil
}

func (cmd *RenderCmd) displayTarget() string {
	if cmd.URL != "" {
		return cmd.URL
	}
	return "<inline html>"
}

func (cmd *RenderCmd) buildConfig() config.Config {
	cfg := config.Defaults()
	if cmd.Config != "" {
		if loaded, err := config.LoadFromFile(cmd.Config); err == nil {
			cfg = loaded
		}
	}

	cfg.URL = cmd.URL
	cfg.HTML = cmd.HTML
	cfg.OutputPath = cmd.Output
	cfg.Format = cmd.Format
	cfg.Width = cmd.Width
	cfg.Height = cmd.Height
	cfg.FPS = cmd.FPS
	cfg.DurationMs = cmd.DurationMs
	cfg.StartTimeMs = cmd.StartTimeMs
	cfg.DeviceScaleFactor = cmd.DeviceScaleFactor
	cfg.VideoCodec = cmd.VideoCodec
	cfg.AudioCodec = cmd.AudioCodec
	cfg.Quality = cmd.Quality
	cfg.Bitrate = cmd.Bitrate
	cfg.VideoVolume = cmd.VideoVolume
	cfg.Headless = !cmd.NoHeadless
	cfg.ChromePath = cmd.ChromePath
	cfg.CompatibleRenderingMode = cmd.CompatibleRenderingMode
	cfg.AllowUnsafeContext = cmd.AllowUnsafeContext
	cfg.NumBrowserMax = cmd.NumBrowserMax
	cfg.NumPageMax = cmd.NumPageMax
	cfg.Debug = cmd.Debug
	cfg.DebugDir = cmd.DebugDir
	cfg.LogLevel = cmd.LogLevel

	return cfg
}

func (cmd *CleanCmd) Run() error {
	for _, sub := range []string{"browser", "preprocessor", "synthesizer", "local_font"} {
		if err := os.RemoveAll(cmd.TmpDir + "/" + sub); err != nil {
			return fmt.Errorf("clean %s: %w", sub, err)
		}
	}
	return nil
}

func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("webvideocreator (Go) version %s", version))
	return nil
}
