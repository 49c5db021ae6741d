// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for one render run, loaded from YAML
// and overridable from CLI flags (see cmd/webvideocreator).
type Config struct {
	// Input/Output
	URL        string `yaml:"url"`
	HTML       string `yaml:"html"`
	OutputPath string `yaml:"output"`
	Format     string `yaml:"format"` // "mp4" | "webm"

	// Capture (C1-C4)
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	DeviceScaleFactor float64 `yaml:"device_scale_factor"`
	FPS               int     `yaml:"fps"`
	DurationMs        float64 `yaml:"duration_ms"`
	StartTimeMs       float64 `yaml:"start_time_ms"`
	TimeoutMs         int     `yaml:"timeout_ms"`
	FrameTimeoutMs    int     `yaml:"frame_timeout_ms"`
	Headers           map[string]string `yaml:"headers"`
	UserAgent         string  `yaml:"user_agent"`
	AllowUnsafeContext bool   `yaml:"allow_unsafe_context"`
	CompatibleRenderingMode bool `yaml:"compatible_rendering_mode"`
	VideoDecoderHardwareAcceleration string `yaml:"video_decoder_hardware_acceleration"`
	DisableDateEpsilon bool `yaml:"disable_date_epsilon"`

	// Browser/pool (C5-C6)
	Headless       bool   `yaml:"headless"`
	ChromePath     string `yaml:"chrome_path"`
	GPU            bool   `yaml:"gpu"`
	NumBrowserMin  int    `yaml:"num_browser_min"`
	NumBrowserMax  int    `yaml:"num_browser_max"`
	NumPageMin     int    `yaml:"num_page_min"`
	NumPageMax     int    `yaml:"num_page_max"`

	// Preprocessor (C7)
	TmpDir             string `yaml:"tmp_dir"`
	MaxDownloads       int    `yaml:"max_downloads"`
	MaxTranscodes      int    `yaml:"max_transcodes"`
	RetryFetchs        int    `yaml:"retry_fetchs"`
	RetryDelayMs       int    `yaml:"retry_delay_ms"`

	// Encoding (C8)
	VideoCodec      string `yaml:"video_codec"`
	Quality         int    `yaml:"quality"`
	Bitrate         int    `yaml:"bitrate"`
	AttachCoverPath string `yaml:"attach_cover_path"`
	ParallelWriteFrames int `yaml:"parallel_write_frames"`

	// Audio (C9)
	AudioCodec  string `yaml:"audio_codec"`
	VideoVolume int    `yaml:"video_volume"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values (spec §4/§5/§6).
func Defaults() Config {
	return Config{
		Format: "mp4",

		Width:             1280,
		Height:            720,
		DeviceScaleFactor: 1.0,
		FPS:               30,
		TimeoutMs:         30000,
		FrameTimeoutMs:    5000,

		Headless: true,
		GPU:      true,

		NumBrowserMin: 1,
		NumBrowserMax: 2,
		NumPageMin:    1,
		NumPageMax:    2,

		TmpDir:        "./tmp",
		MaxDownloads:  10,
		MaxTranscodes: 10,
		RetryFetchs:   3,
		RetryDelayMs:  500,

		VideoCodec:          "libx264",
		Quality:             75,
		ParallelWriteFrames: 10,

		AudioCodec:  "aac",
		VideoVolume: 100,

		DebugDir: "./debug",
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file, starting from Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the config error kind from spec §7: fps and duration
// must be positive, width and height even, format mp4 or webm, and one of
// url or html set.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("config error: fps must be positive, got %d", c.FPS)
	}
	if c.DurationMs <= 0 {
		return fmt.Errorf("config error: duration_ms must be positive, got %f", c.DurationMs)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("config error: width/height must be even, got %dx%d", c.Width, c.Height)
	}
	if c.Format != "mp4" && c.Format != "webm" {
		return fmt.Errorf("config error: unknown format %q", c.Format)
	}
	if c.URL == "" && c.HTML == "" {
		return fmt.Errorf("config error: either url or html must be set")
	}
	return nil
}

// FrameCount derives the target frame count per spec §9's Open Question
// resolution: floor(duration_ms * fps / 1000), never a page-supplied value.
func (c Config) FrameCount() int {
	return int(c.DurationMs * float64(c.FPS) / 1000.0)
}
