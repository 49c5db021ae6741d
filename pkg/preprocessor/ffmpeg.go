package preprocessor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var customFFmpegPath, customFFprobePath string

// SetFFmpegPath overrides the ffmpeg binary lookup (tests and deployments
// that vendor a specific build).
func SetFFmpegPath(path string) { customFFmpegPath = path }

// SetFFprobePath overrides the ffprobe binary lookup.
func SetFFprobePath(path string) { customFFprobePath = path }

// findFFmpeg mirrors h264encoder.FindFFmpeg's search order: custom path,
// FFMPEG_PATH env, PATH, then common install locations.
func findFFmpeg() (string, error) {
	return findBinary("ffmpeg", customFFmpegPath, "FFMPEG_PATH", ErrFFmpegNotFound)
}

func findFFprobe() (string, error) {
	return findBinary("ffprobe", customFFprobePath, "FFPROBE_PATH", ErrFFprobeNotFound)
}

func findBinary(name, custom, envVar string, notFound error) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, custom)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", notFound, envVar, envPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{"/opt/homebrew/bin/" + name, "/usr/local/bin/" + name}
	} else {
		commonPaths = []string{"/usr/bin/" + name, "/usr/local/bin/" + name, "/snap/bin/" + name}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}

// runFFmpeg invokes ffmpeg with args, capturing stderr for error context
// (the teacher's FFmpegEncoder.End idiom of reporting stderr on failure).
func runFFmpeg(args []string) error {
	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v\nstderr: %s", ErrTranscodeFailed, err, stderr.String())
	}
	return nil
}

// runFFmpegCapture invokes ffmpeg and returns stdout (for -movflags
// frag_keyframe+empty_moov seek-clips written to pipe:1 instead of a file).
func runFFmpegCapture(args []string) ([]byte, error) {
	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v\nstderr: %s", ErrTranscodeFailed, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// runFFprobeJSON invokes ffprobe with args and returns stdout, in whatever
// output format the caller's -of argument selects.
func runFFprobeJSON(args []string) ([]byte, error) {
	ffprobePath, err := findFFprobe()
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(ffprobePath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
