package audiomixer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

func requireFFmpeg(t *testing.T) string {
	t.Helper()
	path, err := findFFmpeg()
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	return path
}

func generateTestVideo(t *testing.T, ffmpegPath, path string) {
	t.Helper()
	cmd := exec.Command(ffmpegPath, "-y", "-f", "lavfi", "-i", "color=c=blue:s=160x120:d=2",
		"-c:v", "libx264", "-pix_fmt", "yuv420p", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to generate test video: %v\n%s", err, out)
	}
}

func generateTestAudio(t *testing.T, ffmpegPath, path string) {
	t.Helper()
	cmd := exec.Command(ffmpegPath, "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=2",
		"-c:a", "libmp3lame", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to generate test audio: %v\n%s", err, out)
	}
}

func TestMixNoAudio(t *testing.T) {
	if testing.Short() {
		t.Skip("requires ffmpeg")
	}
	ffmpegPath := requireFFmpeg(t)

	dir := t.TempDir()
	videoPath := filepath.Join(dir, "in.mp4")
	outPath := filepath.Join(dir, "out.mp4")
	generateTestVideo(t, ffmpegPath, videoPath)

	mixer := New()
	path, err := mixer.Mix(context.Background(), videoPath, nil, Options{OutputPath: outPath})
	if err != nil {
		t.Fatalf("Mix failed: %v", err)
	}
	if path != outPath {
		t.Errorf("expected %s, got %s", outPath, path)
	}
	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestMixWithOneAudioTrack(t *testing.T) {
	if testing.Short() {
		t.Skip("requires ffmpeg")
	}
	ffmpegPath := requireFFmpeg(t)

	dir := t.TempDir()
	videoPath := filepath.Join(dir, "in.mp4")
	audioPath := filepath.Join(dir, "audio.mp3")
	outPath := filepath.Join(dir, "out.mp4")
	generateTestVideo(t, ffmpegPath, videoPath)
	generateTestAudio(t, ffmpegPath, audioPath)

	descs := []ports.AudioDescriptor{
		{Source: audioPath, StartTimeMs: 0, EndTimeMs: 2000, Volume: 100},
	}

	mixer := New()
	_, err := mixer.Mix(context.Background(), videoPath, descs, Options{
		OutputPath:      outPath,
		ClampDurationMs: 2000,
	})
	if err != nil {
		t.Fatalf("Mix failed: %v", err)
	}
	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestMixNoVideoPath(t *testing.T) {
	mixer := New()
	if _, err := mixer.Mix(context.Background(), "", nil, Options{}); err != ErrNoVideoPath {
		t.Errorf("expected ErrNoVideoPath, got %v", err)
	}
}

func TestClassifyMixerFailure(t *testing.T) {
	if err := classifyMixerFailure("Error while opening encoder for output stream #0:1", 1); err == nil {
		t.Error("expected classified error")
	}
	if err := classifyMixerFailure("unrelated", 1); err != nil {
		t.Error("expected nil for unclassified failure")
	}
}
