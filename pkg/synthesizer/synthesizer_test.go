package synthesizer

import (
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

func mustChunk(t *testing.T, id uint, durationMs float64, outputPath string) *Chunk {
	t.Helper()
	c, err := NewChunk(id, 1280, 720, 30, durationMs, outputPath)
	if err != nil {
		t.Fatalf("NewChunk failed: %v", err)
	}
	return c
}

func TestAddChunkRejectsDimensionMismatch(t *testing.T) {
	s := New()
	if err := s.AddChunk(mustChunk(t, 0, 1000, "a.ts")); err != nil {
		t.Fatalf("AddChunk failed: %v", err)
	}

	mismatched, err := NewChunk(1, 640, 360, 30, 1000, "b.ts")
	if err != nil {
		t.Fatalf("NewChunk failed: %v", err)
	}
	if err := s.AddChunk(mismatched); err != ErrDimensionMismatch {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCumulativeOffsetNoTransitions(t *testing.T) {
	s := New()
	s.AddChunk(mustChunk(t, 0, 1000, "a.ts"))
	s.AddChunk(mustChunk(t, 1, 2000, "b.ts"))
	s.AddChunk(mustChunk(t, 2, 1500, "c.ts"))

	if got := s.CumulativeOffsetMs(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := s.CumulativeOffsetMs(1); got != 1000 {
		t.Errorf("expected 1000, got %v", got)
	}
	if got := s.CumulativeOffsetMs(2); got != 3000 {
		t.Errorf("expected 3000, got %v", got)
	}
	if got := s.TotalDurationMs(); got != 4500 {
		t.Errorf("expected 4500, got %v", got)
	}
}

func TestCumulativeOffsetWithTransition(t *testing.T) {
	s := New()
	s.AddChunk(mustChunk(t, 0, 1000, "a.ts"))

	b := mustChunk(t, 1, 1000, "b.ts")
	b.TransitionIn = &ChunkTransition{Transition: TransitionFade, DurationMs: 200}
	s.AddChunk(b)

	// chunk b's effective contribution is 1000-200=800, so chunk at
	// index 2 (if any) would start at 1000+800=1800.
	if got := s.CumulativeOffsetMs(1); got != 1000 {
		t.Errorf("expected 1000, got %v", got)
	}
	if got := s.TotalDurationMs(); got != 1800 {
		t.Errorf("expected 1800, got %v", got)
	}
}

func TestRetaggedAudioDescriptors(t *testing.T) {
	s := New()
	a := mustChunk(t, 0, 1000, "a.ts")
	a.AudioDescriptors = []ports.AudioDescriptor{
		{ID: "x", StartTimeMs: 0, EndTimeMs: 500},
	}
	s.AddChunk(a)

	b := mustChunk(t, 1, 2000, "b.ts")
	b.AudioDescriptors = []ports.AudioDescriptor{
		{ID: "y", StartTimeMs: 0, EndTimeMs: 300},
	}
	s.AddChunk(b)

	tagged := s.RetaggedAudioDescriptors()
	if len(tagged) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(tagged))
	}
	if tagged[0].StartTimeMs != 0 || tagged[0].EndTimeMs != 500 {
		t.Errorf("first chunk descriptor should be unshifted, got %+v", tagged[0])
	}
	if tagged[1].StartTimeMs != 1000 || tagged[1].EndTimeMs != 1300 {
		t.Errorf("second chunk descriptor should be shifted by 1000ms, got %+v", tagged[1])
	}
}

func TestProgressWeighting(t *testing.T) {
	if got := Progress(50, 100, 0); got != 0.475 {
		t.Errorf("expected 0.475, got %v", got)
	}
	if got := Progress(100, 100, 1); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
	if got := Progress(0, 0, 0); got != 0 {
		t.Errorf("expected 0 for zero total frames, got %v", got)
	}
}
