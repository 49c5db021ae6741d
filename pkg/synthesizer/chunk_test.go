package synthesizer

import "testing"

func TestNewChunkValidation(t *testing.T) {
	if _, err := NewChunk(0, 1280, 720, 30, 1000, ""); err == nil {
		t.Error("expected error for empty output path")
	}
	if _, err := NewChunk(0, 1280, 720, 30, 0, "a.ts"); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := NewChunk(0, 0, 720, 30, 1000, "a.ts"); err == nil {
		t.Error("expected error for zero width")
	}

	c, err := NewChunk(0, 1280, 720, 30, 1000, "a.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EffectiveDurationMs() != 1000 {
		t.Errorf("expected effective duration 1000, got %v", c.EffectiveDurationMs())
	}
}

func TestChunkEffectiveDurationWithTransition(t *testing.T) {
	c, err := NewChunk(1, 1280, 720, 30, 1000, "b.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.TransitionIn = &ChunkTransition{Transition: TransitionFade, DurationMs: 300}

	if got := c.EffectiveDurationMs(); got != 700 {
		t.Errorf("expected effective duration 700, got %v", got)
	}
}

func TestChunkValidateRejectsOversizedTransition(t *testing.T) {
	c, err := NewChunk(1, 1280, 720, 30, 1000, "b.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.TransitionIn = &ChunkTransition{Transition: TransitionFade, DurationMs: 1000}

	if err := c.Validate(); err == nil {
		t.Error("expected error for transition duration >= chunk duration")
	}
}
