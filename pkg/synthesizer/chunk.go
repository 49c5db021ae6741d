package synthesizer

import (
	"fmt"
	"strings"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// ChunkTransition is the transition applied at the boundary between this
// chunk and the one before it (spec §4.9: "if any chunk has a
// transition, use a per-boundary Xfade filter graph").
type ChunkTransition struct {
	Transition Transition
	DurationMs float64
}

// Chunk is one ordered segment of the final video, grounded in the
// Chunk/Validate shape of the AsmirZukic-go_encoder models.Chunk
// reference file (SourcePath/StartTime/EndTime -> OutputPath/DurationMs
// here, adapted to the mpegts-intermediate-per-chunk shape spec §4.9
// describes rather than a pre-split source media segment).
type Chunk struct {
	ChunkID          uint
	Width, Height    int
	FPS              float64
	DurationMs       float64
	FrameCount       int
	OutputPath       string // mpegts intermediate, already encoded by C8
	TransitionIn     *ChunkTransition
	AudioDescriptors []ports.AudioDescriptor
}

// NewChunk creates a validated Chunk.
func NewChunk(id uint, width, height int, fps, durationMs float64, outputPath string) (*Chunk, error) {
	c := &Chunk{
		ChunkID:    id,
		Width:      width,
		Height:     height,
		FPS:        fps,
		DurationMs: durationMs,
		OutputPath: outputPath,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk: %w", err)
	}
	return c, nil
}

// Validate checks the chunk's own invariants; consistency across chunks
// (matching width/height/fps) is checked by Synthesizer.AddChunk.
func (c *Chunk) Validate() error {
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty")
	}
	if c.DurationMs <= 0 {
		return fmt.Errorf("duration_ms must be greater than 0")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive")
	}
	if c.TransitionIn != nil {
		if c.TransitionIn.DurationMs <= 0 {
			return fmt.Errorf("transition duration_ms must be greater than 0")
		}
		if c.TransitionIn.DurationMs >= c.DurationMs {
			return fmt.Errorf("transition duration_ms must be less than chunk duration_ms")
		}
	}
	return nil
}

// EffectiveDurationMs is the chunk's contribution to the spliced
// timeline: its own duration minus the transition it shares with the
// previous chunk (spec §4.9: "effective = duration - transition.duration").
func (c *Chunk) EffectiveDurationMs() float64 {
	if c.TransitionIn == nil {
		return c.DurationMs
	}
	return c.DurationMs - c.TransitionIn.DurationMs
}
