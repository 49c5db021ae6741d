package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// captureSink implements ports.FrameSink, bridging one page's capture
// loop to a C8 frame encoder and a collected list of audio descriptors
// destined for the active chunk (C10 re-tags their offsets later).
type captureSink struct {
	log     ports.Logger
	debug   ports.DebugSink
	encoder interface {
		WriteFrame(ctx context.Context, data []byte) error
	}

	mu         sync.Mutex
	audio      []ports.AudioDescriptor
	audioByID  map[string]int
	totalBytes int64
}

func newCaptureSink(log ports.Logger, debug ports.DebugSink, encoder interface {
	WriteFrame(ctx context.Context, data []byte) error
}) *captureSink {
	return &captureSink{
		log:       log,
		debug:     debug,
		encoder:   encoder,
		audioByID: make(map[string]int),
	}
}

func (s *captureSink) OnFrame(ctx context.Context, index int, data []byte) error {
	if s.debug != nil && s.debug.Enabled() {
		s.debug.SaveRawFrame(index, data)
	}
	s.mu.Lock()
	s.totalBytes += int64(len(data))
	s.mu.Unlock()

	if len(data) == 0 {
		return nil
	}
	return s.encoder.WriteFrame(ctx, data)
}

func (s *captureSink) OnAudio(desc ports.AudioDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioByID[desc.ID] = len(s.audio)
	s.audio = append(s.audio, desc)
	return nil
}

func (s *captureSink) OnAudioEndTimeUpdated(id string, endTimeMs float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.audioByID[id]
	if !ok {
		return fmt.Errorf("captureSink: updateAudioEndTime: unknown audio id %q", id)
	}
	s.audio[idx].EndTimeMs = endTimeMs
	return nil
}

func (s *captureSink) OnPageError(code, message string, fatal bool) {
	if s.log == nil {
		return
	}
	if fatal {
		s.log.Error("Page error (fatal): %s: %s", code, message)
	} else {
		s.log.Warn("Page error: %s: %s", code, message)
	}
}

func (s *captureSink) OnCompleted(totalFrames int) error {
	if s.log != nil {
		s.log.Debug("Capture completed: %d frames", totalFrames)
	}
	return nil
}

func (s *captureSink) audioDescriptors() []ports.AudioDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AudioDescriptor, len(s.audio))
	copy(out, s.audio)
	return out
}

var _ ports.FrameSink = (*captureSink)(nil)
