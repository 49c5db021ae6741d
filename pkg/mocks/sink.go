package mocks

import (
	"sync"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Script           []byte
	RawFrames        map[int][]byte
	PreprocessPayloads map[string][]byte
	EncoderCommands  map[string][]string
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:            enabled,
		RawFrames:          make(map[int][]byte),
		PreprocessPayloads: make(map[string][]byte),
		EncoderCommands:    make(map[string][]string),
	}
}

func (m *DebugSink) Enabled() bool { return m.enabled }

func (m *DebugSink) SaveCaptureScript(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Script = data
	return nil
}

func (m *DebugSink) SaveRawFrame(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[index] = data
	return nil
}

func (m *DebugSink) SavePreprocessPayload(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PreprocessPayloads[key] = data
	return nil
}

func (m *DebugSink) SaveEncoderCommand(label string, argv []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EncoderCommands[label] = argv
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                  { return false }
func (m *NullSink) SaveCaptureScript(data []byte) error             { return nil }
func (m *NullSink) SaveRawFrame(index int, data []byte) error       { return nil }
func (m *NullSink) SavePreprocessPayload(key string, data []byte) error { return nil }
func (m *NullSink) SaveEncoderCommand(label string, argv []string) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
