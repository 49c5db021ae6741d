// Package debugsink provides file-based and no-op ports.DebugSink implementations.
package debugsink

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// Sink saves debug output to files under baseDir.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file-based Sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{baseDir: baseDir, fs: fs}
}

func (s *Sink) Enabled() bool { return true }

func (s *Sink) SaveCaptureScript(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "capture_context.js"), data)
}

func (s *Sink) SaveRawFrame(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames", "raw")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.bin", index))
	return s.fs.WriteFile(path, data)
}

func (s *Sink) SavePreprocessPayload(key string, data []byte) error {
	dir := filepath.Join(s.baseDir, "preprocess")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, key+".payload")
	return s.fs.WriteFile(path, data)
}

func (s *Sink) SaveEncoderCommand(label string, argv []string) error {
	dir := filepath.Join(s.baseDir, "commands")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := json.MarshalIndent(argv, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, label+".json")
	return s.fs.WriteFile(path, data)
}

var _ ports.DebugSink = (*Sink)(nil)

// Null is a no-op implementation of ports.DebugSink.
type Null struct{}

// NewNull creates a new no-op Sink.
func NewNull() *Null { return &Null{} }

func (s *Null) Enabled() bool                                      { return false }
func (s *Null) SaveCaptureScript(data []byte) error                { return nil }
func (s *Null) SaveRawFrame(index int, data []byte) error          { return nil }
func (s *Null) SavePreprocessPayload(key string, data []byte) error { return nil }
func (s *Null) SaveEncoderCommand(label string, argv []string) error { return nil }

var _ ports.DebugSink = (*Null)(nil)
