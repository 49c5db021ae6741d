package mocks

import (
	"context"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc func(ctx context.Context, opts ports.EncodeOptions) error
	EndFunc   func(ctx context.Context) (string, error)

	BeginCalled bool
	Frames      [][]byte
	EndCalled   bool
	Aborted     bool
}

func (m *VideoEncoder) Begin(ctx context.Context, opts ports.EncodeOptions) error {
	m.BeginCalled = true
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, opts)
	}
	return nil
}

func (m *VideoEncoder) WriteFrame(ctx context.Context, data []byte) error {
	m.Frames = append(m.Frames, data)
	return nil
}

func (m *VideoEncoder) Flush(ctx context.Context) error { return nil }

func (m *VideoEncoder) End(ctx context.Context) (string, error) {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc(ctx)
	}
	return "", nil
}

func (m *VideoEncoder) Abort(ctx context.Context) error {
	m.Aborted = true
	return nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
