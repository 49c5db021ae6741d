// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// BrowserDriver is a mock implementation of ports.BrowserDriver.
type BrowserDriver struct {
	LaunchFunc func(ctx context.Context, opts ports.LaunchOptions) error
	NewPageFunc func(ctx context.Context) (ports.Page, error)
	CloseFunc  func(ctx context.Context) error

	closed bool
}

func (m *BrowserDriver) Launch(ctx context.Context, opts ports.LaunchOptions) error {
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *BrowserDriver) NewPage(ctx context.Context) (ports.Page, error) {
	if m.NewPageFunc != nil {
		return m.NewPageFunc(ctx)
	}
	return &Page{}, nil
}

func (m *BrowserDriver) Close(ctx context.Context) error {
	m.closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

func (m *BrowserDriver) Closed() bool { return m.closed }

var _ ports.BrowserDriver = (*BrowserDriver)(nil)

// Page is a mock implementation of ports.Page.
type Page struct {
	InitFunc       func(ctx context.Context, opts ports.PageInitOptions) error
	GotoFunc       func(ctx context.Context, url string, opts ports.NavigateOptions) error
	SetContentFunc func(ctx context.Context, html string, opts ports.NavigateOptions) error
	CaptureFunc    func(ctx context.Context, sink ports.FrameSink) error
	CloseFunc      func(ctx context.Context) error

	state       ports.PageState
	timeActions map[float64]func(ctx context.Context, page ports.Page) error
}

func (m *Page) State() ports.PageState { return m.state }

func (m *Page) Init(ctx context.Context, opts ports.PageInitOptions) error {
	m.state = ports.PageReady
	if m.InitFunc != nil {
		return m.InitFunc(ctx, opts)
	}
	return nil
}

func (m *Page) Goto(ctx context.Context, url string, opts ports.NavigateOptions) error {
	if m.GotoFunc != nil {
		return m.GotoFunc(ctx, url, opts)
	}
	return nil
}

func (m *Page) SetContent(ctx context.Context, html string, opts ports.NavigateOptions) error {
	if m.SetContentFunc != nil {
		return m.SetContentFunc(ctx, html, opts)
	}
	return nil
}

func (m *Page) Capture(ctx context.Context, sink ports.FrameSink) error {
	m.state = ports.PageCapturing
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, sink)
	}
	return nil
}

func (m *Page) Abort() { m.state = ports.PageStopped }

func (m *Page) RegisterTimeAction(tMs float64, fn func(ctx context.Context, page ports.Page) error) {
	if m.timeActions == nil {
		m.timeActions = make(map[float64]func(ctx context.Context, page ports.Page) error)
	}
	m.timeActions[tMs] = fn
}

func (m *Page) Close(ctx context.Context) error {
	m.state = ports.PageClosed
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

var _ ports.Page = (*Page)(nil)
