package logger

import "github.com/ideamans/go-webvideocreator/pkg/ports"

// Noop discards every message; useful in unit tests that don't want
// console output.
type Noop struct {
	component string
}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Debug(msg string, args ...interface{}) {}
func (n *Noop) Info(msg string, args ...interface{})  {}
func (n *Noop) Warn(msg string, args ...interface{})  {}
func (n *Noop) Error(msg string, args ...interface{}) {}

func (n *Noop) WithComponent(component string) ports.Logger {
	return &Noop{component: component}
}

var _ ports.Logger = (*Noop)(nil)
