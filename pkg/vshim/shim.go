package vshim

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed shim.js.tmpl
var shimTemplate string

var parsed = template.Must(template.New("shim").Parse(shimTemplate))

// Script renders the virtual clock & API shim for the given config.
func Script(cfg Config) (string, error) {
	if cfg.ReservedPrefix == "" {
		cfg.ReservedPrefix = "____"
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("render vshim script: %w", err)
	}
	return buf.String(), nil
}
