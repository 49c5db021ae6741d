package capturectx

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/ideamans/go-webvideocreator/pkg/mediashim"
	"github.com/ideamans/go-webvideocreator/pkg/vshim"
)

//go:embed loop.js.tmpl
var loopTemplate string

var parsed = template.Must(template.New("loop").Parse(loopTemplate))

type templateData struct {
	Config
	ResolvedFrameCount int
}

// Script concatenates the C1 shim, the C2 adapter, and the C3 capture
// loop into the single document-start script injected by the page driver,
// in document-start order (shim -> adapter -> capture loop).
func Script(cfg Config) (string, error) {
	shim, err := vshim.Script(vshim.Config{
		FPS:                cfg.FPS,
		DisableDateEpsilon: cfg.DisableDateEpsilon,
	})
	if err != nil {
		return "", fmt.Errorf("render vshim: %w", err)
	}

	var buf bytes.Buffer
	data := templateData{Config: cfg, ResolvedFrameCount: cfg.ResolvedFrameCount()}
	if err := parsed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render capture loop: %w", err)
	}

	return shim + "\n" + mediashim.Script() + "\n" + buf.String(), nil
}
