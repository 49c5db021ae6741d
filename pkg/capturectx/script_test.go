package capturectx

import (
	"strings"
	"testing"
)

func TestScriptOrderAndFrameCount(t *testing.T) {
	cfg := Config{FPS: 30, DurationMs: 1000, StartTimeMs: 0, Autostart: true}
	script, err := Script(cfg)
	if err != nil {
		t.Fatalf("Script: %v", err)
	}

	shimIdx := strings.Index(script, "PREFIX")
	adapterIdx := strings.Index(script, "__mediashim")
	loopIdx := strings.Index(script, "__captureCtx")
	if shimIdx == -1 || adapterIdx == -1 || loopIdx == -1 {
		t.Fatalf("expected shim, adapter, and loop all present")
	}
	if !(shimIdx < adapterIdx && adapterIdx < loopIdx) {
		t.Errorf("expected document-start order shim -> adapter -> loop, got %d %d %d", shimIdx, adapterIdx, loopIdx)
	}

	if !strings.Contains(script, "frameCount: 30") {
		t.Errorf("expected frameCount derived as floor(1000*30/1000)=30")
	}
}

func TestResolvedFrameCountExplicitOverride(t *testing.T) {
	cfg := Config{FPS: 25, DurationMs: 999, FrameCount: 10}
	if got := cfg.ResolvedFrameCount(); got != 10 {
		t.Errorf("expected explicit FrameCount to win, got %d", got)
	}
}

func TestResolvedFrameCountDerived(t *testing.T) {
	cfg := Config{FPS: 30, DurationMs: 333}
	if got := cfg.ResolvedFrameCount(); got != 9 {
		t.Errorf("floor(333*30/1000)=9, got %d", got)
	}
}
