package vshim

import (
	"strings"
	"testing"
)

func TestScriptContainsReservedOriginals(t *testing.T) {
	cfg := DefaultConfig()
	script, err := Script(cfg)
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	for _, want := range []string{
		"____setTimeout",
		"____clearTimeout",
		"____requestAnimationFrame",
		"____performanceNow",
		"w.setTimeout = function",
		"w.Date = VirtualDate",
		"clock.dateEpsilon += 0.01",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestScriptDisableDateEpsilon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisableDateEpsilon = true
	script, err := Script(cfg)
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	if strings.Contains(script, "clock.dateEpsilon += 0.01") {
		t.Errorf("expected epsilon code to be stripped when disabled")
	}
}

func TestScriptCustomPrefix(t *testing.T) {
	cfg := Config{FPS: 24, ReservedPrefix: "__orig_"}
	script, err := Script(cfg)
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	if !strings.Contains(script, "__orig_setTimeout") {
		t.Errorf("expected custom prefix to be used")
	}
	if !strings.Contains(script, "1000 / 24") {
		t.Errorf("expected fps to be interpolated")
	}
}
