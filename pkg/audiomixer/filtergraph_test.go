package audiomixer

import (
	"strings"
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

func TestBuildFilterComplexSingleTrack(t *testing.T) {
	descs := []ports.AudioDescriptor{
		{
			Source:      "a.mp3",
			StartTimeMs: 1000,
			EndTimeMs:   5000,
			Volume:      80,
		},
	}

	filter, outLabel := buildFilterComplex(descs, 100)

	if outLabel != "[aout]" {
		t.Errorf("expected [aout], got %s", outLabel)
	}
	if !strings.Contains(filter, "[1:a]atrim=0:4.000") {
		t.Errorf("expected atrim segment, got %s", filter)
	}
	if !strings.Contains(filter, "adelay=1000|1000") {
		t.Errorf("expected adelay segment, got %s", filter)
	}
	if !strings.Contains(filter, "volume=0.8000") {
		t.Errorf("expected volume 0.8, got %s", filter)
	}
	if !strings.Contains(filter, "amix=inputs=1:normalize=0[aout]") {
		t.Errorf("expected amix tail, got %s", filter)
	}
}

func TestBuildFilterComplexLoopAndFades(t *testing.T) {
	descs := []ports.AudioDescriptor{
		{
			Source:           "loop.mp3",
			StartTimeMs:      0,
			EndTimeMs:        10000,
			Volume:           100,
			Loop:             true,
			FadeInDurationMs: 500,
			FadeOutDurationMs: 1000,
		},
	}

	filter, _ := buildFilterComplex(descs, 100)

	if !strings.Contains(filter, "aloop=-1:2e9") {
		t.Errorf("expected aloop segment, got %s", filter)
	}
	if !strings.Contains(filter, "afade=in:st=0.000:d=0.500") {
		t.Errorf("expected fade-in, got %s", filter)
	}
	if !strings.Contains(filter, "afade=out:st=9.000:d=1.000") {
		t.Errorf("expected fade-out, got %s", filter)
	}
}

func TestBuildFilterComplexMultiTrack(t *testing.T) {
	descs := []ports.AudioDescriptor{
		{Source: "a.mp3", StartTimeMs: 0, EndTimeMs: 2000, Volume: 100},
		{Source: "b.mp3", StartTimeMs: 1000, EndTimeMs: 3000, Volume: 50},
	}

	filter, _ := buildFilterComplex(descs, 100)

	if !strings.Contains(filter, "[2:a]atrim=0:2.000") {
		t.Errorf("expected second track to reference input 2, got %s", filter)
	}
	if !strings.Contains(filter, "[a_0][a_1]amix=inputs=2:normalize=0[aout]") {
		t.Errorf("expected two-input amix, got %s", filter)
	}
}

func TestBuildFilterComplexEmpty(t *testing.T) {
	filter, outLabel := buildFilterComplex(nil, 100)
	if filter != "" || outLabel != "" {
		t.Errorf("expected empty filter/label for no descriptors, got %q/%q", filter, outLabel)
	}
}
