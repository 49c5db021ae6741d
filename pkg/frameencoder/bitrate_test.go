package frameencoder

import "testing"

func TestDeriveBitrateKbps(t *testing.T) {
	// 1280x720 at quality 100 should land on the 2560kbps reference point.
	got := deriveBitrateKbps(1280, 720, 100)
	if got != 2560 {
		t.Errorf("expected 2560, got %d", got)
	}

	// Half the pixels at the same quality should roughly halve the bitrate.
	got = deriveBitrateKbps(1280, 360, 100)
	if got != 1280 {
		t.Errorf("expected 1280, got %d", got)
	}

	// Half the quality should roughly halve the bitrate too.
	got = deriveBitrateKbps(1280, 720, 50)
	if got != 1280 {
		t.Errorf("expected 1280, got %d", got)
	}
}
