package preprocessor

import "testing"

func TestMatchesForPacking(t *testing.T) {
	main := trackInfo{Codec: "h264", Width: 640, Height: 360, FrameCount: 90, FPS: 30}
	sameMask := trackInfo{Codec: "h264", Width: 640, Height: 360, FrameCount: 90, FPS: 30.02}
	if !main.matchesForPacking(sameMask) {
		t.Errorf("expected tracks within fps tolerance to match")
	}

	badWidth := trackInfo{Codec: "h264", Width: 320, Height: 360, FrameCount: 90, FPS: 30}
	if main.matchesForPacking(badWidth) {
		t.Errorf("expected width mismatch to fail matching")
	}

	badFrameCount := trackInfo{Codec: "h264", Width: 640, Height: 360, FrameCount: 89, FPS: 30}
	if main.matchesForPacking(badFrameCount) {
		t.Errorf("expected frame count mismatch to fail matching")
	}
}
