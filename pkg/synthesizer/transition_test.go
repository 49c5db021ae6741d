package synthesizer

import "testing"

func TestParseTransition(t *testing.T) {
	tr, err := ParseTransition("circlecrop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr != TransitionCircleCrop {
		t.Errorf("expected TransitionCircleCrop, got %v", tr)
	}

	if _, err := ParseTransition("not-a-real-transition"); err == nil {
		t.Error("expected config error for unknown transition")
	}
}
