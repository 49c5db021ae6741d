package mediashim

import "testing"

func TestParseVideoConfigKnownAndExtra(t *testing.T) {
	raw := []byte(`{
		"id": "v1", "src": "https://example.com/a.mp4",
		"startTimeMs": 1000, "endTimeMs": 6000,
		"volume": 50, "futureAttribute": "x", "nested": {"a": 1}
	}`)
	cfg, err := ParseVideoConfig(raw)
	if err != nil {
		t.Fatalf("ParseVideoConfig: %v", err)
	}
	if cfg.ID != "v1" || cfg.Src != "https://example.com/a.mp4" {
		t.Errorf("unexpected known fields: %+v", cfg)
	}
	if cfg.StartTimeMs != 1000 || cfg.EndTimeMs != 6000 || cfg.Volume != 50 {
		t.Errorf("unexpected numeric fields: %+v", cfg)
	}
	if _, ok := cfg.Extra["futureAttribute"]; !ok {
		t.Errorf("expected unknown attribute to land in Extra")
	}
	if _, ok := cfg.Extra["id"]; ok {
		t.Errorf("known field id leaked into Extra")
	}
}

func TestParseVideoConfigInvalidJSON(t *testing.T) {
	if _, err := ParseVideoConfig([]byte("")); err == nil {
		t.Errorf("expected error for empty body")
	}
}
