package preprocessor

import "testing"

func TestIsWebM(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/a.webm":          true,
		"https://example.com/a.webm?x=1":      true,
		"https://example.com/a.mp4":           false,
		"https://example.com/a.WEBM#fragment": true,
	}
	for url, want := range cases {
		if got := isWebM(url); got != want {
			t.Errorf("isWebM(%q) = %v, want %v", url, got, want)
		}
	}
}

func TestExtOf(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a.webm":     ".webm",
		"https://example.com/a.mp4?x=1":  ".mp4",
		"https://example.com/noext":      ".bin",
	}
	for url, want := range cases {
		if got := extOf(url); got != want {
			t.Errorf("extOf(%q) = %q, want %q", url, got, want)
		}
	}
}
