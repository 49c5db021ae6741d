package fontcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/mocks"
)

func TestLookupFound(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile(filepath.Join("/fonts", "NotoSans.woff2"), []byte("font-bytes"))

	c := New("/fonts", fs)
	data, ct, ok, err := c.Lookup(context.Background(), "NotoSans.woff2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected font to be found")
	}
	if string(data) != "font-bytes" {
		t.Errorf("unexpected data: %s", data)
	}
	if ct != "font/woff2" && ct == "" {
		t.Errorf("expected a content type to be resolved, got %q", ct)
	}
}

func TestLookupMissing(t *testing.T) {
	fs := mocks.NewFileSystem()
	c := New("/fonts", fs)
	_, _, ok, err := c.Lookup(context.Background(), "missing.woff2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Errorf("expected missing font to report ok=false")
	}
}
