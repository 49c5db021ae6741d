// Package fontcache implements the local font lookup backing the Page
// Driver's GET /local_font/* interception route. Fetching or installing
// fonts is out of scope (spec §4.4/§6); this package only serves files
// already present under its base directory.
package fontcache

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// Cache serves font files from a directory on disk.
type Cache struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a Cache rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Cache {
	return &Cache{baseDir: baseDir, fs: fs}
}

// Lookup reads baseDir/name if it exists. name is the path segment
// following /local_font/ and must not escape baseDir.
func (c *Cache) Lookup(ctx context.Context, name string) ([]byte, string, bool, error) {
	clean := filepath.Clean("/" + name)[1:]
	path := filepath.Join(c.baseDir, clean)

	exists, err := c.fs.Exists(path)
	if err != nil {
		return nil, "", false, err
	}
	if !exists {
		return nil, "", false, nil
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, "", false, err
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return data, ct, true, nil
}

var _ ports.FontCache = (*Cache)(nil)
