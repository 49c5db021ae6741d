package ports

import "context"

// FontCache serves the GET /local_font/* route intercepted by the Page
// Driver (C4 §4.4). Installing fonts into the cache is out of scope; this
// interface only covers local lookup.
type FontCache interface {
	// Lookup returns the font bytes and content type for name, or ok=false
	// if absent (the caller responds 404).
	Lookup(ctx context.Context, name string) (data []byte, contentType string, ok bool, err error)
}
