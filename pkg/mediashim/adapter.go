package mediashim

import (
	_ "embed"
)

//go:embed adapter.js.tmpl
var adapterScript string

// Script returns the media adapter script. Unlike vshim's, the adapter
// currently takes no per-run parameters, so it is returned verbatim; the
// function exists so callers don't need to know that and capturectx can
// treat C1/C2 uniformly.
func Script() string {
	return adapterScript
}
