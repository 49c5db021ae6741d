package preprocessor

import (
	"fmt"
	"hash/crc32"
	"path/filepath"
)

// cacheKey is CRC32(url) as a zero-padded hex string, matching spec §6's
// persisted state layout: tmp/preprocessor/<crc32(url)>[.ext].
func cacheKey(url string) string {
	sum := crc32.ChecksumIEEE([]byte(url))
	return fmt.Sprintf("%08x", sum)
}

// cachePaths derives every on-disk path a given source URL may occupy
// under the preprocessor tmp directory.
type cachePaths struct {
	dir         string
	key         string
	original    string // <key>.<ext from src>, the raw download
	transcoded  string // <key>_transcoded.mp4
	mask        string // <key>_mask.mp4
	audio       string // <key>.mp3
}

func newCachePaths(baseDir, url, ext string) cachePaths {
	key := cacheKey(url)
	return cachePaths{
		dir:        baseDir,
		key:        key,
		original:   filepath.Join(baseDir, key+ext),
		transcoded: filepath.Join(baseDir, key+"_transcoded.mp4"),
		mask:       filepath.Join(baseDir, key+"_mask.mp4"),
		audio:      filepath.Join(baseDir, key+".mp3"),
	}
}
