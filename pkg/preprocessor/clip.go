package preprocessor

import "fmt"

// clipToFragmentedMP4 re-encodes [seekStart,seekEnd) of srcPath directly
// to an in-memory fragmented MP4 buffer (spec §4.6: "-movflags
// frag_keyframe+empty_moov ... so the decoder in the page starts at
// frame 0"). ffmpeg writes to stdout (pipe:1) instead of a temp file
// since the result never needs to touch disk.
func clipToFragmentedMP4(srcPath string, seekStartMs, seekEndMs float64) ([]byte, error) {
	args := []string{"-y"}
	if seekStartMs > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.3f", seekStartMs/1000))
	}
	args = append(args, "-i", srcPath)
	if seekEndMs > seekStartMs {
		args = append(args, "-t", fmt.Sprintf("%.3f", (seekEndMs-seekStartMs)/1000))
	}
	args = append(args,
		"-c", "copy",
		"-movflags", "frag_keyframe+empty_moov",
		"-f", "mp4",
		"pipe:1",
	)
	return runFFmpegCapture(args)
}
