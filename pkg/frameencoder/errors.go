package frameencoder

import (
	"errors"
	"strings"
)

// ErrNotInitialized mirrors h264encoder.ErrNotInitialized: a method was
// called before Begin or after End/Abort.
var ErrNotInitialized = errors.New("frameencoder: encoder not initialized")

// ErrFFmpegNotFound mirrors h264encoder.ErrFFmpegNotFound.
var ErrFFmpegNotFound = errors.New("frameencoder: ffmpeg not found in PATH")

// ErrEncoderFailure is the spec §7 "Encoder failure" kind.
var ErrEncoderFailure = errors.New("frameencoder: encoder failure")

// classifyEncoderFailure rewrites a raw ffmpeg failure per spec §7: a
// stderr match on "Error while opening encoder for output stream" or the
// well-known Windows hardware-abort exit code becomes a hardware-support
// hint instead of a bare subprocess error.
func classifyEncoderFailure(stderr string, exitCode int) error {
	if strings.Contains(stderr, "Error while opening encoder for output stream") || exitCode == 3221225477 {
		return errors.New("frameencoder: hardware encoder unavailable or codec unsupported " +
			"(check NVENC session limits or driver support); " + ErrEncoderFailure.Error())
	}
	return nil
}
