package audiomixer

import (
	"errors"
	"strings"
)

// ErrNoVideoPath is returned when Mix is asked to run without an input
// video-only intermediate.
var ErrNoVideoPath = errors.New("audiomixer: no video path given")

// ErrEncoderFailure is the spec §7 "Encoder failure" kind, mirroring
// frameencoder.ErrEncoderFailure for C9's own ffmpeg subprocess.
var ErrEncoderFailure = errors.New("audiomixer: encoder failure")

// classifyMixerFailure applies the same rewrite rule as
// frameencoder.classifyEncoderFailure: certain stderr substrings or exit
// codes indicate a hardware/codec support problem rather than a generic
// subprocess failure.
func classifyMixerFailure(stderr string, exitCode int) error {
	if strings.Contains(stderr, "Error while opening encoder for output stream") || exitCode == 3221225477 {
		return errors.New("audiomixer: hardware encoder unavailable or codec unsupported; " + ErrEncoderFailure.Error())
	}
	return nil
}
