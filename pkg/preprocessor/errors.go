package preprocessor

import "errors"

// ErrFFmpegNotFound mirrors h264encoder.ErrFFmpegNotFound: ffmpeg (or
// ffprobe) could not be located on PATH or at a configured path.
var ErrFFmpegNotFound = errors.New("preprocessor: ffmpeg not found in PATH")

// ErrFFprobeNotFound is ErrFFmpegNotFound's counterpart for ffprobe.
var ErrFFprobeNotFound = errors.New("preprocessor: ffprobe not found in PATH")

// ErrResourceFetch is the spec §7 "resource fetch" error kind: the source
// (or mask) URL could not be downloaded after exhausting retries, or its
// MIME type failed the HEAD whitelist check.
var ErrResourceFetch = errors.New("preprocessor: resource fetch failed")

// ErrDecoderMismatch is the spec §7 "decoder mismatch" error kind: the
// main and mask tracks disagree on codedWidth, codedHeight, frameCount,
// or fps, which would be fatal in the page's decoder pipeline (spec §4.2).
// Checked host-side before packing so a bad pair never reaches the page.
var ErrDecoderMismatch = errors.New("preprocessor: main/mask decoder config mismatch")

// ErrTranscodeFailed wraps a non-zero ffmpeg exit during transcode, alpha
// extraction, audio demux, or seek-clip.
var ErrTranscodeFailed = errors.New("preprocessor: transcode failed")
