package ports

// DebugSink abstracts optional, best-effort debug output for intermediate
// artifacts. Grounded on the teacher's filesink adapter; widened from
// layout/banner-specific methods to the capture/preprocess/encode pipeline.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveCaptureScript saves the exact JS injected for a run.
	SaveCaptureScript(data []byte) error

	// SaveRawFrame saves one raw captured screenshot before it reaches C8.
	SaveRawFrame(index int, data []byte) error

	// SavePreprocessPayload saves a packed preprocessor RPC response.
	SavePreprocessPayload(key string, data []byte) error

	// SaveEncoderCommand saves the argv of a spawned ffmpeg invocation,
	// one per call, for reproducing a run outside the pipeline.
	SaveEncoderCommand(label string, argv []string) error
}
