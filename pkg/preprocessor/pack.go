package preprocessor

import (
	"encoding/json"
	"fmt"
)

// bufferRef is one JSON-referenced binary segment: ["buffer", start, end]
// (spec §6, "Preprocessor payload format").
type bufferRef [3]any

// packedDescriptor is the JSON header preceding the binary blobs. Field
// names match spec §4.6 exactly since the page's _unpack (adapter.js.tmpl)
// reads them verbatim.
type packedDescriptor struct {
	HasMask   bool      `json:"hasMask"`
	HasAudio  bool      `json:"hasAudio"`
	HasClip   bool      `json:"hasClip"`
	Buffer    bufferRef `json:"buffer"`
	MaskBuffer *bufferRef `json:"maskBuffer,omitempty"`
}

// packPayload assembles the "len!json+binary" envelope described in
// spec §6: an ASCII decimal length of the JSON header, a literal '!',
// the JSON itself, then the concatenated binary segments it references.
// This is the Go-side mirror of adapter.js.tmpl's VideoCanvasMedia._unpack.
func packPayload(buffer, mask []byte, hasAudio, hasClip bool) ([]byte, error) {
	desc := packedDescriptor{
		HasMask:  mask != nil,
		HasAudio: hasAudio,
		HasClip:  hasClip,
		Buffer:   bufferRef{"buffer", 0, len(buffer)},
	}

	binary := make([]byte, len(buffer))
	copy(binary, buffer)

	if mask != nil {
		start := len(binary)
		binary = append(binary, mask...)
		ref := bufferRef{"buffer", start, len(binary)}
		desc.MaskBuffer = &ref
	}

	header, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("preprocessor: marshal packed descriptor: %w", err)
	}

	out := make([]byte, 0, len(header)+32+len(binary))
	out = append(out, []byte(fmt.Sprintf("%d!", len(header)))...)
	out = append(out, header...)
	out = append(out, binary...)
	return out, nil
}

// unpackPayload is the Go-side inverse of packPayload, used only by
// tests to assert the round trip spec §8 requires ("packing then
// unpacking the preprocessor payload reconstructs the exact byte
// content of all buffers and the JSON descriptor").
func unpackPayload(payload []byte) (packedDescriptor, []byte, error) {
	bangIdx := -1
	for i, b := range payload {
		if b == '!' {
			bangIdx = i
			break
		}
	}
	if bangIdx < 0 {
		return packedDescriptor{}, nil, fmt.Errorf("preprocessor: malformed payload: no length separator")
	}

	var length int
	if _, err := fmt.Sscanf(string(payload[:bangIdx]), "%d", &length); err != nil {
		return packedDescriptor{}, nil, fmt.Errorf("preprocessor: malformed payload length: %w", err)
	}

	jsonStart := bangIdx + 1
	jsonEnd := jsonStart + length
	if jsonEnd > len(payload) {
		return packedDescriptor{}, nil, fmt.Errorf("preprocessor: malformed payload: header overruns buffer")
	}

	var desc packedDescriptor
	if err := json.Unmarshal(payload[jsonStart:jsonEnd], &desc); err != nil {
		return packedDescriptor{}, nil, fmt.Errorf("preprocessor: unmarshal packed descriptor: %w", err)
	}

	return desc, payload[jsonEnd:], nil
}
