package preprocessor

import (
	"bytes"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	buffer := []byte("main-track-bytes")
	mask := []byte("mask-track-bytes")

	payload, err := packPayload(buffer, mask, true, false)
	if err != nil {
		t.Fatalf("packPayload: %v", err)
	}

	desc, binary, err := unpackPayload(payload)
	if err != nil {
		t.Fatalf("unpackPayload: %v", err)
	}

	if !desc.HasMask || !desc.HasAudio || desc.HasClip {
		t.Errorf("unexpected descriptor flags: %+v", desc)
	}
	if desc.MaskBuffer == nil {
		t.Fatalf("expected a maskBuffer reference")
	}

	bufStart, bufEnd := desc.Buffer[1].(float64), desc.Buffer[2].(float64)
	gotBuffer := binary[int(bufStart):int(bufEnd)]
	if !bytes.Equal(gotBuffer, buffer) {
		t.Errorf("main buffer round trip mismatch: got %q want %q", gotBuffer, buffer)
	}

	maskStart, maskEnd := (*desc.MaskBuffer)[1].(float64), (*desc.MaskBuffer)[2].(float64)
	gotMask := binary[int(maskStart):int(maskEnd)]
	if !bytes.Equal(gotMask, mask) {
		t.Errorf("mask buffer round trip mismatch: got %q want %q", gotMask, mask)
	}
}

func TestPackPayloadNoMask(t *testing.T) {
	buffer := []byte("solo-track")
	payload, err := packPayload(buffer, nil, false, false)
	if err != nil {
		t.Fatalf("packPayload: %v", err)
	}

	desc, binary, err := unpackPayload(payload)
	if err != nil {
		t.Fatalf("unpackPayload: %v", err)
	}
	if desc.HasMask || desc.MaskBuffer != nil {
		t.Errorf("expected no mask reference, got %+v", desc)
	}
	if !bytes.Equal(binary, buffer) {
		t.Errorf("expected binary section to equal the sole buffer")
	}
}
