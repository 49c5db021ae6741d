// Package mediashim generates the in-page media adapter script (C2): it
// converts matching DOM elements into canvas-backed decoded media and
// drives their per-frame seek.
package mediashim

// VariantKind is the closed dispatch-media variant set (spec §3/§4.2).
type VariantKind string

const (
	VariantSvgAnimation VariantKind = "SvgAnimation"
	VariantVideoCanvas  VariantKind = "VideoCanvas"
	VariantDynamicImage VariantKind = "DynamicImage"
	VariantLottieCanvas VariantKind = "LottieCanvas"
	VariantInnerAudio   VariantKind = "InnerAudio"
)

// Descriptor mirrors one dispatch media's host-visible identity, kept for
// logging/debugging. The page's addAudio payload is decoded as
// ports.AudioDescriptor, not as this type.
type Descriptor struct {
	ID          string
	Kind        VariantKind
	StartTimeMs float64
	EndTimeMs   float64
	Loop        bool
	RetryFetchs int
}

// EligibleAt reports whether the descriptor's media is eligible for
// scheduling at virtual time t (spec §3: startTime ≤ t < endTime).
func (d Descriptor) EligibleAt(t float64) bool {
	return d.StartTimeMs <= t && t < d.EndTimeMs
}
