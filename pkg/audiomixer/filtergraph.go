package audiomixer

import (
	"fmt"
	"strings"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// buildFilterComplex implements spec §4.8's per-descriptor audio chain
// plus the final amix. inputIndex(i) is assumed to be i+1 (input 0 is
// reserved for the video-only intermediate). Returns the filter_complex
// string and the amix output label to -map.
func buildFilterComplex(descs []ports.AudioDescriptor, videoVolume int) (string, string) {
	if videoVolume <= 0 {
		videoVolume = 100
	}

	var parts []string
	var labels []string

	for i, d := range descs {
		input := i + 1
		label := fmt.Sprintf("a_%d", i)

		trimEndSec := (d.EndTimeMs - d.StartTimeMs) / 1000.0
		chain := fmt.Sprintf("[%d:a]atrim=0:%s", input, formatSeconds(trimEndSec))

		if d.Loop {
			chain += ",aloop=-1:2e9"
		}

		chain += fmt.Sprintf(",adelay=%d|%d", int(d.StartTimeMs), int(d.StartTimeMs))

		volume := float64(d.Volume) * float64(videoVolume) / 10000.0
		chain += fmt.Sprintf(",volume=%s", formatVolume(volume))

		if d.FadeInDurationMs > 0 {
			chain += fmt.Sprintf(",afade=in:st=%s:d=%s",
				formatSeconds(d.StartTimeMs/1000.0), formatSeconds(d.FadeInDurationMs/1000.0))
		}
		if d.FadeOutDurationMs > 0 {
			loopEndSec := d.EndTimeMs / 1000.0
			fadeOutStart := loopEndSec - d.FadeOutDurationMs/1000.0
			chain += fmt.Sprintf(",afade=out:st=%s:d=%s",
				formatSeconds(fadeOutStart), formatSeconds(d.FadeOutDurationMs/1000.0))
		}

		chain += fmt.Sprintf("[%s]", label)
		parts = append(parts, chain)
		labels = append(labels, fmt.Sprintf("[%s]", label))
	}

	if len(parts) == 0 {
		return "", ""
	}

	mix := fmt.Sprintf("%samix=inputs=%d:normalize=0[aout]", strings.Join(labels, ""), len(descs))
	parts = append(parts, mix)

	return strings.Join(parts, ";"), "[aout]"
}

func formatSeconds(v float64) string {
	if v < 0 {
		v = 0
	}
	return fmt.Sprintf("%.3f", v)
}

func formatVolume(v float64) string {
	if v < 0 {
		v = 0
	}
	return fmt.Sprintf("%.4f", v)
}
