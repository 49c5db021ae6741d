package preprocessor

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// trackInfo is the subset of an MP4 video track's properties that spec
// §4.2 requires the main and mask tracks to agree on before the page's
// decoder pipeline is handed both (codedWidth, codedHeight, frameCount,
// fps). Adapted from the teacher's codecdetect.DetectFromFile, which
// walks the same moov/trak structure to classify the codec fourcc;
// probeVideoTrack additionally pulls dimensions and sample counts.
type trackInfo struct {
	Codec       string
	Width       int
	Height      int
	FrameCount  int
	FPS         float64
}

// probeVideoTrack opens path and inspects its first video track. Used
// both to decide whether a download already carries an MP4-compatible
// codec (skipping a redundant transcode) and to validate a transcoded
// buffer/maskBuffer pair against each other (ErrDecoderMismatch).
func probeVideoTrack(path string) (trackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return trackInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return trackInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return trackInfo{}, fmt.Errorf("no moov box found")
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		info := trackInfo{Codec: "unknown"}
		if trak.Tkhd != nil {
			info.Width = int(trak.Tkhd.Width >> 16)
			info.Height = int(trak.Tkhd.Height >> 16)
		}

		var timescale uint32 = 1000
		if trak.Mdia.Mdhd != nil {
			timescale = trak.Mdia.Mdhd.Timescale
		}

		if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsd != nil {
			for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
				switch child.Type() {
				case "avc1", "avc3":
					info.Codec = "h264"
				case "hvc1", "hev1":
					info.Codec = "h265"
				case "av01":
					info.Codec = "av1"
				}
			}
			stbl := trak.Mdia.Minf.Stbl
			if stbl.Stsz != nil {
				info.FrameCount = int(stbl.Stsz.SampleNumber)
			}
			if stbl.Stts != nil && info.FrameCount > 0 {
				_, dur := stbl.Stts.GetDecodeTime(uint32(info.FrameCount))
				if dur > 0 {
					info.FPS = float64(timescale) / float64(dur)
				}
			}
		}
		return info, nil
	}

	return trackInfo{}, fmt.Errorf("no video track found")
}

// matchesForPacking reports whether two probed tracks agree on the
// fields spec §4.2 requires the page's main/mask decoder configs to
// share. A mismatch is fatal on the page side; catching it host-side
// before packing turns that fatal into a clean ErrDecoderMismatch.
func (a trackInfo) matchesForPacking(b trackInfo) bool {
	return a.Width == b.Width && a.Height == b.Height &&
		a.FrameCount == b.FrameCount && closeEnough(a.FPS, b.FPS)
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.05
}
