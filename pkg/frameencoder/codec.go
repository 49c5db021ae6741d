package frameencoder

import "fmt"

// VideoCodec is the closed vocabulary of spec §6: exactly the union of
// CPU, Intel QSV, AMD AMF, NVIDIA NVENC, OMX, V4L2, VAAPI, and
// VideoToolbox encoders ffmpeg may be asked to drive. A string outside
// this set is a Config error (spec §7) caught at construction instead of
// being passed through to ffmpeg as a silent, possibly-misspelled flag.
type VideoCodec string

const (
	CodecLibx264      VideoCodec = "libx264"
	CodecLibx265      VideoCodec = "libx265"
	CodecLibvpx       VideoCodec = "libvpx"
	CodecLibvpxVP9    VideoCodec = "libvpx-vp9"
	CodecH264QSV      VideoCodec = "h264_qsv"
	CodecHEVCQSV      VideoCodec = "hevc_qsv"
	CodecVP8QSV       VideoCodec = "vp8_qsv"
	CodecVP9QSV       VideoCodec = "vp9_qsv"
	CodecH264AMF      VideoCodec = "h264_amf"
	CodecH265AMF      VideoCodec = "h265_amf"
	CodecH264NVENC    VideoCodec = "h264_nvenc"
	CodecHEVCNVENC    VideoCodec = "hevc_nvenc"
	CodecH264OMX      VideoCodec = "h264_omx"
	CodecH264V4L2M2M  VideoCodec = "h264_v4l2m2m"
	CodecH264VAAPI        VideoCodec = "h264_vaapi"
	CodecHEVCVAAPI        VideoCodec = "hevc_vaapi"
	CodecVP8VAAPI         VideoCodec = "vp8_vaapi"
	CodecVP9VAAPI         VideoCodec = "vp9_vaapi"
	CodecH264VideoToolbox VideoCodec = "h264_videotoolbox"
	CodecHEVCVideoToolbox VideoCodec = "hevc_videotoolbox"
)

var validCodecs = map[VideoCodec]bool{
	CodecLibx264: true, CodecLibx265: true, CodecLibvpx: true, CodecLibvpxVP9: true,
	CodecH264QSV: true, CodecHEVCQSV: true, CodecVP8QSV: true, CodecVP9QSV: true,
	CodecH264AMF: true, CodecH265AMF: true,
	CodecH264NVENC: true, CodecHEVCNVENC: true,
	CodecH264OMX: true, CodecH264V4L2M2M: true,
	CodecH264VAAPI: true, CodecHEVCVAAPI: true, CodecVP8VAAPI: true, CodecVP9VAAPI: true,
	CodecH264VideoToolbox: true, CodecHEVCVideoToolbox: true,
}

// ParseVideoCodec validates s against the closed vocabulary.
func ParseVideoCodec(s string) (VideoCodec, error) {
	c := VideoCodec(s)
	if !validCodecs[c] {
		return "", fmt.Errorf("config error: unknown video codec %q", s)
	}
	return c, nil
}

// annexBFilter returns the bitstream filter chunk mode must apply
// before muxing into mpegts (spec §4.7).
func (c VideoCodec) annexBFilter() string {
	switch {
	case c.isHEVC():
		return "hevc_mp4toannexb"
	case c.isVP9():
		return "vp9_superframe"
	default:
		return "h264_mp4toannexb"
	}
}

func (c VideoCodec) isHEVC() bool {
	switch c {
	case CodecLibx265, CodecHEVCQSV, CodecH265AMF, CodecHEVCNVENC, CodecHEVCVAAPI, CodecHEVCVideoToolbox:
		return true
	}
	return false
}

func (c VideoCodec) isVP9() bool {
	return c == CodecLibvpxVP9 || c == CodecVP9QSV || c == CodecVP9VAAPI
}

// supportsProfilePreset reports whether -profile:v/-preset apply (only
// the libx264/libx265 software encoders; VP8/VP9 and the hardware
// variants use different knobs).
func (c VideoCodec) supportsProfilePreset() bool {
	switch c {
	case CodecLibx264, CodecLibx265:
		return true
	}
	return false
}
