// Package preprocessor implements C7, the host-side downloader and
// transcoder serving the page-originated /api/video_preprocess RPC
// (spec §4.6). It is grounded in the teacher's h264encoder/ffmpeg_common.go
// subprocess-invocation idiom, generalized from encode to demux/transcode.
package preprocessor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// Options configures a Preprocessor (mirrors config.Config's C7 fields).
type Options struct {
	TmpDir        string
	MaxDownloads  int
	MaxTranscodes int
	RetryFetchs   int
	RetryDelayMs  int
}

// Preprocessor implements ports.Preprocessor.
type Preprocessor struct {
	fs   ports.FileSystem
	log  ports.Logger
	dir  string
	down *downloader
	tsem *semaphore.Weighted
}

// New creates a Preprocessor rooted at opts.TmpDir/preprocessor.
func New(fs ports.FileSystem, log ports.Logger, opts Options) *Preprocessor {
	maxTranscodes := opts.MaxTranscodes
	if maxTranscodes < 1 {
		maxTranscodes = 1
	}
	return &Preprocessor{
		fs:   fs,
		log:  log.WithComponent("preprocessor"),
		dir:  filepath.Join(opts.TmpDir, "preprocessor"),
		down: newDownloader(fs, log.WithComponent("preprocessor"), opts.MaxDownloads, opts.RetryFetchs, opts.RetryDelayMs),
		tsem: semaphore.NewWeighted(int64(maxTranscodes)),
	}
}

// Process runs the full download/transcode/clip pipeline described in
// spec §4.6 for one VideoConfig.
func (p *Preprocessor) Process(ctx context.Context, cfg ports.VideoConfig) ([]byte, *ports.AudioDescriptor, error) {
	if cfg.Src == "" {
		return nil, nil, fmt.Errorf("%w: empty src", ErrResourceFetch)
	}

	if err := p.fs.MkdirAll(p.dir); err != nil {
		return nil, nil, err
	}

	mainPaths := newCachePaths(p.dir, cfg.Src, extOf(cfg.Src))
	if err := p.down.fetch(ctx, cfg.Src, mainPaths.original, cfg.IgnoreCache); err != nil {
		return nil, nil, err
	}

	bufferPath, hasAudioSource, err := p.prepareMain(ctx, cfg, mainPaths)
	if err != nil {
		return nil, nil, err
	}

	maskPath, err := p.prepareMask(ctx, cfg, mainPaths)
	if err != nil {
		return nil, nil, err
	}

	if maskPath != "" {
		if err := p.checkDecoderMatch(bufferPath, maskPath); err != nil {
			return nil, nil, err
		}
	}

	hasClip := cfg.SeekStartMs > 0 || cfg.SeekEndMs > cfg.SeekStartMs
	buffer, mask, err := p.readOrClip(bufferPath, maskPath, cfg, hasClip)
	if err != nil {
		return nil, nil, err
	}

	var audio *ports.AudioDescriptor
	if !cfg.Muted && hasAudioSource {
		audio, err = p.prepareAudio(ctx, cfg, mainPaths)
		if err != nil {
			return nil, nil, err
		}
	}

	packed, err := packPayload(buffer, mask, audio != nil, hasClip)
	if err != nil {
		return nil, nil, err
	}
	return packed, audio, nil
}

// prepareMain ensures mainPaths.transcoded (or .original, if already an
// MP4-compatible container) exists and returns the path to use for
// packing, plus whether the source is even worth probing for audio.
func (p *Preprocessor) prepareMain(ctx context.Context, cfg ports.VideoConfig, paths cachePaths) (string, bool, error) {
	if !isWebM(cfg.Src) {
		return paths.original, true, nil
	}

	if err := p.tsem.Acquire(ctx, 1); err != nil {
		return "", false, fmt.Errorf("pool starvation: %w", err)
	}
	defer p.tsem.Release(1)

	if exists, _ := p.fs.Exists(paths.transcoded); !exists || cfg.IgnoreCache {
		if err := transcodeToH264(paths.original, paths.transcoded); err != nil {
			return "", false, transcodeErrorf(cfg, "main transcode", err)
		}
	}
	return paths.transcoded, true, nil
}

// prepareMask resolves the mask track, either by downloading+transcoding
// an explicit MaskSrc, or by auto-extracting the alpha plane from the
// main WebM's ALPHA_MODE tag (spec §4.6). Returns "" if there is no mask.
func (p *Preprocessor) prepareMask(ctx context.Context, cfg ports.VideoConfig, mainPaths cachePaths) (string, error) {
	if cfg.MaskSrc != "" {
		maskPaths := newCachePaths(p.dir, cfg.MaskSrc, extOf(cfg.MaskSrc))
		if err := p.down.fetch(ctx, cfg.MaskSrc, maskPaths.original, cfg.IgnoreCache); err != nil {
			return "", err
		}
		if !isWebM(cfg.MaskSrc) {
			return maskPaths.original, nil
		}
		if err := p.tsem.Acquire(ctx, 1); err != nil {
			return "", fmt.Errorf("pool starvation: %w", err)
		}
		defer p.tsem.Release(1)
		if exists, _ := p.fs.Exists(maskPaths.transcoded); !exists || cfg.IgnoreCache {
			if err := transcodeToH264(maskPaths.original, maskPaths.transcoded); err != nil {
				return "", transcodeErrorf(cfg, "mask transcode", err)
			}
		}
		return maskPaths.transcoded, nil
	}

	if !isWebM(cfg.Src) {
		return "", nil
	}

	alpha, err := probeAlphaMode(mainPaths.original)
	if err != nil {
		// A missing alpha_mode tag already yields alpha=false. ffprobe not
		// found on PATH (ErrFFprobeNotFound itself) is treated as no alpha
		// channel; any other probe failure propagates.
		if err == ErrFFprobeNotFound {
			return "", nil
		}
		return "", err
	}
	if !alpha {
		return "", nil
	}

	if err := p.tsem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("pool starvation: %w", err)
	}
	defer p.tsem.Release(1)

	if exists, _ := p.fs.Exists(mainPaths.mask); !exists || cfg.IgnoreCache {
		if err := extractAlphaMask(mainPaths.original, mainPaths.mask); err != nil {
			return "", transcodeErrorf(cfg, "alpha extraction", err)
		}
	}
	return mainPaths.mask, nil
}

func (p *Preprocessor) checkDecoderMatch(bufferPath, maskPath string) error {
	main, err := probeVideoTrack(bufferPath)
	if err != nil {
		return fmt.Errorf("preprocessor: probe main track: %w", err)
	}
	mask, err := probeVideoTrack(maskPath)
	if err != nil {
		return fmt.Errorf("preprocessor: probe mask track: %w", err)
	}
	if !main.matchesForPacking(mask) {
		return fmt.Errorf("%w: main=%+v mask=%+v", ErrDecoderMismatch, main, mask)
	}
	return nil
}

func (p *Preprocessor) readOrClip(bufferPath, maskPath string, cfg ports.VideoConfig, hasClip bool) (buffer, mask []byte, err error) {
	if hasClip {
		buffer, err = clipToFragmentedMP4(bufferPath, cfg.SeekStartMs, cfg.SeekEndMs)
		if err != nil {
			return nil, nil, transcodeErrorf(cfg, "seek-clip", err)
		}
	} else {
		buffer, err = p.fs.ReadFile(bufferPath)
		if err != nil {
			return nil, nil, err
		}
	}

	if maskPath == "" {
		return buffer, nil, nil
	}

	if hasClip {
		mask, err = clipToFragmentedMP4(maskPath, cfg.SeekStartMs, cfg.SeekEndMs)
		if err != nil {
			return nil, nil, transcodeErrorf(cfg, "mask seek-clip", err)
		}
	} else {
		mask, err = p.fs.ReadFile(maskPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return buffer, mask, nil
}

func (p *Preprocessor) prepareAudio(ctx context.Context, cfg ports.VideoConfig, paths cachePaths) (*ports.AudioDescriptor, error) {
	hasAudio, err := probeHasAudio(paths.original)
	if err != nil || !hasAudio {
		return nil, nil
	}

	if err := p.tsem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("pool starvation: %w", err)
	}
	defer p.tsem.Release(1)

	if exists, _ := p.fs.Exists(paths.audio); !exists || cfg.IgnoreCache {
		if err := demuxAudioToMP3(paths.original, paths.audio); err != nil {
			return nil, transcodeErrorf(cfg, "audio demux", err)
		}
	}

	return &ports.AudioDescriptor{
		ID:                cfg.ID,
		Source:            paths.audio,
		StartTimeMs:       cfg.StartTimeMs,
		EndTimeMs:         cfg.EndTimeMs,
		DurationMs:        cfg.EndTimeMs - cfg.StartTimeMs,
		Loop:              cfg.Loop,
		Volume:            cfg.Volume,
		SeekStartMs:       cfg.SeekStartMs,
		SeekEndMs:         cfg.SeekEndMs,
		FadeInDurationMs:  cfg.FadeInDurationMs,
		FadeOutDurationMs: cfg.FadeOutDurationMs,
	}, nil
}

func extOf(url string) string {
	path := url
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return ".bin"
	}
	return ext
}

var _ ports.Preprocessor = (*Preprocessor)(nil)
