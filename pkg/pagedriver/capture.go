package pagedriver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/animation"
	"github.com/chromedp/cdproto/headlessexperimental"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// Capture runs the capture loop to completion. The in-page loop (C3) was
// already started by Init/Goto (autostart:true); Capture blocks until the
// page calls screencastCompleted or a page-context/renderer-stall error
// occurs.
func (p *Page) Capture(ctx context.Context, sink ports.FrameSink) error {
	p.mu.Lock()
	p.sink = sink
	p.frameIndex = 0
	p.mu.Unlock()
	p.setState(ports.PageCapturing)

	done := make(chan error, 1)
	p.captureDone = done

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		p.Abort()
		return ctx.Err()
	}
}

func (p *Page) finishCapture(err error) {
	p.mu.Lock()
	done := p.captureDone
	p.captureDone = nil
	total := p.frameIndex
	p.mu.Unlock()

	if err == nil {
		p.setState(ports.PageStopped)
		if p.sink != nil {
			if sinkErr := p.sink.OnCompleted(total); sinkErr != nil {
				err = sinkErr
			}
		}
	} else {
		p.setState(ports.PageUnavailabled)
	}
	if done != nil {
		done <- err
	}
}

// handleCaptureFrame implements the two screenshot modes from spec §4.4.
// Normal mode races HeadlessExperimental.beginFrame against frameTimeout;
// compatible mode uses Page.captureScreenshot.
func (p *Page) handleCaptureFrame(ctx context.Context) (bool, error) {
	frameCtx, cancel := context.WithTimeout(ctx, p.frameTimeout)
	defer cancel()

	format := p.opts.ScreenshotFormat
	if format == "" {
		format = "jpeg"
	}

	var data []byte
	var err error
	resultCh := make(chan struct{}, 1)
	go func() {
		if p.compatibleMode {
			data, err = p.captureCompatible(format)
		} else {
			data, err = p.captureBeginFrame(format)
		}
		resultCh <- struct{}{}
	}()

	select {
	case <-resultCh:
	case <-frameCtx.Done():
		return false, fmt.Errorf("%w: frame %d", ErrRendererStall, p.frameIndex)
	}
	if err != nil {
		return false, fmt.Errorf("capture frame: %w", err)
	}

	p.mu.Lock()
	idx := p.frameIndex
	p.frameIndex++
	p.mu.Unlock()

	if p.sink != nil {
		if err := p.sink.OnFrame(ctx, idx, data); err != nil {
			return false, fmt.Errorf("frame sink: %w", err)
		}
	}
	return true, nil
}

func (p *Page) captureBeginFrame(format string) ([]byte, error) {
	var shot []byte
	err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		params := headlessexperimental.BeginFrame().
			WithScreenshot(&headlessexperimental.ScreenshotParams{
				Format:  headlessexperimental.ScreenshotParamsFormat(format),
				Quality: int64(p.opts.Quality),
			})
		_, data, err := params.Do(ctx)
		shot = data
		return err
	}))
	return shot, err
}

func (p *Page) captureCompatible(format string) ([]byte, error) {
	var shot []byte
	err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, err := page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormat(format)).
			WithQuality(int64(p.opts.Quality)).
			WithOptimizeForSpeed(true).
			Do(ctx)
		shot = data
		return err
	}))
	return shot, err
}

func (p *Page) handleSkipFrame(ctx context.Context) error {
	p.mu.Lock()
	p.frameIndex++
	p.mu.Unlock()
	return nil
}

func (p *Page) handleScreencastCompleted(ctx context.Context) error {
	go p.finishCapture(nil)
	return nil
}

func (p *Page) handleAddAudio(raw json.RawMessage) error {
	var args []ports.AudioDescriptor
	if err := json.Unmarshal(raw, &args); err != nil || len(args) == 0 {
		return fmt.Errorf("addAudio: malformed args: %w", err)
	}
	if p.sink == nil {
		return nil
	}
	return p.sink.OnAudio(args[0])
}

func (p *Page) handleUpdateAudioEndTime(raw json.RawMessage) error {
	var args []any
	if err := json.Unmarshal(raw, &args); err != nil || len(args) < 2 {
		return fmt.Errorf("updateAudioEndTime: malformed args: %w", err)
	}
	id, _ := args[0].(string)
	endTime, _ := args[1].(float64)
	if p.sink == nil {
		return nil
	}
	return p.sink.OnAudioEndTimeUpdated(id, endTime)
}

// handleSeekCSSAnimations implements the host-side CSS animation
// scheduling from spec §4.4: pin each animation's startTime on first
// observation, issue Animation.seekAnimations against the pinned offset,
// and drop animations whose window has elapsed.
func (p *Page) handleSeekCSSAnimations(ctx context.Context, raw json.RawMessage) error {
	var args []float64
	if err := json.Unmarshal(raw, &args); err != nil || len(args) == 0 {
		return fmt.Errorf("seekCSSAnimations: malformed args: %w", err)
	}
	t := args[0]

	p.mu.Lock()
	var toPause []string
	var toSeek []*cssAnimState
	for id, anim := range p.cssAnimations {
		if anim.pinnedAt < 0 {
			anim.pinnedAt = t
			toPause = append(toPause, id)
		}
		elapsed := anim.pinnedAt + anim.delay + anim.duration*anim.iterations
		if t >= elapsed {
			delete(p.cssAnimations, id)
			continue
		}
		toSeek = append(toSeek, anim)
	}
	p.mu.Unlock()

	for _, id := range toPause {
		if err := chromedp.Run(p.ctx, animation.SetPaused([]string{id}, true)); err != nil {
			return fmt.Errorf("pause animation %s: %w", id, err)
		}
	}
	for _, anim := range toSeek {
		offset := t - anim.pinnedAt
		if err := chromedp.Run(p.ctx, animation.SeekAnimations([]string{anim.id}, offset)); err != nil {
			return fmt.Errorf("seek animation %s: %w", anim.id, err)
		}
	}
	return nil
}

func (p *Page) handleSeekTimeActions(ctx context.Context, raw json.RawMessage) error {
	var args []float64
	if err := json.Unmarshal(raw, &args); err != nil || len(args) == 0 {
		return fmt.Errorf("seekTimeActions: malformed args: %w", err)
	}
	return p.runDueTimeActions(ctx, args[0])
}

func (p *Page) handleThrowError(raw json.RawMessage) error {
	var args []string
	if err := json.Unmarshal(raw, &args); err != nil || len(args) < 2 {
		return fmt.Errorf("throwError: malformed args: %w", err)
	}
	code, message := args[0], args[1]

	state := p.State()
	fatal := state == ports.PageCapturing
	if p.sink != nil {
		p.sink.OnPageError(code, message, fatal)
	}
	if fatal {
		go p.finishCapture(fmt.Errorf("%w: %s: %s", ErrPageContext, code, message))
	}
	return nil
}

// onAnimationStarted registers a Web Animation the moment CDP reports it,
// with startTime left unpinned (spec §4.4: "collects started animations
// with {..., startTime=null, ...}"). Pinning and pausing happen on first
// observation inside handleSeekCSSAnimations.
func (p *Page) onAnimationStarted(id string, delay, duration, iterations float64, backendNode int64) {
	p.mu.Lock()
	if _, exists := p.cssAnimations[id]; !exists {
		p.cssAnimations[id] = &cssAnimState{
			id:          id,
			pinnedAt:    -1,
			delay:       delay,
			duration:    duration,
			iterations:  iterations,
			backendNode: backendNode,
		}
	}
	p.mu.Unlock()
}
