package pagedriver

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/animation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/ideamans/go-webvideocreator/pkg/mediashim"
	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// enableInterception wires fetch.Enable with the two routes spec §4.4/§4.6
// intercept: POST /api/video_preprocess (driving C7) and GET
// /local_font/* (serving the local font cache).
func (p *Page) enableInterception() error {
	return chromedp.Run(p.ctx,
		fetch.Enable().WithPatterns([]*fetch.RequestPattern{
			{URLPattern: "*", RequestStage: fetch.RequestStageRequest},
		}),
	)
}

func (p *Page) subscribeEvents() {
	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *fetch.EventRequestPaused:
			go p.handleRequestPaused(e)
		case *animation.EventAnimationStarted:
			a := e.Animation
			var delay, duration, iterations float64
			var backendNode int64
			if a.Source != nil {
				delay = a.Source.Delay
				duration = a.Source.Duration
				iterations = a.Source.Iterations
				backendNode = int64(a.Source.BackendNodeID)
			}
			p.onAnimationStarted(a.ID, delay, duration, iterations, backendNode)
		case *page.EventDomContentEventFired:
			// A domcontentloaded event during CAPTURING means the target
			// refreshed unexpectedly (spec §4.4 lifecycle hooks).
			if p.State() == ports.PageCapturing {
				go p.finishCapture(fmt.Errorf("%w", ErrNavigationDuringCapture))
			}
		}
	})
}

func (p *Page) handleRequestPaused(e *fetch.EventRequestPaused) {
	url := e.Request.URL

	switch {
	case e.Request.Method == "POST" && strings.Contains(url, "/api/video_preprocess"):
		p.serveVideoPreprocess(e)
	case e.Request.Method == "GET" && strings.Contains(url, "/local_font/"):
		p.serveLocalFont(e)
	case e.ResourceType == network.ResourceTypeDocument && p.State().String() == "capturing":
		// Navigation requests while CAPTURING are aborted (spec §4.4):
		// user code cannot change the page mid-capture.
		chromedp.Run(p.ctx, fetch.FailRequest(e.RequestID, network.ErrorReasonAborted))
	default:
		chromedp.Run(p.ctx, fetch.ContinueRequest(e.RequestID))
	}
}

func (p *Page) serveVideoPreprocess(e *fetch.EventRequestPaused) {
	ctx := context.Background()
	var body []byte
	for _, entry := range e.Request.PostDataEntries {
		if decoded, err := base64.StdEncoding.DecodeString(entry.Bytes); err == nil {
			body = append(body, decoded...)
		}
	}
	if len(body) == 0 && e.Request.HasPostData && e.NetworkID != "" {
		if b, err := network.GetRequestPostData(e.NetworkID).Do(p.ctx); err == nil {
			body = []byte(b)
		}
	}

	cfg, err := mediashim.ParseVideoConfig(body)
	if err != nil {
		p.fulfill500(e.RequestID, err)
		return
	}
	if cfg.EndTimeMs <= 0 {
		cfg.EndTimeMs = p.opts.DurationMs
	}
	if p.preprocessor == nil {
		p.fulfill500(e.RequestID, fmt.Errorf("no preprocessor configured"))
		return
	}

	packed, audio, err := p.preprocessor.Process(ctx, cfg)
	if err != nil {
		p.fulfill500(e.RequestID, err)
		return
	}
	if audio != nil && p.sink != nil {
		p.sink.OnAudio(*audio)
	}

	chromedp.Run(p.ctx, fetch.FulfillRequest(e.RequestID, 200).
		WithResponseHeaders([]*fetch.HeaderEntry{
			{Name: "Content-Type", Value: "application/octet-stream"},
		}).
		WithBody(base64.StdEncoding.EncodeToString(packed)))
}

func (p *Page) fulfill500(id fetch.RequestID, err error) {
	body := base64.StdEncoding.EncodeToString([]byte(err.Error()))
	chromedp.Run(p.ctx, fetch.FulfillRequest(id, 500).
		WithResponseHeaders([]*fetch.HeaderEntry{
			{Name: "Content-Type", Value: "text/plain"},
		}).
		WithBody(body))
}

func (p *Page) serveLocalFont(e *fetch.EventRequestPaused) {
	name := e.Request.URL
	if idx := strings.Index(name, "/local_font/"); idx >= 0 {
		name = name[idx+len("/local_font/"):]
	}

	if p.fontCache == nil {
		chromedp.Run(p.ctx, fetch.FulfillRequest(e.RequestID, 404))
		return
	}

	data, contentType, ok, err := p.fontCache.Lookup(context.Background(), name)
	if err != nil || !ok {
		chromedp.Run(p.ctx, fetch.FulfillRequest(e.RequestID, 404))
		return
	}

	chromedp.Run(p.ctx, fetch.FulfillRequest(e.RequestID, 200).
		WithResponseHeaders([]*fetch.HeaderEntry{
			{Name: "Content-Type", Value: contentType},
			{Name: "Cache-Control", Value: "max-age=31536000"},
		}).
		WithBody(base64.StdEncoding.EncodeToString(data)))
}
