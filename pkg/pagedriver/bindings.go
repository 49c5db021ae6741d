package pagedriver

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

//go:embed bindings.js.tmpl
var bindingsTemplate string

// bindingName is the single CDP binding every RPC call is multiplexed
// through (Runtime.addBinding only installs one function per name).
const bindingName = "__cdpHostCall"

var bindingsParsed = template.Must(template.New("bindings").Parse(bindingsTemplate))

type bindingsData struct {
	BindingName string
}

func bindingsScript() (string, error) {
	var buf bytes.Buffer
	if err := bindingsParsed.Execute(&buf, bindingsData{BindingName: bindingName}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// bindingCall is the payload the in-page wrapper sends through the single
// CDP binding, keyed by an id the host resolves back via __hostResolve.
type bindingCall struct {
	ID   int             `json:"id"`
	Fn   string          `json:"fn"`
	Args json.RawMessage `json:"args"`
}

// enableBinding installs the raw CDP binding and subscribes to
// Runtime.bindingCalled, dispatching each call to dispatchBinding and
// resolving/rejecting the page-side promise with the result.
func (p *Page) enableBinding() error {
	if err := chromedp.Run(p.ctx, runtime.AddBinding(bindingName)); err != nil {
		return fmt.Errorf("add binding: %w", err)
	}

	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		e, ok := ev.(*runtime.EventBindingCalled)
		if !ok || e.Name != bindingName {
			return
		}
		var call bindingCall
		if err := json.Unmarshal([]byte(e.Payload), &call); err != nil {
			if p.log != nil {
				p.log.Warn("Malformed binding call", "error", err)
			}
			return
		}
		go p.dispatchBinding(call)
	})
	return nil
}

// resolveBinding evaluates the page-side promise resolution/rejection for
// a dispatched binding call.
func (p *Page) resolveBinding(id int, value any, callErr error) {
	var expr string
	if callErr != nil {
		b, _ := json.Marshal(callErr.Error())
		expr = fmt.Sprintf("window.__hostReject(%d, %s)", id, string(b))
	} else {
		b, err := json.Marshal(value)
		if err != nil {
			b = []byte("null")
		}
		expr = fmt.Sprintf("window.__hostResolve(%d, %s)", id, string(b))
	}
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(expr, nil)); err != nil && p.log != nil {
		p.log.Warn("Failed to resolve host binding", "error", err)
	}
}

// dispatchBinding routes one RPC call from the exposed host function
// surface (spec §6) to its Go-side handler.
func (p *Page) dispatchBinding(call bindingCall) {
	ctx := context.Background()
	var (
		value any
		err   error
	)
	switch call.Fn {
	case "captureFrame":
		value, err = p.handleCaptureFrame(ctx)
	case "skipFrame":
		err = p.handleSkipFrame(ctx)
	case "screencastCompleted":
		err = p.handleScreencastCompleted(ctx)
	case "addAudio":
		err = p.handleAddAudio(call.Args)
	case "updateAudioEndTime":
		err = p.handleUpdateAudioEndTime(call.Args)
	case "seekCSSAnimations":
		err = p.handleSeekCSSAnimations(ctx, call.Args)
	case "seekTimeActions":
		err = p.handleSeekTimeActions(ctx, call.Args)
	case "throwError":
		err = p.handleThrowError(call.Args)
	default:
		err = fmt.Errorf("unknown host binding call: %s", call.Fn)
	}
	p.resolveBinding(call.ID, value, err)
}
