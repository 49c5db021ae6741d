package browserdriver

import (
	"testing"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

func TestDeterministicFlagsDropsBeginFrameInCompatibleMode(t *testing.T) {
	normal := deterministicFlags(ports.LaunchOptions{Headless: true})
	compatible := deterministicFlags(ports.LaunchOptions{Headless: true, CompatibleRenderingMode: true})

	if len(normal) <= len(compatible) {
		t.Errorf("expected normal mode to carry strictly more flags than compatible mode")
	}
}

func TestDeterministicFlagsHonorsGPUOption(t *testing.T) {
	withGPU := deterministicFlags(ports.LaunchOptions{GPU: true})
	withoutGPU := deterministicFlags(ports.LaunchOptions{GPU: false})

	if len(withGPU) == len(withoutGPU) {
		t.Errorf("expected GPU on/off to change the flag set")
	}
}

func TestBrowserClosedBeforeLaunch(t *testing.T) {
	b := New(nil)
	if b.Closed() {
		t.Errorf("a freshly constructed browser should not be closed")
	}
}
