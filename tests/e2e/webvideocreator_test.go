// Package e2e exercises the built webvideocreator CLI against a local
// HTML fixture. This package has no CGO dependencies so it can run
// against a pre-built binary.
package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
)

const fixtureHTML = `<!DOCTYPE html>
<html><head><style>
  body { margin: 0; background: #000; }
  #box {
    width: 100px; height: 100px; margin: 50px auto;
    background: red;
    animation: slide 2s linear infinite;
  }
  @keyframes slide {
    from { transform: translateX(-100px); }
    to { transform: translateX(100px); }
  }
</style></head>
<body><div id="box"></div></body></html>`

func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "webvideocreator-test.exe"
	}
	return "webvideocreator-test"
}

func getBinaryPath() string {
	if path := os.Getenv("WVC_BINARY"); path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		return ".\\webvideocreator-test.exe"
	}
	return "./webvideocreator-test"
}

func shouldBuildBinary() bool {
	return os.Getenv("WVC_BINARY") == ""
}

func getProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}

func buildCLI(t *testing.T) {
	t.Helper()
	if !shouldBuildBinary() {
		return
	}
	buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/webvideocreator")
	buildCmd.Dir = getProjectRoot(t)
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\n%s", err, out)
	}
	t.Cleanup(func() {
		os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	})
}

// startFixtureServer serves fixtureHTML and returns its base URL.
func startFixtureServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, fixtureHTML)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// sanityCheckFixture drives the fixture page with an independent browser
// automation engine (Playwright) before trusting the CLI's own CDP stack
// to render it: if the fixture itself doesn't render the expected element,
// a failure downstream is the fixture's fault, not webvideocreator's.
func sanityCheckFixture(t *testing.T, url string) {
	t.Helper()

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("Playwright driver unavailable, skipping fixture sanity check: %v", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Skipf("Playwright could not launch a browser: %v", err)
	}
	defer browser.Close()

	page, err := browser.NewPage()
	if err != nil {
		t.Fatalf("Playwright NewPage: %v", err)
	}

	if _, err := page.Goto(url); err != nil {
		t.Fatalf("Playwright goto %s: %v", url, err)
	}

	box := page.Locator("#box")
	count, err := box.Count()
	if err != nil {
		t.Fatalf("Playwright locator count: %v", err)
	}
	if count != 1 {
		t.Fatalf("fixture sanity check: expected exactly one #box element, got %d", count)
	}
}

// TestRecordFixture renders the CSS-animated fixture into an mp4 and
// checks the produced file is a well-formed, non-trivial MP4.
func TestRecordFixture(t *testing.T) {
	if os.Getenv("WVC_E2E") != "1" {
		t.Skip("Skipping E2E test (set WVC_E2E=1 to run)")
	}

	buildCLI(t)
	url := startFixtureServer(t)
	sanityCheckFixture(t, url)

	tmpFile, err := os.CreateTemp("", "webvideocreator-e2e-*.mp4")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx,
		getBinaryPath(),
		"render",
		"-o", tmpFile.Name(),
		"--duration-ms", "2000",
		"--fps", "24",
		"-W", "320", "-H", "240",
		url,
	)
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("render command failed: %v\n%s", err, out)
	}

	info, err := os.Stat(tmpFile.Name())
	if err != nil {
		t.Fatalf("output file not found: %v", err)
	}
	if info.Size() < 1024 {
		t.Errorf("output file too small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(data) < 8 || string(data[4:8]) != "ftyp" {
		t.Error("output is not a valid MP4 (missing ftyp box)")
	}

	t.Logf("fixture video created: %d bytes", info.Size())
}

// TestVersionCommand is a cheap smoke test that does not require a browser.
func TestVersionCommand(t *testing.T) {
	if os.Getenv("WVC_E2E") != "1" {
		t.Skip("Skipping E2E test (set WVC_E2E=1 to run)")
	}

	buildCLI(t)

	cmd := exec.Command(getBinaryPath(), "version")
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\n%s", err, out)
	}
}
