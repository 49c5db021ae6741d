package preprocessor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// mimeWhitelist matches spec §4.6: a HEAD request's Content-Type must
// start with one of these prefixes, or exactly equal one of these values,
// for the download to proceed.
var mimeWhitelist = []string{"video/", "application/octet-stream"}

// downloader fetches and caches source media, collapsing concurrent
// requests for the same URL behind a per-key lock and bounding overall
// concurrency with a weighted semaphore (spec §4.6/§5, default 10).
type downloader struct {
	fs         ports.FileSystem
	log        ports.Logger
	httpClient *http.Client
	sem        *semaphore.Weighted
	keyLocks   sync.Map // url -> *sync.Mutex

	retryFetchs  int
	retryDelayMs int
}

func newDownloader(fs ports.FileSystem, log ports.Logger, maxDownloads, retryFetchs, retryDelayMs int) *downloader {
	if maxDownloads < 1 {
		maxDownloads = 1
	}
	return &downloader{
		fs:           fs,
		log:          log,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		sem:          semaphore.NewWeighted(int64(maxDownloads)),
		retryFetchs:  retryFetchs,
		retryDelayMs: retryDelayMs,
	}
}

func (d *downloader) lockFor(url string) *sync.Mutex {
	lock, _ := d.keyLocks.LoadOrStore(url, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// fetch downloads url to destPath unless it already exists there (cache
// hit) and ignoreCache is false. Concurrent callers for the same url
// collapse onto one download via a per-URL mutex held for the fetch's
// full duration.
func (d *downloader) fetch(ctx context.Context, url, destPath string, ignoreCache bool) error {
	lock := d.lockFor(url)
	lock.Lock()
	defer lock.Unlock()

	if !ignoreCache {
		if exists, err := d.fs.Exists(destPath); err == nil && exists {
			return nil
		}
	}

	if err := d.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("pool starvation: %w", err)
	}
	defer d.sem.Release(1)

	if err := d.checkMIME(ctx, url); err != nil {
		return err
	}

	var lastErr error
	attempts := d.retryFetchs
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			d.log.Warn("preprocessor.download.retry", "url", url, "attempt", attempt)
			select {
			case <-time.After(time.Duration(d.retryDelayMs) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = d.download(ctx, url, destPath); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrResourceFetch, url, lastErr)
}

func (d *downloader) checkMIME(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("%w: building HEAD request: %v", ErrResourceFetch, err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		// Some origins reject HEAD; the download then proceeds on the
		// GET alone, whose Content-Type is not checked.
		return nil
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		return nil
	}
	ct = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	for _, allowed := range mimeWhitelist {
		if strings.HasPrefix(ct, allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: disallowed content-type %q", ErrResourceFetch, url, ct)
}

func (d *downloader) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if dir := filepath.Dir(destPath); dir != "" && dir != "." {
		if err := d.fs.MkdirAll(dir); err != nil {
			return err
		}
	}

	tmp := destPath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	out.Close()
	return os.Rename(tmp, destPath)
}
