// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire turns command-line inputs into host files. An input is
// either a local path, read from disk, or an http(s) URL, downloaded into
// memory. Nothing is written to disk.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/reag/internal/httputil"
	"github.com/pdiddy/reag/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxBytes  = 50 << 20
	defaultUserAgent = "reag/0.1"
)

// BatchResult holds the outcome of AcquireAll.
type BatchResult struct {
	Files      []types.File
	Read       int
	Downloaded int
	Failed     int
	Errors     []error
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Read + r.Downloaded + r.Failed
}

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Acquirer reads and downloads inputs.
type Acquirer struct {
	client *http.Client
	cfg    types.AcquisitionConfig
	logger *zap.Logger
}

// New returns an Acquirer with cfg's zero fields set to defaults. A nil
// logger discards logs.
func New(cfg types.AcquisitionConfig, logger *zap.Logger) *Acquirer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// Acquire resolves one input to a File.
func (a *Acquirer) Acquire(ctx context.Context, input string) (types.File, error) {
	kind, s := Classify(input)
	switch kind {
	case TypePath:
		return a.read(s)
	case TypeURL:
		return a.download(ctx, s)
	default:
		return types.File{}, fmt.Errorf("unrecognized input %q", input)
	}
}

// AcquireAll resolves every input in order and continues after individual
// failures.
func (a *Acquirer) AcquireAll(ctx context.Context, inputs []string) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		f, err := a.Acquire(ctx, in)
		if err != nil {
			a.logger.Warn("input failed", zap.String("input", in), zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, err)
			continue
		}
		if kind, _ := Classify(in); kind == TypeURL {
			result.Downloaded++
		} else {
			result.Read++
		}
		result.Files = append(result.Files, f)
	}
	a.logger.Debug("inputs acquired",
		zap.Int("read", result.Read),
		zap.Int("downloaded", result.Downloaded),
		zap.Int("failed", result.Failed),
	)
	return result
}

func (a *Acquirer) read(p string) (types.File, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return types.File{}, fmt.Errorf("reading %s: %w", p, err)
	}
	return types.File{
		Blob:      data,
		Filename:  filepath.Base(p),
		Extension: filepath.Ext(p),
	}, nil
}

// download fetches rawURL into memory, retrying on 429 and 5xx gateway
// responses. The HTTP client follows redirects.
func (a *Acquirer) download(ctx context.Context, rawURL string) (types.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return types.File{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.client, req, a.cfg.MaxRetries)
	if err != nil {
		return types.File{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.File{}, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, a.cfg.MaxBytes+1))
	if err != nil {
		return types.File{}, fmt.Errorf("reading body from %s: %w", rawURL, err)
	}
	if int64(len(data)) > a.cfg.MaxBytes {
		return types.File{}, fmt.Errorf("download from %s exceeds %d bytes", rawURL, a.cfg.MaxBytes)
	}

	name, ext := filenameFor(resp.Request.URL.String(), resp.Header.Get("Content-Type"))
	a.logger.Debug("downloaded", zap.String("url", rawURL), zap.String("filename", name), zap.Int("bytes", len(data)))
	return types.File{Blob: data, Filename: name, Extension: ext}, nil
}
