// Package imageload downloads profile pictures.
package imageload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultRate     = 10
	defaultBurst    = 20
	defaultMaxBytes = 5 << 20
)

// Load errors.
var (
	ErrInvalidURL = errors.New("invalid image url")
	ErrTransport  = errors.New("image transport error")
)

// Config holds loader settings. Zero values select the defaults.
type Config struct {
	Timeout  time.Duration
	Rate     float64
	Burst    int
	MaxBytes int64
}

// Loader fetches image bytes over HTTP. There is no cache; every Load is a
// fresh request.
type Loader struct {
	http     *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// New creates an image loader.
func New(cfg Config) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Rate <= 0 {
		cfg.Rate = defaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}

	return &Loader{
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		maxBytes: cfg.MaxBytes,
	}
}

// Load downloads the image at rawURL and returns its bytes.
func (l *Loader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("load image: %w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("load image: %w: %q", ErrInvalidURL, rawURL)
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("load image: %w: %w", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("load image: %w: %w", ErrInvalidURL, err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load image: %w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load image: %w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	// read one byte past the cap so an oversized body is detectable
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("load image: %w: read body: %w", ErrTransport, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("load image: %w: body exceeds %d bytes", ErrTransport, l.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("load image: %w: empty body", ErrTransport)
	}

	return data, nil
}

// Decode decodes JPEG or PNG bytes.
func Decode(b []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
