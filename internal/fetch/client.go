// Package fetch retrieves pages of random user profiles from the
// randomuser.me API.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zarlcorp/zcrowd/internal/profile"
)

const (
	// DefaultBaseURL is the public randomuser.me endpoint.
	DefaultBaseURL = "https://randomuser.me/api"

	defaultTimeout = 20 * time.Second
	userAgent      = "zcrowd"
)

// Fetch errors. Each failure wraps exactly one of these.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrTransport      = errors.New("transport error")
	ErrEmptyResponse  = errors.New("empty response")
	ErrDecode         = errors.New("decode error")
)

// Config holds fetcher settings. Zero values select the defaults.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches profile pages. It never retries; that is up to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a profile fetcher.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch requests resultCount profiles and returns the decoded page. The page
// holds exactly resultCount profiles in API order, or an error is returned.
func (c *Client) Fetch(ctx context.Context, resultCount int) (profile.Page, error) {
	req, err := c.newRequest(ctx, resultCount)
	if err != nil {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w: %w", ErrInvalidRequest, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	if len(body) == 0 {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w", ErrEmptyResponse)
	}

	logBody(ctx, body)

	page, err := profile.Decode(body)
	if err != nil {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w: %w", ErrDecode, err)
	}

	if len(page.Results) != resultCount {
		return profile.Page{}, fmt.Errorf("fetch profiles: %w: got %d profiles, want %d",
			ErrDecode, len(page.Results), resultCount)
	}

	return page, nil
}

func (c *Client) newRequest(ctx context.Context, resultCount int) (*http.Request, error) {
	if resultCount < 1 {
		return nil, fmt.Errorf("result count %d must be positive", resultCount)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", c.baseURL)
	}

	q := u.Query()
	q.Set("results", strconv.Itoa(resultCount))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// logBody writes the pretty-printed response at debug level.
func logBody(ctx context.Context, body []byte) {
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		slog.DebugContext(ctx, "fetch profiles: raw response", "bytes", len(body))
		return
	}
	slog.DebugContext(ctx, "fetch profiles: response", "body", buf.String())
}
