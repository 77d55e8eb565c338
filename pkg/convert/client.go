// Package convert talks to the branch conversion service that maps mainline
// branches to version fragments.
package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// responseLimit caps how much of a conversion response is read.
const responseLimit = 1 << 20 // 1MB

// Options configures the conversion service client.
// Zero-value fields receive defaults (10s timeout, single attempt).
type Options struct {
	Timeout     time.Duration
	MaxAttempts int
	Logger      *zap.Logger
}

// Client fetches version fragments from the conversion service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	log         *zap.Logger
}

// New builds a conversion client. The request URL is baseURL with the branch
// name appended, so a base of "https://host/convert/" resolves the mainline
// via "https://host/convert/master".
func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("conversion URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse conversion URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("conversion URL must include scheme and host")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		maxAttempts: opts.MaxAttempts,
		log:         log,
	}, nil
}

// BranchVersion asks the service for the fragment belonging to branch.
// The contract is a GET answered with the fragment as a plain text body;
// zstd-encoded responses are decoded transparently.
func (c *Client) BranchVersion(ctx context.Context, branch string) (string, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return "", fmt.Errorf("branch name is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+branch, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "zstd")

	c.log.Debug("requesting branch conversion", zap.String("url", req.URL.Redacted()))
	resp, err := retryDo(c.httpClient, req, c.maxAttempts)
	if err != nil {
		return "", fmt.Errorf("conversion request: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, responseLimit))
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("conversion request failed (%s %s): %s", req.Method, req.URL.Path, msg)
	}

	if isZstdEncoded(resp.Header.Get("Content-Encoding")) {
		body, err = decompressZstd(body)
		if err != nil {
			return "", fmt.Errorf("decompress conversion response: %w", err)
		}
	}

	fragment := strings.TrimSpace(string(body))
	if fragment == "" {
		return "", fmt.Errorf("conversion service returned an empty fragment")
	}
	return fragment, nil
}
