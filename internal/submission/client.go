package submission

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is read for classification.
const maxErrorBody = 64 << 10

// Client posts multipart forms to the processing endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a Client rooted at baseURL. A zero timeout imposes none.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(u.String(), "/"),
		logger:  logger.With("system", "submission-client"),
	}, nil
}

// Post sends form to endpoint and reports the raw outcome. A transport
// failure yields an Outcome with zero Status.
func (c *Client) Post(ctx context.Context, endpoint string, form *Form) Outcome {
	body, contentType, err := form.Encode()
	if err != nil {
		c.logger.Warn("request not sent", "endpoint", endpoint, "error", err)
		return Outcome{Err: err}
	}

	target := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return Outcome{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/pdf, application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "url", target, "error", err)
		return Outcome{Err: fmt.Errorf("post %s: %w", endpoint, err)}
	}
	defer resp.Body.Close()

	o := Outcome{Status: resp.StatusCode}
	if o.OK() {
		o.Body, o.Err = io.ReadAll(resp.Body)
	} else {
		o.Body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	}

	c.logger.Info(
		"request complete",
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(o.Body),
		"duration", time.Since(start),
	)
	return o
}
