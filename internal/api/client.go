package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
)

// Envelope is the normalized shape of every platform API response.
// Success=false with a message is the expected-failure path; transport
// failures are returned as errors instead.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Decode unmarshals the envelope data into dest. A missing data section
// leaves dest untouched.
func (e *Envelope) Decode(dest interface{}) error {
	if e == nil || len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return json.Unmarshal(e.Data, dest)
}

// ObserveFunc receives the timing of every platform call. Outcome is
// "success", "rejected" or "error".
type ObserveFunc func(method, outcome string, duration time.Duration)

// Options configures a platform API client.
type Options struct {
	BaseURL        string
	OrganizationID string
	Token          string
	Timeout        time.Duration
	HTTPClient     *http.Client
	Logger         *zap.Logger
	Observe        ObserveFunc
}

// Client issues requests against the academy platform REST API.
// Dependencies are injected at construction; there is no global instance.
type Client struct {
	baseURL string
	orgID   string
	token   string
	http    *http.Client
	logger  *zap.Logger
	observe ObserveFunc
}

// New constructs a platform API client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		orgID:   opts.OrganizationID,
		token:   opts.Token,
		http:    httpClient,
		logger:  logger,
		observe: opts.Observe,
	}
}

// WithToken returns a copy of the client authenticating as the given user.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Request performs a single attempt against the platform API. Expected HTTP
// error statuses come back as Success=false envelopes; only network-level
// failures return an error.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (*Envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.orgID != "" {
		req.Header.Set("X-Organization-ID", c.orgID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.report(method, "error", time.Since(start))
		c.logger.Warn("platform request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}
	defer resp.Body.Close()

	envelope, err := normalize(resp)
	latency := time.Since(start)
	if err != nil {
		c.report(method, "error", latency)
		return nil, err
	}

	outcome := "success"
	if !envelope.Success {
		outcome = "rejected"
	}
	c.report(method, outcome, latency)

	c.logger.Debug("platform request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", envelope.Success),
		zap.Duration("latency", latency))

	return envelope, nil
}

func (c *Client) report(method, outcome string, duration time.Duration) {
	if c.observe != nil {
		c.observe(method, outcome, duration)
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.Request(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.Request(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.Request(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Request(ctx, http.MethodDelete, path, nil)
}

// normalize maps any platform response onto the common envelope. Responses
// already carrying a success key pass through; bare payloads are wrapped,
// and bare HTTP errors become Success=false with a readable cause.
func normalize(resp *http.Response) (*Envelope, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "read response body")
	}
	raw := bytes.TrimSpace(buf.Bytes())

	var peek struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if len(raw) > 0 && json.Unmarshal(raw, &peek) == nil && peek.Success != nil {
		return &Envelope{Success: *peek.Success, Data: peek.Data, Message: peek.Message}, nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		envelope := &Envelope{Success: true}
		if json.Valid(raw) {
			envelope.Data = json.RawMessage(raw)
		}
		return envelope, nil
	}

	return &Envelope{Success: false, Message: statusMessage(resp.StatusCode)}, nil
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid data"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	default:
		if status >= 500 {
			return "platform error"
		}
		return fmt.Sprintf("unexpected status %d", status)
	}
}
