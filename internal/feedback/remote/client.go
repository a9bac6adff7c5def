package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"writing-tutor-api/internal/feedback"
)

const (
	DefaultTimeout = 15 * time.Second
	maxBodyBytes   = 2 << 20
)

// ErrNotConfigured is returned by Placeholder.
var ErrNotConfigured = errors.New("remote analysis endpoint not configured")

// StatusError is a non-2xx answer from the analysis endpoint.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote analysis http status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote analysis http status %d", e.StatusCode)
}

// Client posts writing samples to an external analysis endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a Client. A non-positive timeout uses DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("REMOTE_ANALYSIS_URL is required")
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("REMOTE_ANALYSIS_URL must be an http(s) URL: %q", endpoint)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// Analyze makes exactly one POST. A 2xx body that parses as JSON is returned
// byte for byte; its shape is not checked.
func (c *Client) Analyze(ctx context.Context, sample feedback.WritingSample) (json.RawMessage, error) {
	payload, err := json.Marshal(sample)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("remote analysis timeout: %w", err)
		}
		return nil, fmt.Errorf("remote analysis request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("remote analysis read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var parsed errorBody
		if json.Unmarshal(body, &parsed) == nil {
			statusErr.Message = strings.TrimSpace(parsed.Error)
		}
		return nil, statusErr
	}

	if !json.Valid(body) {
		return nil, errors.New("remote analysis response parse: body is not valid JSON")
	}
	return json.RawMessage(body), nil
}

// Placeholder stands in when no endpoint is configured; every call fails so
// the local pipeline answers.
type Placeholder struct{}

// Analyze returns ErrNotConfigured.
func (Placeholder) Analyze(ctx context.Context, sample feedback.WritingSample) (json.RawMessage, error) {
	_ = ctx
	_ = sample
	return nil, ErrNotConfigured
}

var (
	_ feedback.RemoteAnalyzer = (*Client)(nil)
	_ feedback.RemoteAnalyzer = Placeholder{}
)
