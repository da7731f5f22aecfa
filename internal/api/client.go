package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/truthlens/truthlens/internal/logger"
)

// Client talks to the TruthLens analysis backend. It performs no retries;
// all failures are terminal and surfaced to the caller.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	log     *logger.Logger
}

// APIError is a non-2xx response from the backend. Detail carries the
// server-supplied diagnostic when the body contained one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
}

// NewClient creates a backend client. A zero timeout leaves the request
// unbounded; only the transport limits it.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: missing scheme or host", baseURL)
	}

	return &Client{
		baseURL: u,
		client:  &http.Client{Timeout: timeout},
		log:     logger.New("api", nil),
	}, nil
}

// SetLogger replaces the client's request logger.
func (c *Client) SetLogger(log *logger.Logger) {
	if log != nil {
		c.log = log
	}
}

// BaseURL returns the configured server origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// IsLoopback reports whether the client points at a local-loopback host.
func (c *Client) IsLoopback() bool {
	host := c.baseURL.Hostname()
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}

// Analyze submits image bytes as multipart field "file" to /api/analyze.
func (c *Client) Analyze(ctx context.Context, filename string, image io.Reader) (*AnalysisResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/analyze"), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result AnalysisResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// VerifyText submits a claim to /api/verify/text.
func (c *Client) VerifyText(ctx context.Context, text string) (*TextVerificationResponse, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/verify/text"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result TextVerificationResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// Health checks the backend /api/health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/health"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result HealthResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("request failed", logger.F("path", req.URL.Path), logger.Err(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request done",
		logger.F("method", req.Method),
		logger.F("path", req.URL.Path),
		logger.F("status", resp.StatusCode),
		logger.Duration(time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

// decodeAPIError extracts the server's {detail} diagnostic when present;
// otherwise the status code alone is the message.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
