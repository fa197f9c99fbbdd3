package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Config holds the configuration for connecting to the TrustLens API.
type Config struct {
	APIURL string // Base URL, e.g. "http://localhost:8080"
}

// TrustLensClient is a pure HTTP client for the TrustLens API.
type TrustLensClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewTrustLensClient creates a new client for the TrustLens API.
func NewTrustLensClient(cfg Config) *TrustLensClient {
	return &TrustLensClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError represents an error response from the API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the API and returns the response body.
func (c *TrustLensClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.APIURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// Scan runs a detector over the input. With record=true the scan is also
// appended to the history ledger.
func (c *TrustLensClient) Scan(ctx context.Context, detector, input, label string, record bool) (json.RawMessage, error) {
	var q url.Values
	if record {
		q = url.Values{"record": []string{"true"}}
	}
	body := map[string]string{
		"type":  detector,
		"input": input,
	}
	if label != "" {
		body["label"] = label
	}
	return c.doRequest(ctx, http.MethodPost, "/v1/scan", q, body)
}

// ListScans returns recent scan history, newest first.
func (c *TrustLensClient) ListScans(ctx context.Context, limit int) (json.RawMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.doRequest(ctx, http.MethodGet, "/v1/scans", q, nil)
}

// GetSummary returns the dashboard headline figures.
func (c *TrustLensClient) GetSummary(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodGet, "/v1/dashboard/summary", nil, nil)
}

// GetTimeSeries returns daily scan activity over the given window.
func (c *TrustLensClient) GetTimeSeries(ctx context.Context, days int) (json.RawMessage, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return c.doRequest(ctx, http.MethodGet, "/v1/dashboard/timeseries", q, nil)
}
