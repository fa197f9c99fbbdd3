package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/trustlens/trustlens/internal/retry"
)

// DefaultEndpoint is the Google Safe Browsing v4 lookup endpoint.
const DefaultEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

// SafeBrowsing checks URLs against the Google Safe Browsing v4 API.
// Transient lookup failures are retried with backoff; 4xx responses are not.
type SafeBrowsing struct {
	key        string
	endpoint   string
	client     *http.Client
	attempts   int
	retryDelay time.Duration
}

// NewSafeBrowsing creates a checker using the given API key.
func NewSafeBrowsing(key string) *SafeBrowsing {
	return &SafeBrowsing{
		key:        key,
		endpoint:   DefaultEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
		attempts:   3,
		retryDelay: 200 * time.Millisecond,
	}
}

// WithEndpoint overrides the lookup endpoint (used in tests).
func (s *SafeBrowsing) WithEndpoint(endpoint string) *SafeBrowsing {
	s.endpoint = endpoint
	return s
}

// WithHTTPClient overrides the HTTP client.
func (s *SafeBrowsing) WithHTTPClient(c *http.Client) *SafeBrowsing {
	s.client = c
	return s
}

// WithRetries overrides the retry policy for transient lookup failures.
func (s *SafeBrowsing) WithRetries(attempts int, baseDelay time.Duration) *SafeBrowsing {
	s.attempts = attempts
	s.retryDelay = baseDelay
	return s
}

type threatEntry struct {
	URL string `json:"url"`
}

type lookupRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string      `json:"threatTypes"`
		PlatformTypes    []string      `json:"platformTypes"`
		ThreatEntryTypes []string      `json:"threatEntryTypes"`
		ThreatEntries    []threatEntry `json:"threatEntries"`
	} `json:"threatInfo"`
}

type lookupResponse struct {
	Matches []struct {
		ThreatType string `json:"threatType"`
	} `json:"matches"`
}

// Check posts a threatMatches:find lookup for a single URL.
func (s *SafeBrowsing) Check(ctx context.Context, target string) (*Result, error) {
	var req lookupRequest
	req.Client.ClientID = "trustlens"
	req.Client.ClientVersion = "1.0"
	req.ThreatInfo.ThreatTypes = []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE"}
	req.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	req.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	req.ThreatInfo.ThreatEntries = []threatEntry{{URL: target}}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal lookup request: %w", err)
	}

	var out lookupResponse
	err = retry.Do(ctx, s.attempts, s.retryDelay, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			s.endpoint+"?key="+url.QueryEscape(s.key), bytes.NewReader(body))
		if err != nil {
			return retry.Permanent(fmt.Errorf("build lookup request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("safe browsing lookup: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("safe browsing lookup: status %d", resp.StatusCode)
			// Client errors (bad key, quota) won't resolve by retrying.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return retry.Permanent(err)
			}
			return err
		}

		out = lookupResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode lookup response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Flagged: len(out.Matches) > 0}
	seen := map[string]bool{}
	for _, m := range out.Matches {
		if m.ThreatType == "" || seen[m.ThreatType] {
			continue
		}
		seen[m.ThreatType] = true
		result.Threats = append(result.Threats, m.ThreatType)
	}
	return result, nil
}
