package intel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeBrowsingFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req lookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "trustlens", req.Client.ClientID)
		require.Len(t, req.ThreatInfo.ThreatEntries, 1)
		assert.Equal(t, "http://evil.test/x", req.ThreatInfo.ThreatEntries[0].URL)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]string{
				{"threatType": "SOCIAL_ENGINEERING"},
				{"threatType": "MALWARE"},
				{"threatType": "MALWARE"},
			},
		})
	}))
	defer srv.Close()

	sb := NewSafeBrowsing("test-key").WithEndpoint(srv.URL)
	res, err := sb.Check(context.Background(), "http://evil.test/x")
	require.NoError(t, err)
	assert.True(t, res.Flagged)
	assert.Equal(t, []string{"SOCIAL_ENGINEERING", "MALWARE"}, res.Threats)
}

func TestSafeBrowsingClean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	sb := NewSafeBrowsing("k").WithEndpoint(srv.URL)
	res, err := sb.Check(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, res.Flagged)
	assert.Empty(t, res.Threats)
}

func TestSafeBrowsingClientErrorNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sb := NewSafeBrowsing("bad").WithEndpoint(srv.URL).WithRetries(3, time.Millisecond)
	_, err := sb.Check(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSafeBrowsingRetriesTransientFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	sb := NewSafeBrowsing("k").WithEndpoint(srv.URL).WithRetries(3, time.Millisecond)
	res, err := sb.Check(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, res.Flagged)
	assert.Equal(t, 3, calls)
}

func TestNoop(t *testing.T) {
	res, err := Noop{}.Check(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, res.Flagged)
}
