package apollo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// newTestClient points a client at srv with retry delays collapsed so
// backoff paths run in microseconds.
func newTestClient(srv *httptest.Server) *Client {
	c := NewClientWithHTTPClient("test-key", srv.URL, srv.Client())
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.backoffBase = time.Millisecond
	c.backoffCap = 4 * time.Millisecond
	return c
}

func TestPostWithBackoffSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	resp, err := c.postWithBackoff(context.Background(), "/test", nil, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, true, resp["ok"])
}

func TestPostWithBackoffRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	resp, err := c.postWithBackoff(context.Background(), "/test", nil, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestPostWithBackoffHonoursRetryAfter(t *testing.T) {
	var calls atomic.Int32
	start := time.Now()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.postWithBackoff(context.Background(), "/test", nil, map[string]any{})
	require.NoError(t, err)
	// The computed backoff would be ~1ms; the server said 1s.
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestPostWithBackoffExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.postWithBackoff(context.Background(), "/test", nil, map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRetriesExhausted))
	assert.Equal(t, int32(DefaultMaxAttempts), calls.Load())
}

func TestPostWithBackoffNonRetryableFailsImmediately(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "plan does not allow this endpoint"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.postWithBackoff(context.Background(), "/test", nil, map[string]any{})
	require.Error(t, err)

	var remoteErr *domain.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.Detail, "plan does not allow")
	assert.Equal(t, int32(1), calls.Load())
}

func TestPostWithBackoffTruncatesBodyExcerpt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.postWithBackoff(context.Background(), "/test", nil, map[string]any{})
	var remoteErr *domain.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Len(t, remoteErr.Detail, maxBodyExcerpt)
}

func TestBuildParams(t *testing.T) {
	params := buildParams(map[string]any{
		"person_titles":          []string{"cdo", "cio"},
		"include_similar_titles": false,
		"per_page":               100,
		"q":                      "data",
		"skipped":                nil,
	})

	assert.Equal(t, []string{"cdo", "cio"}, params["person_titles[]"])
	assert.Equal(t, "false", params.Get("include_similar_titles"))
	assert.Equal(t, "100", params.Get("per_page"))
	assert.Equal(t, "data", params.Get("q"))
	assert.NotContains(t, params, "skipped")
}

func TestEncodeParamsBracketConvention(t *testing.T) {
	params := url.Values{}
	params.Add("person_titles[]", "head of erp")
	params.Add("person_titles[]", "cdo")
	params.Set("page", "2")

	encoded := encodeParams(params)
	assert.Equal(t,
		"page=2&person_titles%5B%5D=head+of+erp&person_titles%5B%5D=cdo",
		encoded)
}
