package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.apollo.io/api/v1"

	// peopleSearchPath is the mixed people search endpoint.
	peopleSearchPath = "/mixed_people/api_search"

	// bulkMatchPath is the bulk person enrichment endpoint.
	bulkMatchPath = "/people/bulk_match"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxAttempts bounds retries for throttled/transient failures.
	DefaultMaxAttempts = 6

	// DefaultBackoffBase is the initial retry delay; it doubles per attempt.
	DefaultBackoffBase = time.Second

	// DefaultBackoffCap is the maximum computed retry delay.
	DefaultBackoffCap = 30 * time.Second

	// DefaultPacing is the polite delay between consecutive API calls.
	DefaultPacing = 400 * time.Millisecond

	// headerRetryAfter carries a server-provided retry delay in seconds.
	headerRetryAfter = "Retry-After"

	// maxBodyExcerpt bounds the response body kept in error messages.
	maxBodyExcerpt = 200
)

// Client talks to the Apollo API with uniform retry/backoff behaviour.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	backoffBase time.Duration
	backoffCap  time.Duration
	maxAttempts int
}

// NewClient creates a production client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Every(DefaultPacing), 1),
		backoffBase: DefaultBackoffBase,
		backoffCap:  DefaultBackoffCap,
		maxAttempts: DefaultMaxAttempts,
	}
}

// NewClientWithHTTPClient creates a client against a custom base URL and
// http.Client. Used by tests and proxied deployments.
func NewClientWithHTTPClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	c.httpClient = httpClient
	return c
}

// postWithBackoff issues one logical POST, retrying throttled (429) and
// transient server (5xx) responses with exponential backoff. A Retry-After
// header overrides the computed delay. Non-retryable statuses fail
// immediately as *domain.RemoteError.
func (c *Client) postWithBackoff(
	ctx context.Context, path string, params url.Values, body any,
) (map[string]any, error) {
	delay := c.backoffBase

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		status, respBody, header, err := c.post(ctx, path, params, body)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", path, err)
		}

		if status == http.StatusOK {
			var parsed map[string]any
			if err := json.Unmarshal(respBody, &parsed); err != nil {
				return nil, fmt.Errorf("decode %s response: %w", path, err)
			}
			return parsed, nil
		}

		if !retryableStatus(status) {
			return nil, &domain.RemoteError{
				Service:    "apollo",
				StatusCode: status,
				Detail:     bodyExcerpt(respBody),
			}
		}

		wait := delay
		if retryAfter := parseRetryAfter(header); retryAfter > 0 {
			wait = retryAfter
		}
		logger.Logger.Warnw("apollo request throttled, backing off",
			"path", path, "status", status, "attempt", attempt, "wait", wait)

		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
		delay = min(delay*2, c.backoffCap)
	}

	return nil, fmt.Errorf("%s: %w", path, domain.ErrRetriesExhausted)
}

// post performs a single HTTP round trip and drains the response body.
func (c *Client) post(
	ctx context.Context, path string, params url.Values, body any,
) (int, []byte, http.Header, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("encode body: %w", err)
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + encodeParams(params)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, resp.Header, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, respBody, resp.Header, nil
}

// parseRetryAfter reads a Retry-After header given in whole seconds.
func parseRetryAfter(header http.Header) time.Duration {
	raw := header.Get(headerRetryAfter)
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// buildParams converts a flat filter map into query parameters. Lists use
// the bracket convention: key[]=v1&key[]=v2.
func buildParams(filters map[string]any) url.Values {
	params := url.Values{}
	for key, value := range filters {
		switch v := value.(type) {
		case nil:
			continue
		case bool:
			params.Set(key, strconv.FormatBool(v))
		case int:
			params.Set(key, strconv.Itoa(v))
		case float64:
			params.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case string:
			params.Set(key, v)
		case []string:
			bracketed := key + "[]"
			for _, item := range v {
				params.Add(bracketed, item)
			}
		case []any:
			bracketed := key + "[]"
			for _, item := range v {
				if item == nil {
					continue
				}
				params.Add(bracketed, fmt.Sprint(item))
			}
		default:
			params.Set(key, fmt.Sprint(v))
		}
	}
	return params
}

// encodeParams renders params with stable key ordering.
func encodeParams(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, key := range keys {
		escapedKey := url.QueryEscape(key)
		for _, value := range params[key] {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(escapedKey)
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(value))
		}
	}
	return buf.String()
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func bodyExcerpt(body []byte) string {
	if len(body) > maxBodyExcerpt {
		body = body[:maxBodyExcerpt]
	}
	return string(body)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
