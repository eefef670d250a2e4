package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Graph API root.
	DefaultBaseURL = "https://graph.microsoft.com"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultThrottleFallback is the wait before the single throttle retry
	// when the server sends no Retry-After.
	DefaultThrottleFallback = 10 * time.Second

	// headerRetryAfter carries a server-provided retry delay in seconds.
	headerRetryAfter = "Retry-After"

	// maxBodyExcerpt bounds the response body kept in error messages.
	maxBodyExcerpt = 200
)

// Compile-time check that Client satisfies the mailer port.
var _ driven.Mailer = (*Client)(nil)

// Client sends mail through Microsoft Graph on behalf of one sender mailbox.
type Client struct {
	baseURL          string
	senderUPN        string
	tokens           driven.TokenProvider
	httpClient       *http.Client
	throttleFallback time.Duration
}

// NewClient creates a production client sending as senderUPN.
func NewClient(senderUPN string, tokens driven.TokenProvider) *Client {
	return &Client{
		baseURL:          DefaultBaseURL,
		senderUPN:        senderUPN,
		tokens:           tokens,
		httpClient:       &http.Client{Timeout: DefaultTimeout},
		throttleFallback: DefaultThrottleFallback,
	}
}

// NewClientWithHTTPClient creates a client against a custom base URL and
// http.Client. Used by tests.
func NewClientWithHTTPClient(
	senderUPN string, tokens driven.TokenProvider, baseURL string, httpClient *http.Client,
) *Client {
	c := NewClient(senderUPN, tokens)
	c.baseURL = baseURL
	c.httpClient = httpClient
	return c
}

// Send delivers one message. Graph signals acceptance with 202 (or 200).
func (c *Client) Send(ctx context.Context, msg *domain.OutreachMessage) error {
	body, err := json.Marshal(newSendMailRequest(msg))
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	status, respBody, header, err := c.post(ctx, token, body)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	// Rejected token: refresh exactly once, retry exactly once.
	if status == http.StatusUnauthorized {
		logger.Logger.Warnw("mail send rejected token, refreshing once",
			"recipient", msg.To)
		c.tokens.Invalidate()
		token, err = c.tokens.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
		}
		status, respBody, header, err = c.post(ctx, token, body)
		if err != nil {
			return fmt.Errorf("send mail after refresh: %w", err)
		}
	}

	if accepted(status) {
		return nil
	}

	// Throttled: honour Retry-After (or the fallback), retry exactly once.
	if status == http.StatusTooManyRequests {
		wait := parseRetryAfter(header)
		if wait <= 0 {
			wait = c.throttleFallback
		}
		logger.Logger.Warnw("mail send throttled, waiting before single retry",
			"recipient", msg.To, "wait", wait)
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}

		status, respBody, _, err = c.post(ctx, token, body)
		if err != nil {
			return fmt.Errorf("send mail after throttle: %w", err)
		}
		if accepted(status) {
			return nil
		}
	}

	return &domain.RemoteError{
		Service:    "graph",
		StatusCode: status,
		Detail:     bodyExcerpt(respBody),
	}
}

// post performs one sendMail round trip.
func (c *Client) post(
	ctx context.Context, token string, body []byte,
) (int, []byte, http.Header, error) {
	endpoint := fmt.Sprintf("%s/v1.0/users/%s/sendMail", c.baseURL, c.senderUPN)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

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

func accepted(status int) bool {
	return status == http.StatusAccepted || status == http.StatusOK
}

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
