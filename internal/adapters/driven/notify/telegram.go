// Package notify delivers run summaries to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Telegram Bot API endpoint.
	DefaultBaseURL = "https://api.telegram.org"

	// DefaultTimeout bounds one sendMessage call.
	DefaultTimeout = 15 * time.Second

	maxBodyExcerpt = 200
)

// TelegramNotifier sends messages through the Telegram Bot API. Consecutive
// duplicate messages within the notifier's lifetime are suppressed so a
// retried run does not repeat the same summary.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string

	httpClient *http.Client

	mu          sync.Mutex
	lastMessage string
}

var _ driven.Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return NewTelegramNotifierWithHTTPClient(token, chatID, &http.Client{Timeout: DefaultTimeout})
}

// NewTelegramNotifierWithHTTPClient creates a notifier with a custom HTTP
// client, used in tests.
func NewTelegramNotifierWithHTTPClient(token, chatID string, httpClient *http.Client) *TelegramNotifier {
	return &TelegramNotifier{
		token:      token,
		chatID:     chatID,
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
	}
}

// Notify sends the message to the configured chat. An unconfigured notifier
// (empty token or chat) is a silent no-op so notification stays optional.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	if n.token == "" || n.chatID == "" {
		return nil
	}

	n.mu.Lock()
	if message == n.lastMessage {
		n.mu.Unlock()
		logger.Logger.Debugw("suppressing duplicate notification")
		return nil
	}
	n.mu.Unlock()

	query := url.Values{}
	query.Set("chat_id", n.chatID)
	query.Set("text", message)
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage?%s", n.baseURL, n.token, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create notify request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyExcerpt))
	if resp.StatusCode != http.StatusOK {
		return &domain.RemoteError{
			Service:    "telegram",
			StatusCode: resp.StatusCode,
			Detail:     string(body),
		}
	}

	n.mu.Lock()
	n.lastMessage = message
	n.mu.Unlock()

	return nil
}
