package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	n := NewTelegramNotifierWithHTTPClient("bot-token", "chat-42", server.Client())
	n.baseURL = server.URL
	return n
}

func TestNotifySendsMessage(t *testing.T) {
	var gotPath, gotChat, gotText string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotChat = r.URL.Query().Get("chat_id")
		gotText = r.URL.Query().Get("text")
		w.WriteHeader(http.StatusOK)
	})

	err := n.Notify(context.Background(), "Sent 5 of 12 leads")
	require.NoError(t, err)
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "chat-42", gotChat)
	assert.Equal(t, "Sent 5 of 12 leads", gotText)
}

func TestNotifySuppressesConsecutiveDuplicate(t *testing.T) {
	calls := 0
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, "same"))
	require.NoError(t, n.Notify(ctx, "same"))
	assert.Equal(t, 1, calls)

	require.NoError(t, n.Notify(ctx, "different"))
	assert.Equal(t, 2, calls)
}

func TestNotifyFailureDoesNotRecordMessage(t *testing.T) {
	status := http.StatusBadGateway
	calls := 0
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
	})
	ctx := context.Background()

	err := n.Notify(ctx, "summary")
	require.Error(t, err)
	assert.True(t, domain.IsRemoteStatus(err, http.StatusBadGateway))

	// The failed message was not remembered, so a retry goes out.
	status = http.StatusOK
	require.NoError(t, n.Notify(ctx, "summary"))
	assert.Equal(t, 2, calls)
}

func TestNotifyUnconfiguredIsNoOp(t *testing.T) {
	n := NewTelegramNotifier("", "")
	assert.NoError(t, n.Notify(context.Background(), "anything"))
}
