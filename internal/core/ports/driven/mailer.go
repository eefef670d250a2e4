package driven

import (
	"context"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// Mailer delivers one rendered message to one recipient.
//
// Implementations absorb auth refresh (one retry on an auth-rejected
// response) and throttling (one retry honouring a server-provided delay).
// A nil return means the mail service accepted the message. Failures
// surface as *domain.RemoteError for HTTP-level rejections, or any other
// error for transport problems; the dispatch loop records either in the
// ledger and moves on.
type Mailer interface {
	Send(ctx context.Context, msg *domain.OutreachMessage) error
}

// MessageRenderer turns a lead into a personalised outreach message.
type MessageRenderer interface {
	Render(lead domain.Lead) (*domain.OutreachMessage, error)
}
