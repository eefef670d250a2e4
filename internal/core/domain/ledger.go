package domain

import (
	"fmt"
	"time"
)

// OutcomeSent is the ledger status for a successful delivery. Failures are
// recorded as "error:<status>:<detail>" or "exception:<detail>".
const OutcomeSent = "sent"

// maxOutcomeDetail bounds the failure detail stored in the ledger.
const maxOutcomeDetail = 200

// SendLogEntry is one row of the durable send ledger. (Email, SendDate) is
// unique: a recipient is contacted at most once per calendar day, whether the
// attempt succeeded or not.
type SendLogEntry struct {
	SendDate string
	SentAt   time.Time
	Email    string
	PersonID string
	Company  string
	Subject  string
	Status   string
	RunID    string
}

// Sent reports whether the entry records a successful delivery.
func (e SendLogEntry) Sent() bool {
	return e.Status == OutcomeSent
}

// DayKey formats t as the calendar-day ledger key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ErrorOutcome formats a failed-send status for the ledger.
func ErrorOutcome(statusCode int, detail string) string {
	return fmt.Sprintf("error:%d:%s", statusCode, truncateDetail(detail))
}

// ExceptionOutcome formats a transport-level failure for the ledger.
func ExceptionOutcome(err error) string {
	return fmt.Sprintf("exception:%s", truncateDetail(err.Error()))
}

func truncateDetail(detail string) string {
	if len(detail) > maxOutcomeDetail {
		return detail[:maxOutcomeDetail]
	}
	return detail
}
