package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
)

// ledgerStore implements driven.SendLedger.
type ledgerStore struct {
	store *Store
}

var _ driven.SendLedger = (*ledgerStore)(nil)

// SendLedger returns a SendLedger interface backed by this store.
func (s *Store) SendLedger() driven.SendLedger {
	return &ledgerStore{store: s}
}

// Record inserts an attempt. INSERT OR IGNORE makes the write idempotent
// under the unique (email, send_date) index; a duplicate key leaves the
// stored entry untouched and reports false.
func (l *ledgerStore) Record(ctx context.Context, entry *domain.SendLogEntry) (bool, error) {
	if entry == nil {
		return false, domain.ErrInvalidInput
	}

	result, err := l.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO sent_log (send_date, sent_at, email, person_id, company, subject, status, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.SendDate, entry.SentAt.UTC().Format(time.RFC3339), entry.Email,
		entry.PersonID, entry.Company, entry.Subject, entry.Status, entry.RunID)
	if err != nil {
		return false, fmt.Errorf("recording send attempt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert result: %w", err)
	}
	return affected > 0, nil
}

// AttemptCountOn counts all attempts for the day, failures included; every
// attempt consumes daily quota.
func (l *ledgerStore) AttemptCountOn(ctx context.Context, day string) (int, error) {
	var count int
	row := l.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sent_log WHERE send_date = ?", day)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting attempts: %w", err)
	}
	return count, nil
}

// CompanyCountOn counts the day's attempts for one company.
func (l *ledgerStore) CompanyCountOn(ctx context.Context, day, company string) (int, error) {
	var count int
	row := l.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sent_log WHERE send_date = ? AND company = ?", day, company)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting company attempts: %w", err)
	}
	return count, nil
}

// Logged reports whether the recipient already has an entry for the day.
func (l *ledgerStore) Logged(ctx context.Context, day, email string) (bool, error) {
	var one int
	row := l.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM sent_log WHERE send_date = ? AND email = ? LIMIT 1", day, email)
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking send log: %w", err)
	}
	return true, nil
}

// EntriesOn returns the day's entries in insertion order.
func (l *ledgerStore) EntriesOn(ctx context.Context, day string) ([]domain.SendLogEntry, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT send_date, sent_at, email, person_id, company, subject, status, run_id
		FROM sent_log
		WHERE send_date = ?
		ORDER BY id
	`, day)
	if err != nil {
		return nil, fmt.Errorf("querying send log: %w", err)
	}
	defer rows.Close()

	var entries []domain.SendLogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.SendLogEntry
		var sentAt string
		if err := rows.Scan(&entry.SendDate, &sentAt, &entry.Email, &entry.PersonID,
			&entry.Company, &entry.Subject, &entry.Status, &entry.RunID); err != nil {
			return nil, fmt.Errorf("scanning send log entry: %w", err)
		}
		entry.SentAt, err = time.Parse(time.RFC3339, sentAt)
		if err != nil {
			return nil, fmt.Errorf("parsing sent_at %q: %w", sentAt, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating send log: %w", err)
	}

	return entries, nil
}
