// Package sqlite provides the durable send ledger backed by a local SQLite
// database. The ledger is the sole enforcement point for the
// once-per-recipient-per-day invariant: the sent_log table carries a unique
// (email, send_date) index and inserts are idempotent.
package sqlite
