// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The collection and dispatch loops depend on these interfaces, and
// infrastructure adapters implement them:
//
//   - PeopleDirectory: paginated people search and batch enrichment
//   - Mailer: single-recipient outbound mail delivery
//   - MessageRenderer: lead -> rendered outreach message
//   - LeadStore: append-only lead table persistence
//   - SendLedger: durable send-history with per-day uniqueness
//   - TokenProvider: access tokens with refresh-on-demand
//   - Notifier: end-of-run side-channel notification
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
