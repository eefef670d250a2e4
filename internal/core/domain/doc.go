// Package domain defines the core business entities for prospect-cli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Candidate: A raw search hit passing through the collection pipeline
//   - Lead: An enriched, persisted prospect record
//   - SendLogEntry: One row of the durable send ledger
//   - Recipe: A named bundle of search filters selecting an audience segment
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
