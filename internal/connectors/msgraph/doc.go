// Package msgraph implements the Mailer port against the Microsoft Graph
// sendMail endpoint.
//
// The client owns the recovery contract the dispatch loop depends on: on an
// auth-rejected response it refreshes the credential exactly once and
// retries exactly once; on throttling it honours the server's Retry-After
// (or a fixed fallback) and retries exactly once. Any other non-success
// response surfaces as *domain.RemoteError for the caller to record.
package msgraph
