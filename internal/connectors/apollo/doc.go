// Package apollo implements the PeopleDirectory port against the Apollo.io
// REST API: paginated people search and bulk person enrichment.
//
// The client owns the retry contract the collection loop depends on:
// exponential backoff on throttling and transient server errors, honouring
// an explicit Retry-After when the server sends one, and a proactive token
// bucket keeping request pacing polite.
package apollo
