// Package services contains the two pipeline orchestrators: the Collector,
// which gathers and persists enriched leads, and the Dispatcher, which sends
// outreach under daily and per-company quotas.
package services
