package services

import (
	"context"
	"fmt"
	"time"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

const (
	// defaultPageDelay spaces out consecutive search pages.
	defaultPageDelay = 400 * time.Millisecond

	// defaultRetryCooldown is the wait before the single retry of a failed
	// page fetch.
	defaultRetryCooldown = 5 * time.Second

	defaultMaxPages = 50

	// enrichBatchSize matches the directory's bulk enrichment limit.
	enrichBatchSize = 10
)

// CollectorConfig tunes a collection run. Zero values fall back to defaults;
// DryRun skips enrichment and persistence.
type CollectorConfig struct {
	MaxPages      int
	PageDelay     time.Duration
	RetryCooldown time.Duration
	DryRun        bool
}

// CollectResult summarises one collection run.
type CollectResult struct {
	Pages int // search pages fetched
	Raw   int // candidates returned by the directory
	Kept  int // candidates surviving dedup and exclusion
	Saved int // enriched leads appended to the store
}

// Collector runs the collection loop: paginate a people search, drop seen and
// excluded candidates, enrich the survivors, and persist them incrementally.
type Collector struct {
	directory driven.PeopleDirectory
	store     driven.LeadStore
	rules     domain.ExclusionRules

	maxPages      int
	pageDelay     time.Duration
	retryCooldown time.Duration
	dryRun        bool
}

// NewCollector creates a collector over the given directory and lead store.
func NewCollector(directory driven.PeopleDirectory, store driven.LeadStore, rules domain.ExclusionRules, cfg CollectorConfig) *Collector {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = defaultPageDelay
	}
	if cfg.RetryCooldown <= 0 {
		cfg.RetryCooldown = defaultRetryCooldown
	}

	return &Collector{
		directory:     directory,
		store:         store,
		rules:         rules,
		maxPages:      cfg.MaxPages,
		pageDelay:     cfg.PageDelay,
		retryCooldown: cfg.RetryCooldown,
		dryRun:        cfg.DryRun,
	}
}

// Run executes the collection loop for one recipe. Leads are appended to the
// store batch by batch, so an interrupted run keeps everything persisted so
// far. The returned result covers the completed portion even on error.
func (c *Collector) Run(ctx context.Context, recipe *domain.Recipe) (*CollectResult, error) {
	if recipe == nil {
		return nil, fmt.Errorf("collect: %w", domain.ErrInvalidInput)
	}

	seen, err := c.store.SeenIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seen ids: %w", err)
	}
	logger.Logger.Infow("starting collection",
		"mode", recipe.Mode,
		"max_pages", c.maxPages,
		"already_seen", len(seen),
		"dry_run", c.dryRun)

	result := &CollectResult{}
	var accepted []domain.Candidate

	for page := 1; page <= c.maxPages; page++ {
		candidates, err := c.fetchPage(ctx, recipe, page)
		if err != nil {
			return result, fmt.Errorf("search page %d: %w", page, err)
		}
		result.Pages++
		if len(candidates) == 0 {
			logger.Logger.Infow("no more results", "page", page)
			break
		}

		result.Raw += len(candidates)

		kept := c.filter(candidates, seen)
		accepted = append(accepted, kept...)
		result.Kept = len(accepted)
		logger.Logger.Infow("page collected",
			"page", page,
			"raw", len(candidates),
			"kept", len(kept),
			"total_kept", result.Kept)

		if page < c.maxPages {
			if err := sleepCtx(ctx, c.pageDelay); err != nil {
				return result, err
			}
		}
	}

	if c.dryRun {
		logger.Logger.Infow("dry run, skipping enrichment", "would_enrich", len(accepted))
		return result, nil
	}

	saved, err := c.enrichAndSave(ctx, accepted)
	result.Saved = saved
	if err != nil {
		return result, err
	}

	logger.Logger.Infow("collection finished",
		"pages", result.Pages,
		"raw", result.Raw,
		"kept", result.Kept,
		"saved", result.Saved)

	return result, nil
}

// fetchPage fetches one search page, retrying once after a cooldown.
func (c *Collector) fetchPage(ctx context.Context, recipe *domain.Recipe, page int) ([]domain.Candidate, error) {
	candidates, err := c.directory.SearchPage(ctx, recipe, page)
	if err == nil {
		return candidates, nil
	}

	logger.Logger.Warnw("page fetch failed, retrying once",
		"page", page,
		"cooldown", c.retryCooldown,
		"error", err)
	if serr := sleepCtx(ctx, c.retryCooldown); serr != nil {
		return nil, serr
	}

	return c.directory.SearchPage(ctx, recipe, page)
}

// filter drops candidates without an id, already-seen ids, and excluded
// companies or titles. Accepted ids join the seen set immediately so a
// duplicate later in the same run is also dropped.
func (c *Collector) filter(candidates []domain.Candidate, seen map[string]struct{}) []domain.Candidate {
	accepted := make([]domain.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == "" {
			continue
		}
		if _, ok := seen[cand.ID]; ok {
			continue
		}
		if c.rules.ExcludesCompany(cand.Company) || c.rules.ExcludesTitle(cand.Title) {
			continue
		}
		seen[cand.ID] = struct{}{}
		accepted = append(accepted, cand)
	}
	return accepted
}

// enrichAndSave enriches accepted candidates in directory-sized batches and
// appends each batch before starting the next.
func (c *Collector) enrichAndSave(ctx context.Context, accepted []domain.Candidate) (int, error) {
	saved := 0
	for start := 0; start < len(accepted); start += enrichBatchSize {
		end := start + enrichBatchSize
		if end > len(accepted) {
			end = len(accepted)
		}

		ids := make([]string, 0, end-start)
		for _, cand := range accepted[start:end] {
			ids = append(ids, cand.ID)
		}

		leads, err := c.directory.EnrichBatch(ctx, ids)
		if err != nil {
			return saved, fmt.Errorf("enrich batch: %w", err)
		}

		// Enrichment reveals fields search did not return; apply the
		// exclusions again on the richer record.
		kept := make([]domain.Lead, 0, len(leads))
		for _, lead := range leads {
			if c.rules.ExcludesCompany(lead.Company) || c.rules.ExcludesTitle(lead.Title) {
				continue
			}
			kept = append(kept, lead)
		}

		if err := c.store.Append(ctx, kept); err != nil {
			return saved, fmt.Errorf("append leads: %w", err)
		}
		saved += len(kept)

		if end < len(accepted) {
			if err := sleepCtx(ctx, c.pageDelay); err != nil {
				return saved, err
			}
		}
	}
	return saved, nil
}

// sleepCtx sleeps for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
