package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

const defaultSendDelay = 180 * time.Second

// DispatcherConfig tunes a dispatch run. Zero limits fall back to defaults.
type DispatcherConfig struct {
	DailyLimit          int
	MaxPerCompanyPerDay int
	SendDelay           time.Duration

	// DoNotContact is the normalized suppression set. Nil means empty.
	DoNotContact map[string]struct{}
}

// DispatchResult summarises one dispatch run.
type DispatchResult struct {
	RunID        string
	Eligible     int // leads surviving deliverability and suppression filters
	Attempted    int // sends tried and recorded in the ledger
	Sent         int
	Failed       int
	SkippedQuota int // company-cap and already-contacted skips
	QuotaReached bool
}

// Dispatcher runs the dispatch loop: rank eligible leads by seniority and
// send until the daily quota is spent, recording every attempt durably.
type Dispatcher struct {
	store    driven.LeadStore
	ledger   driven.SendLedger
	renderer driven.MessageRenderer
	mailer   driven.Mailer
	notifier driven.Notifier

	dailyLimit    int
	maxPerCompany int
	sendDelay     time.Duration
	doNotContact  map[string]struct{}

	// now is swapped in tests to pin the ledger day.
	now func() time.Time
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(
	store driven.LeadStore,
	ledger driven.SendLedger,
	renderer driven.MessageRenderer,
	mailer driven.Mailer,
	notifier driven.Notifier,
	cfg DispatcherConfig,
) *Dispatcher {
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = 50
	}
	if cfg.MaxPerCompanyPerDay <= 0 {
		cfg.MaxPerCompanyPerDay = 2
	}
	if cfg.SendDelay <= 0 {
		cfg.SendDelay = defaultSendDelay
	}
	if cfg.DoNotContact == nil {
		cfg.DoNotContact = map[string]struct{}{}
	}

	return &Dispatcher{
		store:         store,
		ledger:        ledger,
		renderer:      renderer,
		mailer:        mailer,
		notifier:      notifier,
		dailyLimit:    cfg.DailyLimit,
		maxPerCompany: cfg.MaxPerCompanyPerDay,
		sendDelay:     cfg.SendDelay,
		doNotContact:  cfg.DoNotContact,
		now:           time.Now,
	}
}

// Run executes one dispatch pass over the stored leads.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (d *Dispatcher) Run(ctx context.Context) (*DispatchResult, error) {
	result := &DispatchResult{RunID: uuid.NewString()}

	attempts, err := d.ledger.AttemptCountOn(ctx, domain.DayKey(d.now()))
	if err != nil {
		return result, fmt.Errorf("check daily quota: %w", err)
	}
	if attempts >= d.dailyLimit {
		result.QuotaReached = true
		logger.Logger.Infow("daily quota already spent",
			"run_id", result.RunID, "attempts", attempts, "limit", d.dailyLimit)
		d.notify(ctx, fmt.Sprintf("Dispatch skipped: daily limit of %d already reached.", d.dailyLimit))
		return result, nil
	}

	leads, err := d.store.All(ctx)
	if err != nil {
		return result, fmt.Errorf("load leads: %w", err)
	}

	eligible := d.filter(leads)
	result.Eligible = len(eligible)

	// Highest seniority first; equal scores keep file order.
	sort.SliceStable(eligible, func(i, j int) bool {
		return domain.SeniorityScore(eligible[i].Title) > domain.SeniorityScore(eligible[j].Title)
	})

	logger.Logger.Infow("starting dispatch",
		"run_id", result.RunID,
		"eligible", len(eligible),
		"attempts_today", attempts,
		"limit", d.dailyLimit)

	for _, lead := range eligible {
		// The calendar day is re-read per attempt: a long run (180s between
		// sends) can cross midnight, and quota checks and ledger keys must
		// follow the day the attempt actually happens on.
		day := domain.DayKey(d.now())

		attempts, err := d.ledger.AttemptCountOn(ctx, day)
		if err != nil {
			return result, fmt.Errorf("check daily quota: %w", err)
		}
		if attempts >= d.dailyLimit {
			result.QuotaReached = true
			logger.Logger.Infow("daily quota reached", "run_id", result.RunID, "attempts", attempts)
			break
		}

		logged, err := d.ledger.Logged(ctx, day, domain.NormalizeEmail(lead.Email))
		if err != nil {
			return result, fmt.Errorf("check send log: %w", err)
		}
		if logged {
			result.SkippedQuota++
			continue
		}

		if lead.Company != "" {
			count, err := d.ledger.CompanyCountOn(ctx, day, lead.Company)
			if err != nil {
				return result, fmt.Errorf("check company cap: %w", err)
			}
			if count >= d.maxPerCompany {
				result.SkippedQuota++
				logger.Logger.Debugw("company cap reached",
					"company", lead.Company, "email", lead.Email)
				continue
			}
		}

		outcome := d.attempt(ctx, lead)
		entry := &domain.SendLogEntry{
			SendDate: day,
			SentAt:   d.now().UTC(),
			Email:    domain.NormalizeEmail(lead.Email),
			PersonID: lead.PersonID,
			Company:  lead.Company,
			Subject:  outcomeSubject(outcome.message),
			Status:   outcome.status,
			RunID:    result.RunID,
		}
		if _, err := d.ledger.Record(ctx, entry); err != nil {
			return result, fmt.Errorf("record send attempt: %w", err)
		}

		result.Attempted++
		if outcome.status == domain.OutcomeSent {
			result.Sent++
			logger.Logger.Infow("sent", "email", lead.Email, "company", lead.Company)
		} else {
			result.Failed++
			logger.Logger.Warnw("send failed",
				"email", lead.Email, "status", outcome.status)
		}

		// Pace every attempt, success or failure.
		if err := sleepCtx(ctx, d.sendDelay); err != nil {
			d.notify(context.WithoutCancel(ctx), d.summary(result))
			return result, err
		}
	}

	logger.Logger.Infow("dispatch finished",
		"run_id", result.RunID,
		"attempted", result.Attempted,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.SkippedQuota)
	d.notify(ctx, d.summary(result))

	return result, nil
}

// filter keeps leads with a plausible, deliverable, non-suppressed address.
func (d *Dispatcher) filter(leads []domain.Lead) []domain.Lead {
	eligible := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if !domain.ValidEmail(lead.Email) {
			continue
		}
		if !lead.EmailStatus.Deliverable() {
			continue
		}
		if _, blocked := d.doNotContact[domain.NormalizeEmail(lead.Email)]; blocked {
			continue
		}
		eligible = append(eligible, lead)
	}
	return eligible
}

// attemptOutcome carries one attempt's ledger status and rendered message.
type attemptOutcome struct {
	status  string
	message *domain.OutreachMessage
}

// attempt renders and sends one message, translating any failure into a
// ledger outcome string. Failures never abort the run.
func (d *Dispatcher) attempt(ctx context.Context, lead domain.Lead) attemptOutcome {
	msg, err := d.renderer.Render(lead)
	if err != nil {
		return attemptOutcome{status: domain.ExceptionOutcome(err)}
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			return attemptOutcome{status: domain.ErrorOutcome(remote.StatusCode, remote.Detail), message: msg}
		}
		return attemptOutcome{status: domain.ExceptionOutcome(err), message: msg}
	}

	return attemptOutcome{status: domain.OutcomeSent, message: msg}
}

// notify sends the run summary, logging delivery problems without failing
// the run.
func (d *Dispatcher) notify(ctx context.Context, message string) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Notify(ctx, message); err != nil {
		logger.Logger.Warnw("notification failed", "error", err)
	}
}

func (d *Dispatcher) summary(result *DispatchResult) string {
	return fmt.Sprintf("Dispatch run %s: %d sent, %d failed, %d skipped, %d eligible.",
		result.RunID, result.Sent, result.Failed, result.SkippedQuota, result.Eligible)
}

func outcomeSubject(msg *domain.OutreachMessage) string {
	if msg == nil {
		return ""
	}
	return msg.Subject
}
