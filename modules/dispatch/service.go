package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mailico/mailico/pkg/logger"
	"github.com/mailico/mailico/pkg/mailer"
	"github.com/mailico/mailico/pkg/plans"
	"github.com/mailico/mailico/pkg/quota"
)

// Service orchestrates a single send end to end: validation, credential
// lookup, quota check, provider delivery, then best-effort history
// recording, internal fan-out, and usage accounting.
type Service struct {
	accounts AccountStore
	recorder DeliveryRecorder
	resolver RecipientResolver
	ledger   quota.Ledger
	sender   mailer.Sender
	log      *slog.Logger
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the service clock. Used by tests to pin timestamps
// and period keys.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a dispatcher from its collaborators.
func NewService(
	accounts AccountStore,
	recorder DeliveryRecorder,
	resolver RecipientResolver,
	ledger quota.Ledger,
	sender mailer.Sender,
	log *slog.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		accounts: accounts,
		recorder: recorder,
		resolver: resolver,
		ledger:   ledger,
		sender:   sender,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch sends one email for the authenticated account.
//
// Everything up to and including the provider call short-circuits with a
// fatal error and leaves no state behind. Once the provider accepts the
// message the outcome is success: record writes, inbox fan-out, and the
// usage increment are each best-effort, accumulated as Degradations on the
// Result and logged, never surfaced as a request failure. The caller must
// not be told a send failed when it actually went out, and must never be
// charged for one that did not.
func (s *Service) Dispatch(ctx context.Context, accountID uuid.UUID, req SendRequest) (*Result, error) {
	if accountID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	recipients := ParseRecipients(req.To)

	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	scheduled := !scheduledAt.IsZero()

	account, err := s.accounts.Account(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	if account.ProviderAPIKey == "" {
		return nil, ErrNotConfigured
	}

	plan := plans.Resolve(account.Plan)
	periodKey := quota.PeriodKey(s.now())

	current, err := s.ledger.Current(ctx, accountID, periodKey)
	if err != nil {
		return nil, err
	}
	if !quota.CanSend(current, plan.MonthlyLimit) {
		return nil, &QuotaExceededError{Plan: plan.ID, Limit: plan.MonthlyLimit, Used: current}
	}

	params := mailer.SendParams{
		FromHeader: mailer.FormatFromHeader(req.FromName, req.From),
		To:         recipients,
		Subject:    req.Subject,
		Body:       req.Message,
	}
	if scheduled {
		params.ScheduledAt = scheduledAt.Format(time.RFC3339)
	}

	deliveryID, err := s.sender.Send(ctx, account.ProviderAPIKey, params)
	if err != nil {
		return nil, errors.Join(ErrProvider, err)
	}

	result := &Result{
		DeliveryID:  deliveryID,
		Direction:   DirectionSent,
		Recipients:  recipients,
		ScheduledAt: scheduledAt,
	}
	if scheduled {
		result.Direction = DirectionScheduled
	}

	// The message is out. A caller disconnect must not skip the
	// bookkeeping below, so post-send steps run detached from the request's
	// cancellation.
	ctx = context.WithoutCancel(ctx)

	s.recordOutbound(ctx, account, req, result)
	if !scheduled {
		s.fanOut(ctx, account, req, result)
	}
	s.countUsage(ctx, accountID, periodKey, result)

	for _, d := range result.Degradations {
		s.log.ErrorContext(ctx, "post-send step failed",
			logger.AccountID(accountID),
			slog.String("step", d.Step),
			slog.String("delivery_id", deliveryID),
			logger.Error(d.Err),
		)
	}

	return result, nil
}

// Usage reports the caller's consumption against its plan ceiling for the
// current period.
func (s *Service) Usage(ctx context.Context, accountID uuid.UUID) (*UsageInfo, error) {
	if accountID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	account, err := s.accounts.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	plan := plans.Resolve(account.Plan)
	current, err := s.ledger.Current(ctx, accountID, quota.PeriodKey(s.now()))
	if err != nil {
		return nil, err
	}

	return &UsageInfo{Plan: plan.ID, EmailsSent: current, Limit: plan.MonthlyLimit}, nil
}

func (s *Service) recordOutbound(ctx context.Context, account *Account, req SendRequest, result *Result) {
	rec := EmailRecord{
		ID:        uuid.New(),
		AccountID: account.ID,
		Direction: result.Direction,
		From:      req.From,
		To:        result.Recipients,
		Subject:   req.Subject,
		Body:      req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.recorder.RecordOutbound(ctx, rec); err != nil {
		result.Degradations = append(result.Degradations, Degradation{Step: StepRecordOutbound, Err: err})
	}
}

// fanOut delivers an internal inbox copy to every recipient address that
// belongs to a registered account. Only immediate sends reach here:
// deferred delivery is the provider's job, and this core has no callback
// path to fan out a scheduled message at its eventual delivery time.
func (s *Service) fanOut(ctx context.Context, account *Account, req SendRequest, result *Result) {
	owners, err := s.resolver.ResolveOwners(ctx, result.Recipients)
	if err != nil {
		result.Degradations = append(result.Degradations, Degradation{Step: StepResolveRecipients, Err: err})
		return
	}
	if len(owners) == 0 {
		return
	}

	// Inbox rows get their own created_at: the recipient sees the message
	// as newly arrived, not backdated to the original send.
	receivedAt := s.now().UTC()

	recs := make([]EmailRecord, 0, len(owners))
	for _, addr := range result.Recipients {
		ownerID, ok := owners[addr]
		if !ok {
			continue
		}
		recs = append(recs, EmailRecord{
			ID:        uuid.New(),
			AccountID: ownerID,
			Direction: DirectionInbox,
			From:      req.From,
			To:        result.Recipients,
			Subject:   req.Subject,
			Body:      req.Message,
			CreatedAt: receivedAt,
		})
	}

	if err := s.recorder.RecordInboundBatch(ctx, recs); err != nil {
		result.Degradations = append(result.Degradations, Degradation{Step: StepRecordInbound, Err: err})
	}
}

func (s *Service) countUsage(ctx context.Context, accountID uuid.UUID, periodKey string, result *Result) {
	if err := s.ledger.Increment(ctx, accountID, periodKey); err != nil {
		result.Degradations = append(result.Degradations, Degradation{Step: StepIncrementUsage, Err: err})
	}
}
