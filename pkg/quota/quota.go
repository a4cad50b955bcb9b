package quota

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mailico/mailico/pkg/plans"
)

// Usage is the per-account, per-period send counter row.
type Usage struct {
	AccountID  uuid.UUID
	PeriodKey  string
	EmailsSent int64
}

// Ledger reads and advances the per-account send counter for a billing
// period.
//
// The check-then-increment sequence around a send is deliberately not
// atomic: concurrent sends for one account can each observe a counter below
// the ceiling and all proceed, overshooting the limit by at most the
// concurrency. Increment itself is atomic, so counters never lose updates
// or split into duplicate rows.
type Ledger interface {
	// Current returns the emails sent so far for the account/period.
	// A period with no activity reads as zero.
	Current(ctx context.Context, accountID uuid.UUID, periodKey string) (int64, error)

	// Increment adds one send to the account/period counter, creating the
	// row on first use.
	Increment(ctx context.Context, accountID uuid.UUID, periodKey string) error
}

// CanSend reports whether a counter value permits one more send under the
// given ceiling.
func CanSend(current, limit int64) bool {
	if plans.IsUnlimited(limit) {
		return true
	}
	return current < limit
}

// PeriodKey derives the billing-period key for an instant: the UTC calendar
// month, e.g. "2026-08". Period boundaries are owned by billing; the core
// only needs a stable key for "the current period".
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
