package dispatch

import (
	"context"

	"github.com/google/uuid"
)

// AccountStore reads the dispatcher's slice of an account row.
type AccountStore interface {
	// Account returns the account by id. A missing row is reported as
	// ErrAccountNotFound.
	Account(ctx context.Context, id uuid.UUID) (*Account, error)
}

// DeliveryRecorder appends immutable email history rows. The two operations
// are independent of each other and of the usage ledger; a failure in one
// never rolls back the others.
type DeliveryRecorder interface {
	// RecordOutbound writes exactly one sent/scheduled row under the
	// sending account.
	RecordOutbound(ctx context.Context, rec EmailRecord) error

	// RecordInboundBatch writes one inbox row per resolved internal
	// recipient. Each row carries its own fresh created_at: recipients see
	// the message as newly arrived.
	RecordInboundBatch(ctx context.Context, recs []EmailRecord) error
}

// RecipientResolver determines which recipient addresses are registered
// sender identities of some account on the platform.
//
// The lookup spans all accounts' identities, not just the caller's, so it
// runs with elevated data scope. It is a deliberate trust boundary: only
// the dispatcher's internal-delivery step may invoke it, and never with a
// caller-chosen account id.
type RecipientResolver interface {
	// ResolveOwners maps each matched address to its owning account id.
	// Matching is exact and case-sensitive; unmatched addresses are simply
	// absent from the result.
	ResolveOwners(ctx context.Context, addresses []string) (map[string]uuid.UUID, error)
}
