package dispatch

import (
	"errors"
	"fmt"

	"github.com/mailico/mailico/pkg/plans"
)

var (
	// ErrUnauthenticated means no verified caller identity accompanied the
	// request. Nothing was attempted.
	ErrUnauthenticated = errors.New("dispatch.errors.unauthenticated")

	// ErrInvalidRequest means required fields were missing or malformed.
	// Checked before any external call.
	ErrInvalidRequest = errors.New("dispatch.errors.invalid_request")

	// ErrNotConfigured means the caller has no provider credential; no send
	// is attempted.
	ErrNotConfigured = errors.New("dispatch.errors.no_sending_credential")

	// ErrAccountNotFound is reported by AccountStore when the caller's
	// account row does not exist.
	ErrAccountNotFound = errors.New("dispatch.errors.account_not_found")

	// ErrProvider wraps a delivery provider rejection. The send genuinely
	// did not happen: no record is written, no usage is counted.
	ErrProvider = errors.New("dispatch.errors.provider_rejected")
)

// QuotaExceededError is returned when the account's counter is at or above
// its plan ceiling. The send is refused before the provider is called, so a
// rejected request never costs a real send.
type QuotaExceededError struct {
	Plan  string
	Limit int64
	Used  int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %d of %d emails used on the %s plan", e.Used, e.Limit, e.Plan)
}

// Reason renders the human-readable context surfaced to the caller, naming
// the plan and its formatted ceiling.
func (e *QuotaExceededError) Reason() string {
	return fmt.Sprintf("You have reached the %s plan limit of %s emails per month.", e.Plan, plans.FormatLimit(e.Limit))
}
