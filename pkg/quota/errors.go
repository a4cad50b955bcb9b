package quota

import "errors"

var (
	// ErrLedgerUnavailable wraps storage failures while reading or advancing
	// a usage counter.
	ErrLedgerUnavailable = errors.New("quota.errors.ledger_unavailable")
)
