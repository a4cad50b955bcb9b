package dispatch

import (
	"time"

	"github.com/google/uuid"
)

// Direction classifies an email history record.
type Direction string

const (
	// DirectionSent marks the sender's copy of an immediately delivered email.
	DirectionSent Direction = "sent"
	// DirectionScheduled marks the sender's copy of a deferred email.
	DirectionScheduled Direction = "scheduled"
	// DirectionInbox marks a copy delivered to another account on the platform.
	DirectionInbox Direction = "inbox"
)

// Account is the slice of the account row the dispatcher needs: plan for
// the quota ceiling, the provider credential, and display data.
type Account struct {
	ID             uuid.UUID
	Email          string
	Name           string
	Plan           string
	ProviderAPIKey string
}

// SenderIdentity is a verified "From" address belonging to an account.
type SenderIdentity struct {
	ID        int64
	AccountID uuid.UUID
	Name      string
	Address   string
	Verified  bool
}

// SendRequest is the wire shape of a send call. To holds one or more
// comma-separated recipient addresses under the legacy field name "email".
type SendRequest struct {
	From        string `json:"from"`
	FromName    string `json:"fromName,omitempty"`
	To          string `json:"email"`
	Subject     string `json:"subject,omitempty"`
	Message     string `json:"message"`
	ScheduledAt string `json:"scheduledAt,omitempty"`
}

// EmailRecord is one append-only history row. Rows are never updated or
// deleted once written.
type EmailRecord struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Direction Direction
	From      string
	To        []string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Degradation is a non-fatal post-send failure. The email was delivered;
// some bookkeeping around it was not.
type Degradation struct {
	Step string
	Err  error
}

// Post-send step names used in Degradation and operational logs.
const (
	StepRecordOutbound    = "record_outbound"
	StepResolveRecipients = "resolve_recipients"
	StepRecordInbound     = "record_inbound"
	StepIncrementUsage    = "increment_usage"
)

// Result is the outcome of a successful dispatch. Degradations lists
// post-send bookkeeping failures that did not affect delivery.
type Result struct {
	DeliveryID   string
	Direction    Direction
	Recipients   []string
	ScheduledAt  time.Time
	Degradations []Degradation
}

// UsageInfo reports an account's consumption against its plan ceiling.
type UsageInfo struct {
	Plan       string `json:"plan"`
	EmailsSent int64  `json:"emails_sent"`
	Limit      int64  `json:"limit"`
}
