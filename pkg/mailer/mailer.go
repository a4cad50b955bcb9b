package mailer

import (
	"context"
	"fmt"
	"strings"
)

// DefaultFromName is used as the display name when a sender identity has
// none configured.
const DefaultFromName = "Mailico"

// SendParams carries a single outbound message to the delivery provider.
type SendParams struct {
	FromHeader  string   `json:"from_header"`            // Formatted "Name <address>" sender header
	To          []string `json:"to"`                     // Recipient addresses
	Subject     string   `json:"subject"`                // Subject line, may be empty
	Body        string   `json:"body"`                   // Message content, rendered as HTML
	ScheduledAt string   `json:"scheduled_at,omitempty"` // RFC3339 instant for deferred delivery; empty sends immediately
}

// Validate checks that the params can form a deliverable message.
func (p SendParams) Validate() error {
	if p.FromHeader == "" {
		return fmt.Errorf("%w: from header is required", ErrInvalidParams)
	}
	if len(p.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidParams)
	}
	if p.Body == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}

// Sender delivers messages through an external provider.
//
// The API key is per call rather than per client: every account sends with
// its own provider credential, so a process serves many keys.
type Sender interface {
	// Send transmits the message and returns the provider's delivery id.
	Send(ctx context.Context, apiKey string, params SendParams) (string, error)
}

// FormatFromHeader renders the provider's expected "Name <address>" sender
// header, substituting the product name when no display name is set.
func FormatFromHeader(name, address string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFromName
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
