package dispatch

import (
	"fmt"
	"strings"
	"time"
)

// ParseRecipients splits a raw comma-separated recipient field into the
// canonical recipient list: whitespace trimmed, empty tokens dropped, order
// preserved. Duplicates are kept; deduplication is not part of the contract.
func ParseRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// parseScheduledAt normalizes an optional schedule value to an absolute UTC
// instant. An empty value means immediate delivery and returns the zero time.
func parseScheduledAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: scheduledAt must be an RFC3339 timestamp: %v", ErrInvalidRequest, err)
	}
	return ts.UTC(), nil
}

// validate rejects requests missing any required field, before any external
// call is made.
func (r SendRequest) validate() error {
	var missing []string
	if strings.TrimSpace(r.From) == "" {
		missing = append(missing, "from")
	}
	if len(ParseRecipients(r.To)) == 0 {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(r.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields (%s)", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}
