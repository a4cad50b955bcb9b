package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "a@x.com", []string{"a@x.com"}},
		{"comma separated", "a@x.com,b@y.com", []string{"a@x.com", "b@y.com"}},
		{"whitespace trimmed", "a@x.com,  b@y.com", []string{"a@x.com", "b@y.com"}},
		{"mixed spacing", "a@x.com, b@y.com ,c@z.com", []string{"a@x.com", "b@y.com", "c@z.com"}},
		{"empty tokens dropped", "a@x.com,,b@y.com,", []string{"a@x.com", "b@y.com"}},
		{"only separators", " , ,", []string{}},
		{"empty", "", []string{}},
		{"duplicates kept", "a@x.com,a@x.com", []string{"a@x.com", "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseRecipients(tt.raw))
		})
	}
}

func TestParseScheduledAt(t *testing.T) {
	t.Parallel()

	t.Run("empty means immediate", func(t *testing.T) {
		t.Parallel()

		ts, err := parseScheduledAt("")
		require.NoError(t, err)
		assert.True(t, ts.IsZero())
	})

	t.Run("valid instant normalized to UTC", func(t *testing.T) {
		t.Parallel()

		ts, err := parseScheduledAt("2026-01-01T02:00:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ts)
	})

	t.Run("unparseable", func(t *testing.T) {
		t.Parallel()

		_, err := parseScheduledAt("tomorrow")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestSendRequestValidate(t *testing.T) {
	t.Parallel()

	valid := SendRequest{From: "a@x.com", To: "b@y.com", Message: "hello"}
	assert.NoError(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(*SendRequest)
	}{
		{"missing from", func(r *SendRequest) { r.From = "" }},
		{"blank from", func(r *SendRequest) { r.From = "   " }},
		{"missing recipients", func(r *SendRequest) { r.To = "" }},
		{"only separators", func(r *SendRequest) { r.To = " , " }},
		{"missing message", func(r *SendRequest) { r.Message = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := valid
			tt.mutate(&r)
			assert.ErrorIs(t, r.validate(), ErrInvalidRequest)
		})
	}
}
