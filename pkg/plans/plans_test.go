package plans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailico/mailico/pkg/plans"
)

func TestLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		plan string
		want int64
	}{
		{"free", 3000},
		{"pro", 50000},
		{"enterprise", plans.Unlimited},
		{"Free", 3000},
		{"PRO", 50000},
		{" pro ", 50000},
		{"", 3000},
		{"platinum", 3000}, // unknown tiers get the most restrictive ceiling
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, plans.Limit(tt.plan))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pro", plans.Resolve("pro").Name)
	assert.Equal(t, "free", plans.Resolve("gold").ID)
}

func TestFormatLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3,000", plans.FormatLimit(3000))
	assert.Equal(t, "50,000", plans.FormatLimit(50000))
	assert.Equal(t, "unlimited", plans.FormatLimit(plans.Unlimited))
}

func TestIsUnlimited(t *testing.T) {
	t.Parallel()

	assert.True(t, plans.IsUnlimited(plans.Unlimited))
	assert.False(t, plans.IsUnlimited(0))
	assert.False(t, plans.IsUnlimited(3000))
}
