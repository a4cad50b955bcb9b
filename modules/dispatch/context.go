package dispatch

import (
	"context"

	"github.com/google/uuid"
)

type accountIDCtxKey struct{}

// WithAccountID stores the authenticated account id in the context.
func WithAccountID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDCtxKey{}, id)
}

// AccountIDFromContext retrieves the authenticated account id, if present.
func AccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDCtxKey{}).(uuid.UUID)
	return id, ok
}
