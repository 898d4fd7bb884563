// Package requestid stores a per-request correlation id in the context.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New returns a fresh request id.
func New() string {
	return uuid.NewString()
}

// WithContext returns a copy of ctx carrying the request id.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id or "" if none is set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
