package client

import (
	"context"
)

// PrincipalHeader carries the calling principal on every service request.
const PrincipalHeader = "X-Principal"

type callerKey struct{}

// WithCaller attaches the principal on whose behalf service calls are made.
func WithCaller(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, callerKey{}, principal)
}

func CallerFrom(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(callerKey{}).(string)
	return p, ok && p != ""
}
