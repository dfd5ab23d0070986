package contexthelpers

import (
	"context"
)

func value(ctx context.Context, key contextKey) string {
	v, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return v
}

func CurrentPath(ctx context.Context) string {
	return value(ctx, currentPathContextKey)
}

func CSRFToken(ctx context.Context) string {
	return value(ctx, csrfTokenContextKey)
}

// CSPNonce is the nonce allowed by the Content-Security-Policy header of the current response.
func CSPNonce(ctx context.Context) string {
	return value(ctx, cspNonceContextKey)
}

func RequestID(ctx context.Context) string {
	return value(ctx, requestIDContextKey)
}
