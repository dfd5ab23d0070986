package contexthelpers

import (
	"context"
	"net/http"
)

func with(r *http.Request, key contextKey, v string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, v))
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return with(r, currentPathContextKey, currentPath)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	return with(r, csrfTokenContextKey, csrfToken)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	return with(r, cspNonceContextKey, nonce)
}

func SetRequestID(r *http.Request, requestID string) *http.Request {
	return with(r, requestIDContextKey, requestID)
}
