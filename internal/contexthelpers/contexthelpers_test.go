package contexthelpers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/biosecure/internal/contexthelpers"
	"github.com/stretchr/testify/require"
)

func TestSettersAndGetters(t *testing.T) {
	r := httptest.NewRequest("GET", "/assessment", nil)
	require.Empty(t, contexthelpers.CurrentPath(r.Context()))

	r = contexthelpers.SetCurrentPath(r, "/assessment")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetRequestID(r, "req-1")

	ctx := r.Context()
	require.Equal(t, "/assessment", contexthelpers.CurrentPath(ctx))
	require.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	require.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	require.Equal(t, "req-1", contexthelpers.RequestID(ctx))
	require.Empty(t, contexthelpers.RequestID(context.Background()))
}
