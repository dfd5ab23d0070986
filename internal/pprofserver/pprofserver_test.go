package pprofserver_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/biosecure/internal/pprofserver"
	"github.com/myrjola/biosecure/internal/testhelpers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestHandle_metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "biosecure_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	mux := http.NewServeMux()
	pprofserver.Handle(mux, registry)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "biosecure_test_total 1")
}

func TestLaunch_refusesPublicAddress(t *testing.T) {
	logger := testhelpers.NewLogger(io.Discard)
	err := pprofserver.Launch(context.Background(), "0.0.0.0:0", prometheus.NewRegistry(), logger)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, pprofserver.Launch(ctx, "127.0.0.1:0", prometheus.NewRegistry(), logger))
}
