package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveUpstream("orders.list", time.Now(), nil)
	m.ObserveUpstream("orders.list", time.Now(), errors.New("boom"))
	m.MigrationFinished("success")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rr.Result().Body)
	require.NoError(t, err)

	out := string(body)
	require.True(t, strings.Contains(out, `bookdesk_upstream_requests_total{endpoint="orders.list",outcome="ok"} 1`))
	require.True(t, strings.Contains(out, `bookdesk_upstream_requests_total{endpoint="orders.list",outcome="error"} 1`))
	require.True(t, strings.Contains(out, `bookdesk_migrations_total{state="success"} 1`))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveUpstream("orders.list", time.Now(), nil)
	m.MigrationFinished("failed")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
