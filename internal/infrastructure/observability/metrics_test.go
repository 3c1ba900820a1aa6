package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmitacart/catalog-api/internal/infrastructure/observability"
)

func TestCollector_MetricasDeNegocio(t *testing.T) {
	c := observability.NewCollector("zmitacart")

	c.MutationDone("create", "ok")
	c.MutationDone("create", "ok")
	c.MutationDone("update", "invalid_operation")
	c.LevelQueries(3)
	c.LevelQueries(0)
	c.CacheLookup(true)
	c.CacheLookup(false)
	c.CacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Mutations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Mutations.WithLabelValues("update", "invalid_operation")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.LevelQueried))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.CacheLookups.WithLabelValues("miss")))
}

func TestCollector_RegistrosIndependientes(t *testing.T) {
	a := observability.NewCollector("zmitacart")
	b := observability.NewCollector("zmitacart")

	a.MutationDone("delete", "ok")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Mutations.WithLabelValues("delete", "ok")))
}

func TestCollector_Handler(t *testing.T) {
	c := observability.NewCollector("zmitacart")
	c.ObserveHTTP(http.MethodGet, "/api/categories/superiors", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `zmitacart_http_requests_total{method="GET",route="/api/categories/superiors",status="200"} 1`)
	assert.Contains(t, string(body), "zmitacart_http_request_duration_seconds_bucket")
}
