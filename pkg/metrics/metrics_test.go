package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/products/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for _, id := range []string{"a", "b", "missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/products/:id", "404")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ObserveOrder(108.99)
	m.ObserveOrder(10)
	m.ObserveCartAdd()
	m.ObserveRollup(true)
	m.ObserveRollup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersCreated))
	assert.InDelta(t, 118.99, testutil.ToFloat64(m.OrderRevenue), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartItemsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RollupRuns.WithLabelValues("false")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveOrder(1) })
}
