package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m, err := NewHTTPMetricsWithRegisterer(registry, Config{ServiceName: "classifieds", Environment: "test"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	families, err := registry.Gather()
	require.NoError(t, err)

	var counter *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "classifieds_http_requests_total" {
			counter = mf
		}
	}
	require.NotNil(t, counter)
	require.Len(t, counter.GetMetric(), 1)
	assert.Equal(t, float64(2), counter.GetMetric()[0].GetCounter().GetValue())

	labels := map[string]string{}
	for _, lp := range counter.GetMetric()[0].GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	assert.Equal(t, "/health", labels["route"])
	assert.Equal(t, "200", labels["status_code"])
	assert.Equal(t, "test", labels["env"])
}
