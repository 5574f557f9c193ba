package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New()

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/ping", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/metrics", c.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	c.ObserveStage("poster", "no_json")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/ping", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "unknown", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.aiStages.WithLabelValues("poster", "no_json")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `basedcaster_ai_stage_outcomes_total{stage="poster",status="no_json"} 1`)
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveStage("analysis", "ok")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.aiStages.WithLabelValues("analysis", "ok")))
}
