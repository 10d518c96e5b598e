package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/firepolicepension/jsoneditor/pkg/logger"
	"github.com/firepolicepension/jsoneditor/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCORSHeaderOnEveryResponse(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.JSON(200, gin.H{}) })

	require.Equal(t, "*", serve(r, "GET", "/x", "").Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "*", serve(r, "GET", "/missing", "").Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryAnswers500JSON(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, "GET", "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
	require.Contains(t, buf.String(), "kaboom")
}

func TestRequestLogSetsIDAndCounts(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	r := gin.New()
	r.Use(RequestLog())
	r.GET("/api/thing", func(c *gin.Context) { c.String(200, "ok") })

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/thing", "200"))
	w := serve(r, "GET", "/api/thing", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/thing", "200")))
	require.Contains(t, buf.String(), "method=GET path=/api/thing status=200")

	// a caller-supplied id is echoed back
	req := httptest.NewRequest("GET", "/api/thing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	noneBefore := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "none", "404"))
	serve(r, "GET", "/nope", "")
	require.Equal(t, noneBefore+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "none", "404")))
}
