package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckFunc reports whether one dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps dependency names to their readiness probes.
type Checks map[string]CheckFunc

// RegisterAdminRoutes registers liveness, readiness and metrics endpoints.
// gatherer is what /metrics exposes (usually prometheus.DefaultGatherer).
func RegisterAdminRoutes(r *gin.Engine, checks Checks, gatherer prometheus.Gatherer, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		errs := map[string]string{}
		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				deps[name] = false
				errs[name] = err.Error()
				ready = false
				continue
			}
			deps[name] = true
		}

		body := gin.H{"deps": deps, "uptime": time.Since(started).Round(time.Second).String()}
		if !ready {
			body["status"] = "not_ready"
			body["errors"] = errs
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
