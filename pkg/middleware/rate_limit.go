package middleware

import (
	"net/http"
	"sync"

	"github.com/firepolicepension/jsoneditor/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterStore keeps one token bucket per client key.
type limiterStore struct {
	mu       sync.Mutex
	rps      float64
	burst    int
	limiters map[string]*rate.Limiter
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{rps: rps, burst: burst, limiters: make(map[string]*rate.Limiter)}
}

// get returns (and lazily creates) the limiter for key.
func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(s.rps), s.burst)
		s.limiters[key] = lim
	}
	return lim
}

// clientKey identifies the caller. There is no authentication, so the client
// IP is the only stable key.
func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func rejectRateLimited(c *gin.Context, limiter, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	metrics.RateLimitRejected.WithLabelValues(limiter).Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Rate limit exceeded"})
}

// RateLimitMiddleware enforces an in-process token bucket per client IP.
// rps = allowed events per second, burst = maximum tokens in bucket.
// Each call gets its own bucket set, so separate engines do not share state.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		if !store.get(clientKey(c)).Allow() {
			rejectRateLimited(c, "memory", "1")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
