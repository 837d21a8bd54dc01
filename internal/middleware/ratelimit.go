package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// visitorIdle is how long a client's bucket survives without traffic.
const visitorIdle = 3 * time.Minute

// RateLimitConfig sets the per-client token bucket.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// RateLimit limits each client IP to cfg.RPS requests per second with bursts
// of cfg.Burst. Rejected requests get 429 with a Retry-After header.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	visitors := cache.New(visitorIdle, time.Minute)
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/cfg.RPS))))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		var limiter *rate.Limiter
		if v, ok := visitors.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
			if err := visitors.Add(ip, limiter, cache.DefaultExpiration); err != nil {
				// Another request registered this client first.
				if v, ok := visitors.Get(ip); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}
		// Sliding idle window.
		visitors.SetDefault(ip, limiter)

		if !limiter.Allow() {
			c.Header("Retry-After", retryAfter)
			pkg.Error(c, domain.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
