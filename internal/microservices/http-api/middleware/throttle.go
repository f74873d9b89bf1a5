package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"watchmate/internal/throttle"

	"github.com/gin-gonic/gin"
)

// ThrottleScope is a named rate-limit bucket. AnonOnly scopes ignore
// authenticated callers.
type ThrottleScope struct {
	Name     string
	Rate     throttle.Rate
	AnonOnly bool
}

// Throttle checks every scope in order and rejects the request with 429 as
// soon as one is exhausted. Limiter failures are logged and let through.
func Throttle(limiter throttle.Limiter, logger *slog.Logger, scopes ...ThrottleScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, scope := range scopes {
			if scope.AnonOnly && user != nil {
				continue
			}

			ident := "ip:" + c.ClientIP()
			if user != nil {
				ident = "user:" + user.ID
			}

			result, err := limiter.Allow(c.Request.Context(), scope.Name+":"+ident, scope.Rate)
			if err != nil {
				logger.Error("throttle check failed", "scope", scope.Name, "error", err)
				continue
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if !result.Allowed {
				wait := int(math.Ceil(result.RetryAfter.Seconds()))
				c.Header("Retry-After", strconv.Itoa(wait))
				logger.Info("request throttled", "scope", scope.Name, "ident", ident, "retry_after", result.RetryAfter.Round(time.Second))
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"detail": fmt.Sprintf("Request was throttled. Expected available in %d seconds.", wait),
				})
				return
			}
		}
		c.Next()
	}
}
