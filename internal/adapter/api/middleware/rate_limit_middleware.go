package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flicklit/internal/infrastructure/ratelimit"
	"flicklit/pkg/logger"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles the given action per authenticated user, falling back to
// the client IP for unauthenticated routes.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := c.Get("uid").(string)
			if subject == "" {
				subject = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(subject, action)
			if !allowed {
				logger.Warn("Rate limit exceeded: subject=%s action=%s", subject, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(wait.Seconds()),
				})
			}

			return next(c)
		}
	}
}
