package middleware

import (
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	echo "github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig config for the Redis-based per-client limiter.
type RateLimitConfig struct {
	Redis          *redis.Client
	Limit          int           // requests per window; <= 0 disables
	KeyPrefix      string        // e.g. "rl:auth:"
	Window         time.Duration // usually 1m
	RetryAfterHint bool          // set Retry-After header when limited
}

// RateLimitMiddleware applies a fixed-window limit keyed by client IP.
// Redis errors fail open.
func RateLimitMiddleware(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:auth:"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Limit <= 0 || cfg.Redis == nil {
				return next(c)
			}

			// fixed-window key: rl:auth:{ip}:{window_start}
			now := time.Now()
			slot := now.UnixNano() / int64(cfg.Window)
			key := cfg.KeyPrefix + c.RealIP() + ":" + strconv.FormatInt(slot, 10)

			ctx := c.Request().Context()
			pipe := cfg.Redis.Pipeline()
			cnt := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cfg.Window*2)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c)
			}

			if cnt.Val() > int64(cfg.Limit) {
				metrics.AuthAttemptsTotal.WithLabelValues(path.Base(c.Path()), "limited").Inc()
				if cfg.RetryAfterHint {
					remain := cfg.Window - time.Duration(now.UnixNano()%int64(cfg.Window))
					secs := int((remain + time.Second - 1) / time.Second)
					c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				}
				return c.JSON(http.StatusTooManyRequests, errorBody{"Too many requests, try again later"})
			}
			return next(c)
		}
	}
}
