package middleware

import (
	"strconv"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	echo "github.com/labstack/echo/v4"
)

// Metrics records request count and latency per route pattern, so
// /api/customers/:id/status is one series regardless of id. It must wrap the
// request logger: errors reaching it have already been written.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
