package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitalsd/vitalsd/internal/platform/metrics"
)

// Metrics records per-request counters and latency. The route label uses the
// registered route pattern, not the raw path, to keep cardinality bounded.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
