package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mfigueredo/amazon-sp-proxy/internal/identity"
)

const requestIDHeader = "X-Request-ID"

// healthPaths get success-suppressed logging: the first success after a
// failure (or ever) is logged, repeated successes are not, and failures are
// always logged at WARN. Probes hit these paths every few seconds.
var healthPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured
// fields. It generates a request ID if none is provided and propagates it
// through the response header and echo context. The authenticated user, if
// the auth middleware ran first, is included in the log line.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var mu sync.Mutex
	healthOK := make(map[string]bool)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			success := status >= 200 && status < 300

			level := slog.LevelInfo
			if _, health := healthPaths[path]; health {
				mu.Lock()
				suppressed := success && healthOK[path]
				healthOK[path] = success
				mu.Unlock()

				if suppressed {
					return err
				}
				if !success {
					level = slog.LevelWarn
				}
			}

			attrs := []any{
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}
			if userID, ok := identity.UserIDFromContext(c.Request().Context()); ok {
				attrs = append(attrs, "user_id", userID)
			}
			log.Log(c.Request().Context(), level, "request", attrs...)

			return err
		}
	}
}
