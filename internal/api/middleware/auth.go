package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mfigueredo/amazon-sp-proxy/internal/api/handlers"
	"github.com/mfigueredo/amazon-sp-proxy/internal/identity"
)

// authSkipPaths are served without authentication.
var authSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// Auth returns Echo middleware that resolves the request's bearer token to a
// user identifier and stores it in the request context. Requests without a
// recognizable token get a 401. OpenAPI documentation paths and operational
// endpoints are exempt.
func Auth(verifier identity.Verifier, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if _, skip := authSkipPaths[path]; skip || strings.HasPrefix(path, "/docs") ||
				strings.HasPrefix(path, "/openapi") {
				return next(c)
			}

			token, ok := bearerToken(c.Request())
			if !ok {
				return unauthorized(c, "missing bearer token")
			}

			userID, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, identity.ErrUnauthorized) {
					log.Error("token verification failed", "error", err)
				}
				return unauthorized(c, "invalid token")
			}

			ctx := identity.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return auth[len(prefix):], true
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, handlers.ErrorResponse{Error: msg})
}
