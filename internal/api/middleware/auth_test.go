package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueredo/amazon-sp-proxy/internal/api/handlers"
	"github.com/mfigueredo/amazon-sp-proxy/internal/identity"
)

type fakeVerifier struct {
	userID string
	err    error
	calls  int
}

func (v *fakeVerifier) Verify(_ context.Context, _ string) (string, error) {
	v.calls++
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

func authTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		authHeader string
		verifier   *fakeVerifier
		wantStatus int
		wantUserID string
		wantVerify bool
	}{
		{
			name:       "valid token resolves user",
			path:       "/api/v1/products",
			authHeader: "Bearer good-token",
			verifier:   &fakeVerifier{userID: "user-1"},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
			wantVerify: true,
		},
		{
			name:       "missing header rejected",
			path:       "/api/v1/products",
			verifier:   &fakeVerifier{userID: "user-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header rejected",
			path:       "/api/v1/products",
			authHeader: "Basic dXNlcjpwYXNz",
			verifier:   &fakeVerifier{userID: "user-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			path:       "/api/v1/products",
			authHeader: "Bearer bad-token",
			verifier:   &fakeVerifier{err: identity.ErrUnauthorized},
			wantStatus: http.StatusUnauthorized,
			wantVerify: true,
		},
		{
			name:       "auth service failure maps to 401",
			path:       "/api/v1/products",
			authHeader: "Bearer token",
			verifier:   &fakeVerifier{err: errors.New("connection refused")},
			wantStatus: http.StatusUnauthorized,
			wantVerify: true,
		},
		{
			name:       "healthz exempt",
			path:       "/healthz",
			verifier:   &fakeVerifier{userID: "user-1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "metrics exempt",
			path:       "/metrics",
			verifier:   &fakeVerifier{userID: "user-1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "docs exempt",
			path:       "/docs",
			verifier:   &fakeVerifier{userID: "user-1"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUserID string
			e := echo.New()
			e.Use(Auth(tt.verifier, authTestLogger()))
			e.Any(tt.path, func(c echo.Context) error {
				gotUserID, _ = identity.UserIDFromContext(c.Request().Context())
				return c.NoContent(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUserID != "" {
				assert.Equal(t, tt.wantUserID, gotUserID)
			}
			if tt.wantVerify {
				require.Equal(t, 1, tt.verifier.calls)
			} else {
				assert.Zero(t, tt.verifier.calls)
			}
		})
	}
}

func TestAuth_UnauthorizedBody(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(Auth(&fakeVerifier{err: identity.ErrUnauthorized}, authTestLogger()))
	e.GET("/api/v1/products", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "invalid token")

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "invalid token", body.Error)
}
