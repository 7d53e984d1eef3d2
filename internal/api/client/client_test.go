package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.SearchProducts(context.Background(), &SearchParams{Keywords: "ssd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Amazon API request failed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SearchProducts(context.Background(), &SearchParams{Keywords: "ssd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 502)")
}

func TestClient_SendsBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"numberOfResults":0,"items":[]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("secret-token"))
	_, err := c.SearchProducts(context.Background(), &SearchParams{Keywords: "ssd"})
	require.NoError(t, err)
}

func TestClient_SearchProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "ssd", r.URL.Query().Get("keywords"))
		assert.Equal(t, "de", r.URL.Query().Get("domain"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Success: true,
			Data: &amazon.CatalogSearchResponse{
				NumberOfResults: 2,
				Items: []amazon.CatalogItem{
					{ASIN: "B001"}, {ASIN: "B002"},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.SearchProducts(context.Background(), &SearchParams{
		Keywords: "ssd",
		Domain:   "de",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Len(t, resp.Data.Items, 2)
}

func TestClient_NextPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/next", r.URL.Path)
		assert.Equal(t, "tok-123", r.URL.Query().Get("pageToken"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"numberOfResults":0,"items":[]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.NextPage(context.Background(), &SearchParams{
		Keywords:  "ssd",
		PageToken: "tok-123",
	})
	require.NoError(t, err)
}

func TestClient_GetProduct(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/product/B00TEST", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ProductResponse{
			Success: true,
			Data:    &amazon.CatalogItem{ASIN: "B00TEST"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.GetProduct(context.Background(), "B00TEST", "")
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "B00TEST", resp.Data.ASIN)
}

func TestClient_GetFees(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/product/B00TEST/fees", r.URL.Path)
		assert.Equal(t, "24.99", r.URL.Query().Get("price"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.GetFees(context.Background(), "B00TEST", "", 24.99)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestClient_ValidateCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/credentials/validate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(
			`{"success":true,"data":{"userId":"u1","marketplaceDomain":"com","expiresAt":"2025-06-01T13:00:00Z"}}`,
		))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ValidateCredentials(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "u1", resp.Data.UserID)
	assert.Equal(t, "com", resp.Data.MarketplaceDomain)
}

func TestClient_InvalidateCredentialCache(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/credentials/cache", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.InvalidateCredentialCache(context.Background()))
}
