package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shortpanel/internal/api"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.NewClient(server.URL, time.Second, zap.NewNop())
}

func TestClient_Shorten(t *testing.T) {
	t.Run("creates short link", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/shorten", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{
				"short_code": "abc123",
				"short_url": "https://short.example/abc123",
				"original_url": "https://example.com",
				"created_at": "2024-01-01T00:00:00Z",
				"clicks": 0
			}`)
		}))

		result, err := client.Shorten(context.Background(), api.ShortenRequest{
			OriginalURL: "https://example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "abc123", result.ShortCode)
		assert.Equal(t, "https://short.example/abc123", result.ShortURL)
		assert.Equal(t, "https://example.com", result.OriginalURL)
		assert.Nil(t, result.ExpiresAt)
		assert.Zero(t, result.Clicks)
	})

	t.Run("omits optional fields when unset", func(t *testing.T) {
		var body map[string]any

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = io.WriteString(w, `{"short_code": "x", "short_url": "y", "original_url": "z", "created_at": "2024-01-01T00:00:00Z", "clicks": 0}`)
		}))

		_, err := client.Shorten(context.Background(), api.ShortenRequest{
			OriginalURL: "https://example.com",
		})

		require.NoError(t, err)
		assert.NotContains(t, body, "custom_slug")
		assert.NotContains(t, body, "expires_in_hours")
	})

	t.Run("sends optional fields when set", func(t *testing.T) {
		var body map[string]any

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = io.WriteString(w, `{"short_code": "x", "short_url": "y", "original_url": "z", "created_at": "2024-01-01T00:00:00Z", "clicks": 0}`)
		}))

		_, err := client.Shorten(context.Background(), api.ShortenRequest{
			OriginalURL:    "https://example.com",
			CustomSlug:     "mylink",
			ExpiresInHours: 24,
		})

		require.NoError(t, err)
		assert.Equal(t, "mylink", body["custom_slug"])
		assert.Equal(t, float64(24), body["expires_in_hours"])
	})

	t.Run("returns backend detail verbatim", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail": "slug already taken"}`)
		}))

		result, err := client.Shorten(context.Background(), api.ShortenRequest{
			OriginalURL: "https://example.com",
		})

		assert.Nil(t, result)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "slug already taken", apiErr.Detail)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("falls back to status text without detail payload", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "not json")
		}))

		_, err := client.Shorten(context.Background(), api.ShortenRequest{
			OriginalURL: "https://example.com",
		})

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.NotEmpty(t, apiErr.Detail)
	})

	t.Run("wraps transport failures", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := api.NewClient(server.URL, time.Second, zap.NewNop())

		_, err := client.Shorten(context.Background(), api.ShortenRequest{
			OriginalURL: "https://example.com",
		})

		require.Error(t, err)

		var apiErr *api.Error
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestClient_Stats(t *testing.T) {
	t.Run("fetches stats for a code", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/stats/abc123", r.URL.Path)

			_, _ = io.WriteString(w, `{
				"short_code": "abc123",
				"total_clicks": 42,
				"original_url": "https://example.com",
				"is_active": true,
				"created_at": "2024-01-01T00:00:00Z"
			}`)
		}))

		stats, err := client.Stats(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "abc123", stats.ShortCode)
		assert.Equal(t, 42, stats.TotalClicks)
		assert.True(t, stats.IsActive)
	})

	t.Run("returns not-found detail", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail": "Short URL 'nope' not found!"}`)
		}))

		_, err := client.Stats(context.Background(), "nope")

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Short URL 'nope' not found!", apiErr.Detail)
	})
}

func TestClient_Health(t *testing.T) {
	t.Run("fetches health report", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/health", r.URL.Path)

			_, _ = io.WriteString(w, `{"status": "healthy", "dependencies": {"database": "healthy", "cache": "healthy"}}`)
		}))

		status, err := client.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "healthy", status.Dependencies["cache"])
	})
}

func TestClient_URLs(t *testing.T) {
	client := api.NewClient("https://short.example/", time.Second, zap.NewNop())

	assert.Equal(t, "https://short.example", client.BaseURL())
	assert.Equal(t, "https://short.example/abc123", client.ShortURL("abc123"))
	assert.Equal(t, "https://short.example/api/v1/docs", client.DocsURL())
	assert.Equal(t, "https://short.example/api/v1/health", client.HealthURL())
}
