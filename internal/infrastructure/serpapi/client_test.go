package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylelens/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://serpapi.example.com")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://serpapi.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "https://serpapi.example.com")

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
	}
}

func TestSearchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google_shopping", r.URL.Query().Get("engine"))
		assert.Equal(t, "denim jacket", r.URL.Query().Get("q"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))

		resp := shoppingResponse{
			ShoppingResults: []shoppingResult{
				{
					Position:       1,
					Title:          "Classic Denim Jacket",
					Price:          "$49.99",
					ExtractedPrice: 49.99,
					Thumbnail:      "https://img.example.com/1.jpg",
					Reviews:        321,
					Source:         "ExampleMart",
				},
				{
					Position:  2,
					Title:     "Denim Jacket No Price",
					Thumbnail: "https://img.example.com/2.jpg",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	listings, err := client.SearchProducts(context.Background(), "denim jacket")

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Classic Denim Jacket", listings[0].Title)
	assert.Equal(t, 49.99, listings[0].ParsedPrice)
	assert.Equal(t, 321, listings[0].Reviews)
	assert.Equal(t, 1, listings[0].Position)
	// Missing fields map to zero values, not errors
	assert.Equal(t, "", listings[1].Price)
	assert.Equal(t, 0.0, listings[1].ParsedPrice)
}

func TestSearchProducts_APIErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(shoppingResponse{Error: "Google Shopping hasn't returned any results"})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	listings, err := client.SearchProducts(context.Background(), "nothing")

	assert.Nil(t, listings)
	assert.ErrorIs(t, err, domain.ErrSearchAPIFailure)
}

func TestSearchProducts_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(shoppingResponse{})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	listings, err := client.SearchProducts(context.Background(), "rare item")

	// No results is not an error at the client layer
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestSearchProducts_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	listings, err := client.SearchProducts(context.Background(), "jacket")

	assert.Nil(t, listings)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestSearchProducts_ClientErrorNoRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL)
	_, err := client.SearchProducts(context.Background(), "jacket")

	assert.ErrorIs(t, err, domain.ErrSearchAPIFailure)
	assert.Equal(t, 1, attempts)
}

func TestSearchProducts_AllRetriesFail(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	listings, err := client.SearchProducts(context.Background(), "all-fail")

	assert.Nil(t, listings)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts) // Should try 3 times
}

func TestSearchProducts_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	listings, err := client.SearchProducts(context.Background(), "jacket")

	assert.Nil(t, listings)
	assert.ErrorIs(t, err, domain.ErrSearchAPIFailure)
}

func TestReadLimitedBody(t *testing.T) {
	t.Run("reads short content fully", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("short content"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 1000)
		require.NoError(t, err)
		assert.Equal(t, "short content", string(body))
	})

	t.Run("truncates beyond limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for i := 0; i < 100; i++ {
				w.Write([]byte("0123456789"))
			}
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 100)
		require.NoError(t, err)
		assert.Len(t, body, 100)
	})
}
