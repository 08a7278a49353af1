package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/stylelens/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20 // 1 MB is plenty for a shopping page

// shoppingResponse is the raw Google Shopping payload from the search API
type shoppingResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
	Error           string           `json:"error,omitempty"`
}

// shoppingResult is one raw listing as returned by the search API
type shoppingResult struct {
	Position       int     `json:"position"`
	Title          string  `json:"title"`
	Link           string  `json:"link"`
	Source         string  `json:"source"`
	Price          string  `json:"price"`
	ExtractedPrice float64 `json:"extracted_price"`
	Rating         float64 `json:"rating"`
	Reviews        int     `json:"reviews"`
	Thumbnail      string  `json:"thumbnail"`
	Snippet        string  `json:"snippet"`
}

// Client handles communication with the SerpAPI Google Shopping endpoint
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new shopping search client
func NewClient(apiKey, baseURL string) *Client {
	// Stay well under the provider's hourly quota; bursts cover the
	// multi-item fan-out of a single analyzed photo.
	limiter := rate.NewLimiter(rate.Limit(1), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "StyleLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	return resp, nil
}

// SearchProducts searches Google Shopping for listings matching the query
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Listing, error) {
	if c.debug {
		log.Printf("[SERP] SearchProducts called with query: %q", query)
	}

	endpoint := fmt.Sprintf("%s/search.json", c.baseURL)
	params := url.Values{}
	params.Add("engine", "google_shopping")
	params.Add("q", query)
	params.Add("api_key", c.apiKey)
	params.Add("num", "20")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[SERP] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, err := readLimitedBody(resp.Body, maxResponseBytes)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("[SERP] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSearchAPIFailure, resp.StatusCode)
			// Client errors other than throttling will not succeed on retry
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, lastErr
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp shoppingResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			log.Printf("[SERP] JSON decode error: %v", err)
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrSearchAPIFailure, err)
		}

		if searchResp.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrSearchAPIFailure, searchResp.Error)
		}

		listings := mapToListings(searchResp.ShoppingResults)
		if c.debug {
			log.Printf("[SERP] Found %d listings for query: %q", len(listings), query)
		}
		return listings, nil
	}

	log.Printf("[SERP] All retries failed for query: %q", query)
	return nil, lastErr
}

// exponentialBackoff returns the sleep duration before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// readLimitedBody reads at most limit bytes from the response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, err
	}
	return body, nil
}
