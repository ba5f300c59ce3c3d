// Package tmdb is a minimal client for the TMDB movie-metadata API, covering
// only the endpoints thumbnail enrichment needs.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	requestTimeout    = 10 * time.Second
	requestsPerSecond = 4
)

// Movie is a single result from the movie search endpoint.
type Movie struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// CastMember is one credited cast entry for a movie.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Credits is the cast list for a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// API is the surface of TMDB that enrichment depends on.
type API interface {
	SearchMovies(ctx context.Context, query string) ([]Movie, error)
	GetMovieCredits(ctx context.Context, movieID int) (*Credits, error)
}

// Client calls TMDB over HTTP with a bearer token and a client-side rate limit.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a TMDB client. The API key is a v4 read access token.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second/requestsPerSecond), requestsPerSecond),
	}
}

// SearchMovies queries the /search/movie endpoint.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	endpoint := fmt.Sprintf("%s/search/movie?query=%s", c.baseURL, url.QueryEscape(query))

	var body struct {
		Results []Movie `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, fmt.Errorf("searching movies for '%s': %w", query, err)
	}
	return body.Results, nil
}

// GetMovieCredits queries the /movie/{id}/credits endpoint.
func (c *Client) GetMovieCredits(ctx context.Context, movieID int) (*Credits, error) {
	endpoint := fmt.Sprintf("%s/movie/%d/credits", c.baseURL, movieID)

	var credits Credits
	if err := c.getJSON(ctx, endpoint, &credits); err != nil {
		return nil, fmt.Errorf("fetching credits for movie %d: %w", movieID, err)
	}
	return &credits, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
