// Package source fetches job listings from the JSearch API on RapidAPI and
// normalizes them into board jobs.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"jobboard/internal/board"
	"jobboard/internal/config"
	"jobboard/internal/model"
)

// ErrNoAPIKey is returned when the client has no RapidAPI key.
var ErrNoAPIKey = errors.New("jsearch api key not configured")

// Client provides access to the JSearch job search API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      board.Logger
	clock       board.Clock

	endpoint   string
	apiKey     string
	apiHost    string
	country    string
	datePosted string
	numPages   int
}

var _ board.JobSource = (*Client)(nil)

// searchResponse is the envelope around JSearch results. Elements are kept
// raw so one malformed listing cannot fail the batch.
type searchResponse struct {
	Data []json.RawMessage `json:"data"`
}

// NewClient creates a JSearch client from cfg.
func NewClient(cfg config.SourceConfig, logger board.Logger, clock board.Clock) *Client {
	if logger == nil {
		logger = board.NewNopLogger()
	}
	if clock == nil {
		clock = board.RealClock{}
	}

	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	numPages := cfg.NumPages
	if numPages < 1 {
		numPages = config.DefaultNumPages
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(limit, 1),
		logger:      logger,
		clock:       clock,
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		apiHost:     cfg.APIHost,
		country:     cfg.Country,
		datePosted:  cfg.DatePosted,
		numPages:    numPages,
	}
}

// FetchJobs searches for query, narrowed to location when one is given, and
// returns the normalized listings in response order.
func (c *Client) FetchJobs(ctx context.Context, query, location string) ([]model.Job, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	searchURL, err := c.searchURL(query, location)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("searching jsearch", "query", query, "location", location, "url", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if searchResp.Data == nil {
		return nil, errors.New("invalid API response structure")
	}

	now := c.clock.Now()
	jobs := make([]model.Job, 0, len(searchResp.Data))
	for _, item := range searchResp.Data {
		jobs = append(jobs, Normalize(ParseRawJob(item), now))
	}

	c.logger.Debug("jsearch results", "query", query, "count", len(jobs))
	return jobs, nil
}

func (c *Client) searchURL(query, location string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}

	q := query
	if location != "" {
		q = query + " in " + location
	}

	params := u.Query()
	params.Set("query", q)
	params.Set("page", "1")
	params.Set("num_pages", strconv.Itoa(c.numPages))
	if c.country != "" {
		params.Set("country", c.country)
	}
	if c.datePosted != "" {
		params.Set("date_posted", c.datePosted)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}
