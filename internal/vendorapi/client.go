// Package vendorapi wraps the Sportradar NCAA men's hockey trial API: the
// league team list and per-team profiles. Responses are passed through as
// raw JSON so vendor schema changes don't require code changes here; only
// the fields needed for filtering are decoded.
package vendorapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/sling"

	"github.com/stefanlut/jacha/internal/logger"
)

const defaultBaseURL = "https://api.sportradar.com/ncaamh/trial/v3/en/"

// ErrNoAPIKey is returned when the client was built without an API key.
var ErrNoAPIKey = errors.New("vendor API key not configured")

// APIError is a non-2xx response from the vendor.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vendor API returned status %d", e.StatusCode)
}

// RateLimited reports whether the vendor rejected the request for quota
// reasons. The trial tier throttles aggressively, so callers surface this
// case with its own message.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Team is one entry from the league team list. Raw preserves the full
// vendor object for pass-through serialization.
type Team struct {
	ID     string
	Market string
	Raw    json.RawMessage
}

// Client calls the vendor API.
type Client struct {
	apiKey string
	base   *sling.Sling
	http   *http.Client
}

// Option adjusts a Client at construction.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.base = c.base.Base(url)
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
		c.base = c.base.Client(hc)
	}
}

// New builds a Client. The API key may be empty; calls then fail with
// ErrNoAPIKey so the serving layer can report the misconfiguration.
func New(apiKey string, opts ...Option) *Client {
	hc := &http.Client{Timeout: 15 * time.Second}
	c := &Client{
		apiKey: apiKey,
		http:   hc,
		base: sling.New().
			Client(hc).
			Base(defaultBaseURL).
			Set("accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type leagueTeamsBody struct {
	Teams []json.RawMessage `json:"teams"`
}

type teamHeader struct {
	ID     string `json:"id"`
	Market string `json:"market"`
}

// LeagueTeams fetches the full league team list.
func (c *Client) LeagueTeams(ctx context.Context) ([]Team, error) {
	var body leagueTeamsBody
	if err := c.get(ctx, "league/teams.json", &body); err != nil {
		return nil, err
	}
	if body.Teams == nil {
		return nil, errors.New("vendor team list response missing teams field")
	}

	teams := make([]Team, 0, len(body.Teams))
	for _, raw := range body.Teams {
		var hdr teamHeader
		if err := json.Unmarshal(raw, &hdr); err != nil {
			logger.Warn("skipping unreadable vendor team object", logger.Fields{
				"error": err.Error(),
			})
			continue
		}
		teams = append(teams, Team{ID: hdr.ID, Market: hdr.Market, Raw: raw})
	}
	return teams, nil
}

// TeamProfile fetches one team's profile and returns the vendor JSON as-is.
func (c *Client) TeamProfile(ctx context.Context, teamID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "teams/"+teamID+"/profile.json", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	req, err := c.base.New().Get(path).Set("x-api-key", c.apiKey).Request()
	if err != nil {
		return fmt.Errorf("building vendor API request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("calling vendor API: %w", err)
	}
	defer resp.Body.Close()
	logger.RecordTiming("vendorapi.request", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.IncrCounter("vendorapi.errors")
		return &APIError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding vendor API response: %w", err)
	}
	return nil
}
