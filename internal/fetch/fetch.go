// Package fetch issues the outbound page requests for every scraper. Some
// athletics sites reject requests that don't look like a browser, so a fetch
// retries the same URL across up to three request profiles with progressively
// simpler header sets, pausing briefly between attempts and stopping at the
// first success. Failure of all profiles is terminal for the request; nothing
// above this layer retries.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/stefanlut/jacha/internal/logger"
)

// Error reports that every request profile was exhausted for a URL.
type Error struct {
	URL      string
	Attempts int
	Err      error // last attempt's error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetching %s: all %d request profiles failed: %v", e.URL, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type profile struct {
	name    string
	headers map[string]string
	timeout time.Duration
	browser bool // route through the browser-profile transport
}

// The three profiles, most to least elaborate. Varying the user agent and
// header set raises the odds of getting past header-sniffing sites without
// hammering any of them.
var profiles = []profile{
	{
		name: "browser",
		headers: map[string]string{
			"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.9",
			"DNT":                       "1",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
			"Cache-Control":             "max-age=0",
		},
		timeout: 15 * time.Second,
		browser: true,
	},
	{
		name: "minimal",
		headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		},
		timeout: 20 * time.Second,
	},
	{
		name: "bare",
		headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Accept":     "*/*",
		},
		timeout: 25 * time.Second,
	},
}

// Client fetches raw HTML with profile-based retry.
type Client struct {
	clients []*resty.Client
	names   []string
	pause   time.Duration
}

// New builds a Client with one underlying HTTP client per request profile.
func New() *Client {
	c := &Client{pause: time.Second}
	for _, p := range profiles {
		rc := resty.New().
			SetTimeout(p.timeout).
			SetHeaders(p.headers)
		if p.browser {
			rc.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(rc.GetClient().Transport)
		}
		c.clients = append(c.clients, rc)
		c.names = append(c.names, p.name)
	}
	return c
}

// pauseSchedule returns the inter-attempt pause policy: exponential growth
// with jitter, so repeated fallbacks back off harder instead of hammering a
// site that just refused us.
func (c *Client) pauseSchedule() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pause
	b.RandomizationFactor = 0.3
	b.Multiplier = 2
	return b
}

// Get fetches url and returns the response body. Each profile gets one
// attempt; a non-2xx status counts as a failure.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	pause := c.pauseSchedule()
	var lastErr error

	for i, rc := range c.clients {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", &Error{URL: url, Attempts: i, Err: ctx.Err()}
			case <-time.After(pause.NextBackOff()):
			}
		}

		start := time.Now()
		resp, err := rc.R().SetContext(ctx).Get(url)
		logger.RecordTiming("fetch.attempt", time.Since(start))

		switch {
		case err != nil:
			lastErr = err
		case !resp.IsSuccess():
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode())
		default:
			if i > 0 {
				logger.IncrCounter("fetch.fallback_profile_success")
			}
			return resp.String(), nil
		}

		logger.Debug("request profile failed", logger.Fields{
			"url":     url,
			"profile": c.names[i],
		})
	}

	logger.IncrCounter("fetch.exhausted")
	return "", &Error{URL: url, Attempts: len(c.clients), Err: lastErr}
}

// IsFetchError reports whether err came from an exhausted fetch.
func IsFetchError(err error) bool {
	var fe *Error
	return errors.As(err, &fe)
}
