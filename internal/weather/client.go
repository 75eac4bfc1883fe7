package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/hoangnm/vn-poi-map/internal/cache"
)

const (
	oneCallURL  = "https://api.openweathermap.org/data/3.0/onecall"
	currentURL  = "https://api.openweathermap.org/data/2.5/weather"
	forecastURL = "https://api.openweathermap.org/data/2.5/forecast"

	maxAttempts = 3

	// Error bodies are truncated to this many bytes when reported.
	errBodyLimit = 200
)

// ErrNoAPIKey is returned before any network call when the OpenWeather key
// is not configured.
var ErrNoAPIKey = errors.New("openweather api key is not configured")

var errCircuitOpen = errors.New("circuit breaker open")

// endpoint bundles one upstream URL with its circuit breaker and its own
// memoization cache, so the three possible calls cache independently.
type endpoint[P any] struct {
	url     string
	circuit *gobreaker.CircuitBreaker
	cache   *cache.Cache[*P]
}

func newEndpoint[P any](name, url string, ttl time.Duration) *endpoint[P] {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &endpoint[P]{
		url:     url,
		circuit: cb,
		cache:   cache.New[*P](ttl),
	}
}

// Client talks to the three OpenWeather endpoint shapes. Each individual
// HTTP call retries up to 3 times with a short pause, accepting only
// HTTP 200, and is memoized by (lat, lon, units, lang).
type Client struct {
	client *http.Client
	apiKey string

	oneCall  *endpoint[oneCallPayload]
	current  *endpoint[legacyCurrent]
	forecast *endpoint[legacyForecast]

	// retryPause separates attempts; overridable in tests.
	retryPause time.Duration
}

// NewClient creates a Client memoizing each endpoint for ttl.
func NewClient(client *http.Client, apiKey string, ttl time.Duration) *Client {
	return &Client{
		client:     client,
		apiKey:     apiKey,
		oneCall:    newEndpoint[oneCallPayload]("onecall", oneCallURL, ttl),
		current:    newEndpoint[legacyCurrent]("current", currentURL, ttl),
		forecast:   newEndpoint[legacyForecast]("forecast", forecastURL, ttl),
		retryPause: 600 * time.Millisecond,
	}
}

func (c *Client) ensureKey() error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	return nil
}

func memoKey(lat, lon float64, units, lang string) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(lon, 'f', -1, 64) + "," + units + "," + lang
}

func (c *Client) fetchOneCall(ctx context.Context, lat, lon float64, units, lang string) (*oneCallPayload, error) {
	params := c.baseParams(lat, lon, units, lang)
	params.Set("exclude", "minutely,alerts")
	return fetchEndpoint(ctx, c, c.oneCall, memoKey(lat, lon, units, lang), params)
}

func (c *Client) fetchCurrent(ctx context.Context, lat, lon float64, units, lang string) (*legacyCurrent, error) {
	return fetchEndpoint(ctx, c, c.current, memoKey(lat, lon, units, lang), c.baseParams(lat, lon, units, lang))
}

func (c *Client) fetchForecast(ctx context.Context, lat, lon float64, units, lang string) (*legacyForecast, error) {
	return fetchEndpoint(ctx, c, c.forecast, memoKey(lat, lon, units, lang), c.baseParams(lat, lon, units, lang))
}

func (c *Client) baseParams(lat, lon float64, units, lang string) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", units)
	params.Set("lang", lang)
	params.Set("appid", c.apiKey)
	return params
}

// fetchEndpoint checks the endpoint cache, then runs the retrying request
// through the endpoint's circuit breaker.
func fetchEndpoint[P any](ctx context.Context, c *Client, ep *endpoint[P], key string, params url.Values) (*P, error) {
	if cached, ok := ep.cache.Get(key); ok {
		return cached, nil
	}

	var payload P
	if err := c.getJSON(ctx, ep.circuit, ep.url, params, &payload); err != nil {
		return nil, err
	}

	ep.cache.Put(key, &payload)
	return &payload, nil
}

// getJSON issues the GET with bounded retries. Any non-200 status is
// captured as the retryable error, carrying a truncated body snippet; after
// the final attempt the last error is returned. An open circuit short-circuits
// the remaining attempts.
func (c *Client) getJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, rawURL string, params url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.retryPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		body, err := cb.Execute(func() (interface{}, error) {
			return c.doGet(ctx, rawURL, params)
		})
		if err == nil {
			raw, ok := body.([]byte)
			if !ok {
				return fmt.Errorf("unexpected result type from circuit breaker")
			}
			if uerr := json.Unmarshal(raw, out); uerr != nil {
				lastErr = fmt.Errorf("decode openweather response: %w", uerr)
				continue
			}
			return nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		lastErr = err
	}

	return lastErr
}

func (c *Client) doGet(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > errBodyLimit {
			snippet = snippet[:errBodyLimit]
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return body, nil
}

// Purge drops expired memoization entries from all three endpoint caches.
func (c *Client) Purge() int {
	return c.oneCall.cache.Purge() + c.current.cache.Purge() + c.forecast.cache.Purge()
}
