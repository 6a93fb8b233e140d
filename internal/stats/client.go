package stats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the contribution endpoint of the public Stackalytics instance.
const DefaultBaseURL = "http://stackalytics.com/api/1.0/contribution"

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 30 * time.Second

// Fetcher looks up the contribution for one combination.
type Fetcher interface {
	Fetch(ctx context.Context, c Combination, p Params) (Contribution, error)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRate limits requests to perSecond. Zero or less means unlimited.
func WithRate(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// Client queries the contribution endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = DefaultTimeout
	c := &Client{
		baseURL: baseURL,
		http:    hc,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET for the given parameters. Every error it returns is
// a *FetchError.
func (c *Client) Fetch(ctx context.Context, comb Combination, p Params) (Contribution, error) {
	fatal := func(err error) (Contribution, error) {
		return Contribution{}, &FetchError{Severity: Fatal, Combination: comb, Err: err}
	}

	values, err := query.Values(p)
	if err != nil {
		return fatal(fmt.Errorf("encoding query: %w", err))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fatal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return fatal(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fatal(err)
		}
		return Contribution{}, &FetchError{Severity: Recoverable, Combination: comb, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Contribution{}, &FetchError{
			Severity:    Recoverable,
			Combination: comb,
			Err:         &StatusError{StatusCode: resp.StatusCode},
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fatal(fmt.Errorf("reading response: %w", err))
	}

	contribution, err := decodeContribution(body)
	if err != nil {
		return fatal(err)
	}
	return contribution, nil
}
