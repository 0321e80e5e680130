package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/dtidevpmj/seidev/internal/config"
)

// Client wraps resty with a retryable transport, a shared rate limiter and
// a per-upstream failure guard. All SEI API clients issue requests through
// one of these.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	guard   *Guard
}

// Observer receives upstream call outcomes, for metrics.
type Observer interface {
	ObserveUpstream(upstream, endpoint, status string, duration time.Duration)
	ObserveUpstreamError(upstream string)
}

// Options configures a Client.
type Options struct {
	Name       string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RateLimitRPS caps outbound requests per second; zero means unlimited.
	RateLimitRPS float64
	Observer     Observer
}

// New creates a client for one upstream.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.MaxRetries
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", "seidev/1.0").
		SetTransport(&retryablehttp.RoundTripper{Client: retryClient})

	if obs := opts.Observer; obs != nil {
		name := opts.Name
		rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			endpoint := ""
			if resp.Request != nil && resp.RawResponse != nil && resp.RawResponse.Request != nil {
				endpoint = resp.RawResponse.Request.URL.Path
			}
			obs.ObserveUpstream(name, endpoint, resp.Status(), resp.Time())
			return nil
		})
		rc.OnError(func(_ *resty.Request, _ error) {
			obs.ObserveUpstreamError(name)
		})
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), int(opts.RateLimitRPS)+1)
	}

	return &Client{
		resty:   rc,
		limiter: limiter,
		guard:   NewGuard(opts.Name, 10, 30*time.Second),
	}
}

// FromConfig creates a client for the named upstream using the shared
// outbound settings.
func FromConfig(name, baseURL string, out config.OutboundConfig, obs Observer) *Client {
	return New(Options{
		Name:         name,
		BaseURL:      baseURL,
		Timeout:      time.Duration(out.TimeoutSeconds) * time.Second,
		MaxRetries:   out.MaxRetries,
		RateLimitRPS: out.RateLimitRPS,
		Observer:     obs,
	})
}

// R returns a new request bound to ctx, after the rate limiter and guard
// have admitted it.
func (c *Client) R(ctx context.Context) (*resty.Request, error) {
	if err := c.guard.Allow(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.guard.Name(), err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		c.guard.Record(false)
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return c.resty.R().SetContext(ctx), nil
}

// Finish records the outcome of a request obtained from R. Transport errors
// and 5xx responses count as failures; 4xx responses do not trip the guard.
func (c *Client) Finish(resp *resty.Response, err error) {
	c.guard.Record(err == nil && (resp == nil || resp.StatusCode() < 500))
}

// Guard exposes the failure guard, for health reporting.
func (c *Client) Guard() *Guard { return c.guard }

// RemoteError describes a non-2xx response from an upstream endpoint.
type RemoteError struct {
	Upstream string
	Endpoint string
	Status   int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Upstream, e.Endpoint, e.Status)
}

// CheckStatus converts a non-2xx response into a RemoteError.
func (c *Client) CheckStatus(endpoint string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &RemoteError{Upstream: c.guard.Name(), Endpoint: endpoint, Status: resp.StatusCode()}
}
