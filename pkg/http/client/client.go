package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bbernstein/meetpoint/backend-go/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

type Response struct {
	StatusCode int
	Body       []byte
}

type Interface interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*Response]
	GetFunc    func(ctx context.Context, path string, query url.Values) (*Response, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond caps outgoing requests; zero disables throttling
	RequestsPerSecond float64
	// BreakerName labels the circuit breaker in logs and metrics
	BreakerName string
	// BreakerTimeout is how long the breaker stays open before probing again
	BreakerTimeout time.Duration
}

// ServerError is returned for upstream 5xx responses so the breaker counts them as failures
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("upstream server error: status %d", e.StatusCode)
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BreakerName == "" {
		opts.BreakerName = "maps-api"
	}
	if opts.BreakerTimeout == 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	metrics.CircuitBreakerState.WithLabelValues(opts.BreakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        opts.BreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: limiter,
		breaker: breaker,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path, query)
	}

	var fullURL string
	if c.baseURL == "" {
		fullURL = path // If no base URL, treat path as full URL
	} else {
		fullURL = c.baseURL + path
	}
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.execute(func() (*Response, error) {
		r, err := c.do(ctx, fullURL)
		if err != nil && ctx.Err() != nil {
			return r, &callerDoneError{err: err}
		}
		return r, err
	})
	var done *callerDoneError
	if errors.As(err, &done) {
		err = done.err
	}
	metrics.UpstreamDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.UpstreamRequests.WithLabelValues(path, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.UpstreamRequests.WithLabelValues(path, "rejected").Inc()
	default:
		metrics.UpstreamRequests.WithLabelValues(path, "failure").Inc()
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		// Hand the response back; callers decide what a 5xx means for them
		return resp, nil
	}
	return resp, err
}

func (c *Client) execute(fn func() (*Response, error)) (*Response, error) {
	if c.breaker == nil {
		return fn()
	}
	var kept *Response
	resp, err := c.breaker.Execute(func() (*Response, error) {
		r, err := fn()
		kept = r
		return r, err
	})
	if resp == nil {
		resp = kept
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, fullURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Error closing response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return result, &ServerError{StatusCode: resp.StatusCode}
	}
	return result, nil
}

// callerDoneError marks a failure caused by the caller's own context ending
type callerDoneError struct {
	err error
}

func (e *callerDoneError) Error() string {
	return e.err.Error()
}

func (e *callerDoneError) Unwrap() error {
	return e.err
}

// isSuccessful keeps caller cancellation out of the breaker's failure count.
// The client's own timeout still counts.
func isSuccessful(err error) bool {
	var done *callerDoneError
	return err == nil || errors.As(err, &done)
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
