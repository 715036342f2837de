package adapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// Name is the source name reported in logs and status output.
const Name = "adapi"

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 32 << 20
)

// Ensure Client implements the interface.
var _ driven.KeywordSource = (*Client)(nil)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://ads.example.com/v1.
	BaseURL string

	// Token is sent as a bearer token. Empty sends no Authorization header.
	Token string

	// RequestsPerSecond paces requests. Zero disables pacing.
	RequestsPerSecond float64

	// HTTPClient overrides the transport. Its Transport is wrapped for auth.
	HTTPClient *http.Client

	// BreakerTimeout is how long the breaker stays open. Defaults to 30s.
	BreakerTimeout time.Duration
}

// Client fetches keyword rows from the advertising API.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *RateLimiter
	breaker *gobreaker.CircuitBreaker
}

// New creates a client. The base URL must be absolute.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: api base url %q", domain.ErrInvalidInput, opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Token != "" {
		hc = &http.Client{
			Timeout: hc.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}),
				Base:   hc.Transport,
			},
		}
	}

	breakerTimeout := opts.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	return &Client{
		base:    base,
		http:    hc,
		limiter: NewRateLimiter(opts.RequestsPerSecond, 2),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        Name,
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			// Only server-side trouble trips the breaker.
			IsSuccessful: func(err error) bool {
				return err == nil || !errors.Is(err, domain.ErrSourceUnavailable)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("%s circuit breaker %s -> %s", name, from, to)
			},
		}),
	}, nil
}

// Name returns the source name.
func (c *Client) Name() string {
	return Name
}

// Fetch requests up to limit keyword rows for the category.
func (c *Client) Fetch(ctx context.Context, category domain.Category, limit int) ([]domain.KeywordRecord, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", domain.ErrInvalidInput, limit)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, category, limit)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return result.([]domain.KeywordRecord), nil
}

func (c *Client) fetch(ctx context.Context, category domain.Category, limit int) ([]domain.KeywordRecord, error) {
	endpoint := c.base.JoinPath("search")
	q := url.Values{}
	q.Set("category", category.ID)
	q.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", endpoint.Redacted())
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrInvalidInput, err)
	}

	records := make([]domain.KeywordRecord, 0, len(body.Keywords))
	for i, row := range body.Keywords {
		r, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, r)
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: api returned %s", domain.ErrAuthRequired, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return fmt.Errorf("%w: api returned %s", domain.ErrRateLimited, resp.Status)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: api returned %s", domain.ErrSourceUnavailable, resp.Status)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
