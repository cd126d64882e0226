package autocomplete

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is the Danbooru tag autocomplete endpoint.
	DefaultEndpoint = "https://danbooru.donmai.us/autocomplete"

	// DefaultLimit is the number of results requested per query.
	DefaultLimit = 20

	// maxBodyBytes caps how much of a response body is parsed.
	maxBodyBytes = 2 << 20
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	Endpoint  string
	Limit     int
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	UserAgent string
	Logger    *zap.Logger

	// HTTPClient overrides the pooled client, mostly for tests.
	HTTPClient *http.Client
}

// Client fetches tag suggestions from an HTML autocomplete endpoint.
// It is safe for concurrent use.
type Client struct {
	endpoint   *url.URL
	limit      int
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a Client for the given options
func NewClient(opts Options) (*Client, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint %q", endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Newf("endpoint %q must be an http(s) URL", endpoint)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
		httpClient.Timeout = opts.Timeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:   u,
		limit:      limit,
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// RequestURL builds the autocomplete URL for query.
func (c *Client) RequestURL(query string) string {
	u := *c.endpoint
	q := u.Query()
	q.Set("search[query]", query)
	q.Set("search[type]", "tag_query")
	q.Set("version", "1")
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch requests suggestions for query. When ctx is cancelled before the
// response is parsed the returned error satisfies IsCanceled.
func (c *Client) Fetch(ctx context.Context, query string) ([]Suggestion, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "autocomplete request abandoned")
		}
		return nil, errors.Wrap(err, "rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build autocomplete request")
	}
	req.Header.Set("Accept", "text/html")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "autocomplete request abandoned")
		}
		return nil, errors.Wrapf(err, "autocomplete request for %q", query)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	suggestions, err := Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "autocomplete request abandoned")
		}
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrap(ctxErr, "autocomplete request abandoned")
	}

	c.logger.Debug("autocomplete fetched",
		zap.String("query", query),
		zap.Int("results", len(suggestions)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return suggestions, nil
}
