// Package portal issues requests against the public data portal and
// validates their result envelopes.
package portal

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"publicdatareader/internal/envelope"
	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/ratelimit"
	"publicdatareader/internal/registry"
)

// DefaultPageWait is the pause between pages of a paginated fetch
const DefaultPageWait = 30 * time.Second

// Sleeper blocks for d. It is not interrupted by context cancellation.
type Sleeper func(d time.Duration)

// Client fetches raw records from portal endpoints.
// A Client is safe for concurrent use; each call keeps its own state.
type Client struct {
	serviceKey string
	numOfRows  int
	baseURLs   map[registry.Family]string

	http     *resty.Client
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	sleep    Sleeper
	observer Observer
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for request and progress logs
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the default resty client
func WithHTTPClient(client *resty.Client) Option {
	return func(c *Client) { c.http = client }
}

// WithLimiter shares a rate limiter between clients
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithSleeper replaces time.Sleep for the wait between pages
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// WithBaseURL sends every request of a family to baseURL instead of the
// registered host and path prefix. The operation name is kept.
func WithBaseURL(family registry.Family, baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURLs[family] = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithNumOfRows sets the row cap sent with every request
func WithNumOfRows(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.numOfRows = n
		}
	}
}

// WithObserver registers a callback for fetch state transitions
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a client authenticated with serviceKey.
// The key may be given URL-encoded or decoded.
func NewClient(serviceKey string, opts ...Option) (*Client, error) {
	serviceKey = strings.TrimSpace(serviceKey)
	if serviceKey == "" {
		return nil, fetcher.NewConfigurationError("service key is required")
	}

	c := &Client{
		serviceKey: DecodeServiceKey(serviceKey),
		numOfRows:  DefaultNumOfRows,
		baseURLs:   make(map[registry.Family]string),
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.http == nil {
		c.http = fetcher.NewHTTPClient(c.logger)
	}
	if c.limiter == nil {
		c.limiter = ratelimit.New()
	}
	return c, nil
}

// Close releases idle connections of the underlying HTTP client
func (c *Client) Close() error {
	return c.http.Close()
}

// BaseParams returns the parameters every request carries
func (c *Client) BaseParams() Params {
	return Params{
		fetcher.ServiceKeyParam: c.serviceKey,
		ParamNumOfRows:          strconv.Itoa(c.numOfRows),
	}
}

// URL returns the address requests for spec are sent to
func (c *Client) URL(spec registry.EndpointSpec) string {
	base, ok := c.baseURLs[spec.Family]
	if !ok {
		return spec.URL
	}
	return base + "/" + spec.URL[strings.LastIndex(spec.URL, "/")+1:]
}

// FetchPeriod requests the records of a single period token (YYYYMM).
// An empty token sends params as given.
func (c *Client) FetchPeriod(ctx context.Context, spec registry.EndpointSpec, params Params, token string) ([]envelope.Record, error) {
	r := c.newRun(spec.Slug)
	records, err := c.fetchPeriod(ctx, r, spec, params, token)
	if err != nil {
		return nil, err
	}
	r.transition(StateDone, token, nil)
	return records, nil
}

// FetchRange requests every period from start to end inclusive, one after
// another in chronological order. The first failing period aborts the
// whole range.
func (c *Client) FetchRange(ctx context.Context, spec registry.EndpointSpec, params Params, start, end string) ([]envelope.Record, error) {
	tokens, err := ExpandPeriods(start, end)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("endpoint", spec.Slug, "category", spec.Name())
	r := c.newRun(spec.Slug)

	records := []envelope.Record{}
	for _, token := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(token, fetcher.NewTransportError(err).WithToken(token))
		}
		got, err := c.fetchPeriod(ctx, r, spec, params, token)
		if err != nil {
			return nil, err
		}
		records = append(records, got...)
		logger.Info("period fetched", "period", token, "rows", len(got))
	}

	r.transition(StateDone, end, nil)
	return records, nil
}

func (c *Client) fetchPeriod(ctx context.Context, r *run, spec registry.EndpointSpec, params Params, token string) ([]envelope.Record, error) {
	q := params.Clone()
	if token != "" {
		if _, err := parsePeriod(token); err != nil {
			return nil, r.fail(token, err)
		}
		q[ParamDealYM] = token
	}

	env, err := c.request(ctx, r, spec, q, token)
	if err != nil {
		return nil, err
	}
	r.rows += len(env.Items)
	r.transition(StateAccumulating, token, nil)
	return env.Items, nil
}

// FetchPages requests page 1 and then every further page that totalCount
// calls for, sleeping wait before each page after the first. The wait is
// not cut short by ctx; ctx is checked between requests.
func (c *Client) FetchPages(ctx context.Context, spec registry.EndpointSpec, params Params, wait time.Duration) ([]envelope.Record, error) {
	logger := c.logger.With("endpoint", spec.Slug, "category", spec.Name())
	r := c.newRun(spec.Slug)

	q := params.Clone()
	q[ParamPageNo] = "1"

	env, err := c.request(ctx, r, spec, q, pageToken(1))
	if err != nil {
		return nil, err
	}
	if env.NumOfRows <= 0 {
		env.NumOfRows, _ = strconv.Atoi(q[ParamNumOfRows])
	}
	pages := env.Pages()

	records := append([]envelope.Record{}, env.Items...)
	r.rows = len(records)
	r.transition(StateAccumulating, pageToken(1), nil)
	logger.Info("page fetched", "page", 1, "pages", pages, "total_count", env.TotalCount, "rows", len(env.Items))

	for page := 2; page <= pages; page++ {
		logger.Debug("waiting before next page", "page", page, "wait", wait)
		c.sleep(wait)

		token := pageToken(page)
		if err := ctx.Err(); err != nil {
			return nil, r.fail(token, fetcher.NewTransportError(err).WithToken(token))
		}

		q[ParamPageNo] = strconv.Itoa(page)
		env, err := c.request(ctx, r, spec, q, token)
		if err != nil {
			return nil, err
		}
		records = append(records, env.Items...)
		r.rows = len(records)
		r.transition(StateAccumulating, token, nil)
		logger.Info("page fetched", "page", page, "pages", pages, "rows", len(env.Items))
	}

	r.transition(StateDone, pageToken(pages), nil)
	return records, nil
}

// Health is the outcome of probing an endpoint
type Health struct {
	Code    string
	Message string
}

// Healthy reports whether the endpoint answered with the success code
func (h Health) Healthy() bool {
	return h.Code == envelope.SuccessCode
}

// Check sends one single-row request to spec and reports the result code
// without treating a non-success code as an error. Transport failures and
// unreadable responses are returned as errors.
func (c *Client) Check(ctx context.Context, spec registry.EndpointSpec, params Params) (Health, error) {
	q := params.Clone()
	q[ParamNumOfRows] = "1"

	env, err := c.roundTrip(ctx, spec, q)
	if err != nil {
		return Health{}, err
	}
	return Health{Code: env.ResultCode, Message: env.ResultMsg}, nil
}

// request performs one validated round trip
func (c *Client) request(ctx context.Context, r *run, spec registry.EndpointSpec, q Params, token string) (*envelope.Envelope, error) {
	r.transition(StateRequesting, token, nil)

	env, err := c.roundTrip(ctx, spec, q)
	if err != nil {
		return nil, r.fail(token, withToken(err, token))
	}

	r.transition(StateValidating, token, nil)
	if !env.OK() {
		return nil, r.fail(token, fetcher.NewUpstreamError(env.ResultCode, env.ResultMsg).WithToken(token))
	}
	return env, nil
}

// roundTrip sends one GET and decodes the envelope without checking its result code
func (c *Client) roundTrip(ctx context.Context, spec registry.EndpointSpec, q Params) (*envelope.Envelope, error) {
	if err := c.limiter.Wait(ctx, spec.Family.API()); err != nil {
		return nil, fetcher.NewTransportError(err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(q).
		Get(c.URL(spec))
	if err != nil {
		return nil, fetcher.NewTransportError(err)
	}

	env, err := envelope.Decode(resp.Bytes())
	if err != nil {
		if !resp.IsSuccess() {
			return nil, fetcher.NewHTTPStatusError(resp.StatusCode())
		}
		fe := fetcher.NewUpstreamError("", "malformed response envelope")
		fe.Cause = err
		return nil, fe
	}
	return env, nil
}

func withToken(err error, token string) error {
	if fe, ok := err.(*fetcher.FetchError); ok && token != "" {
		return fe.WithToken(token)
	}
	return err
}

func pageToken(page int) string {
	return "page " + strconv.Itoa(page)
}
