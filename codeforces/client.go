package codeforces

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	kDefaultBaseURL = "https://codeforces.com"
	kAPIPathPrefix  = "/api/"

	kHeaderAccept      = "Accept"
	kHeaderContentType = "Content-Type"
	kHeaderUserAgent   = "User-Agent"

	kContentTypeApplicationJSON = "application/json"
	kContentTypeTextHTML        = "text/html"

	kStatusOK = "OK"

	kDefaultTimeout    = 30 * time.Second
	kMaxResponseBytes  = 32 << 20
	kMaxErrorBodyBytes = 8 << 10
)

// Client is the public client contract. Every method performs exactly one GET request.
//
// The returned error is non-nil only when the response could not be understood (see
// ErrMalformedResponse) or the arguments are invalid; network failures and API rejections
// are reported through the Result.
type Client interface {
	BlogEntryComments(ctx context.Context, blogEntryID int64) (Result[[]Comment], error)
	BlogEntryView(ctx context.Context, blogEntryID int64) (Result[BlogEntry], error)
	ContestHacks(ctx context.Context, contestID int64, extra ...Parameter) (Result[[]Hack], error)
	ContestList(ctx context.Context, gym bool) (Result[[]Contest], error)
	ContestRatingChanges(ctx context.Context, contestID int64) (Result[[]RatingChange], error)
	ContestStandings(ctx context.Context, contestID int64, extra ...Parameter) (Result[Standings], error)
	ContestStatus(ctx context.Context, contestID int64, extra ...Parameter) (Result[[]Submission], error)
	ProblemsetProblems(ctx context.Context, extra ...Parameter) (Result[Problemset], error)
	ProblemsetRecentStatus(ctx context.Context, count int, problemsetName string) (Result[[]Submission], error)
	RecentActions(ctx context.Context, maxCount int) (Result[[]RecentAction], error)
	UserBlogEntries(ctx context.Context, handle string) (Result[[]BlogEntry], error)
	UserInfo(ctx context.Context, handles ...string) (Result[[]User], error)
	UserRatedList(ctx context.Context, activeOnly bool, extra ...Parameter) (Result[[]User], error)
	UserRating(ctx context.Context, handle string) (Result[[]RatingChange], error)
	UserStatus(ctx context.Context, handle string, extra ...Parameter) (Result[[]Submission], error)
}

// Logger is the subset of a leveled logger the client writes to.
// github.com/apex/log's log.Log satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

type discardLogger struct{}

func (discardLogger) Debugf(string, ...interface{}) {}
func (discardLogger) Warnf(string, ...interface{})  {}

// DiscardLogger drops everything.
var DiscardLogger Logger = discardLogger{}

// HttpClient is a Codeforces client backed by net/http. It holds no mutable state and is
// safe for concurrent use.
type HttpClient struct {
	BaseURL   string
	UserAgent string

	// Timeout bounds each call, including reading the body. Zero means no bound.
	Timeout time.Duration

	Http   *http.Client
	Logger Logger
}

type HttpClientOptions struct {
	BaseURL   string
	UserAgent string

	// Timeout defaults to 30s when zero; pass a negative value to disable it.
	Timeout time.Duration

	Http   *http.Client
	Logger Logger
}

func NewHttpClient(opts HttpClientOptions) *HttpClient {
	c := &HttpClient{
		BaseURL:   opts.BaseURL,
		UserAgent: opts.UserAgent,
		Timeout:   opts.Timeout,
		Http:      opts.Http,
		Logger:    opts.Logger,
	}
	if c.Http == nil {
		c.Http = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = DiscardLogger
	}
	switch {
	case c.Timeout == 0:
		c.Timeout = kDefaultTimeout
	case c.Timeout < 0:
		c.Timeout = 0
	}
	return c
}

var _ Client = (*HttpClient)(nil)

// envelope is the outer shape of every API response.
type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// call performs one API request and maps the envelope's result onto T.
func call[T any](ctx context.Context, c *HttpClient, method string, params []Parameter) (Result[T], error) {
	raw, err := c.get(ctx, method, params)
	if err != nil {
		return Result[T]{}, err
	}
	if !raw.OK() {
		return mapResult(raw, func(json.RawMessage) T {
			var zero T
			return zero
		}), nil
	}

	v, err := MapRecord[T](raw.Value)
	if err != nil {
		return Result[T]{}, errors.Wrap(err, method)
	}
	return OKResult(v), nil
}

// get performs the request and classifies the envelope without looking at the payload.
func (c *HttpClient) get(ctx context.Context, method string, params []Parameter) (Result[json.RawMessage], error) {
	if err := ctx.Err(); err != nil {
		return UnreachableResult[json.RawMessage](err), nil
	}

	endpoint := c.endpointURL(method, params)
	reqID := uuid.NewString()
	logger := c.logger()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warnf("codeforces %s [%s]: create request: %v", method, reqID, err)
		return UnreachableResult[json.RawMessage](errors.Wrap(err, "create request")), nil
	}
	req.Header.Set(kHeaderAccept, kContentTypeApplicationJSON)
	if c.UserAgent != "" {
		req.Header.Set(kHeaderUserAgent, c.UserAgent)
	}

	logger.Debugf("codeforces %s [%s]: GET %s", method, reqID, endpoint)
	start := time.Now()

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logger.Warnf("codeforces %s [%s]: request failed: %v", method, reqID, err)
		return UnreachableResult[json.RawMessage](err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, kMaxErrorBodyBytes))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = resp.Status
		}
		logger.Warnf("codeforces %s [%s]: status %d after %s", method, reqID, resp.StatusCode, time.Since(start))
		return UnreachableResult[json.RawMessage](errors.Errorf("status %d: %s", resp.StatusCode, msg)), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, kMaxResponseBytes+1))
	if err != nil {
		logger.Warnf("codeforces %s [%s]: read body: %v", method, reqID, err)
		return UnreachableResult[json.RawMessage](errors.Wrap(err, "read body")), nil
	}
	logger.Debugf("codeforces %s [%s]: %d bytes in %s", method, reqID, len(body), time.Since(start))

	if len(body) > kMaxResponseBytes {
		return Result[json.RawMessage]{}, errors.Wrapf(ErrMalformedResponse, "%s: response exceeds %d bytes", method, kMaxResponseBytes)
	}

	contentType := resp.Header.Get(kHeaderContentType)
	if strings.Contains(strings.ToLower(contentType), kContentTypeTextHTML) {
		// Codeforces serves an HTML page when it is in maintenance or challenging the client.
		return Result[json.RawMessage]{}, errors.Wrapf(
			ErrMalformedResponse,
			"%s: unexpected html response; codeforces may be blocking requests",
			method,
		)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Result[json.RawMessage]{}, errors.Wrapf(ErrMalformedResponse, "%s: decode envelope: %v", method, err)
	}
	if env.Status != kStatusOK {
		logger.Debugf("codeforces %s [%s]: rejected: %s", method, reqID, env.Comment)
		return RejectedResult[json.RawMessage](env.Comment), nil
	}
	return OKResult(env.Result), nil
}

func (c *HttpClient) endpointURL(method string, params []Parameter) string {
	u := normalizedBaseURL(c.BaseURL) + kAPIPathPrefix + method
	if q := encodeQuery(params); q != "" {
		u += "?" + q
	}
	return u
}

func (c *HttpClient) httpClient() *http.Client {
	if c.Http == nil {
		return http.DefaultClient
	}
	return c.Http
}

func (c *HttpClient) logger() Logger {
	if c.Logger == nil {
		return DiscardLogger
	}
	return c.Logger
}

func normalizedBaseURL(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return kDefaultBaseURL
	}
	return base
}
