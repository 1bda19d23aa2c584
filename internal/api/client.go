// Package api is the HTTP client for the MoneyMaven REST API.
//
// Every call is a single request: no retries, no caching and no timeout of
// its own. Callers bound a call with the context they pass in.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"moneymaven/internal/log"
	"moneymaven/internal/trace"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() (string, bool)
}

// Config holds client configuration
type Config struct {
	BaseURL    string
	Tokens     TokenSource
	Logger     *log.Logger
	HTTPClient *http.Client
}

// Client talks to the MoneyMaven API.
type Client struct {
	resty   *resty.Client
	tokens  TokenSource
	logger  *log.Logger
	metrics trace.Metrics
}

type noToken struct{}

func (noToken) Token() (string, bool) { return "", false }

func NewClient(config Config) *Client {
	logger := config.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentAPI)

	tokens := config.Tokens
	if tokens == nil {
		tokens = noToken{}
	}

	var r *resty.Client
	if config.HTTPClient != nil {
		r = resty.NewWithClient(config.HTTPClient)
	} else {
		r = resty.New()
	}
	r.SetBaseURL(strings.TrimRight(config.BaseURL, "/")).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	c := &Client{resty: r, tokens: tokens, logger: logger}

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		c.logger.DebugContext(req.Context(), "API request",
			log.NewFields().WithHTTPRequest(req.Method, req.URL).WithRequestID(trace.RequestID(req.Context())).ToSlice()...)
		return nil
	})
	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.metrics.Record(resp.Time(), resp.IsError())
		fields := log.NewFields().
			WithHTTPRequest(resp.Request.Method, resp.Request.URL).
			WithHTTPResponse(resp.StatusCode(), resp.Time().Milliseconds()).
			WithRequestID(trace.RequestID(resp.Request.Context()))
		if resp.IsError() {
			c.logger.WarnContext(resp.Request.Context(), "API error response", fields.ToSlice()...)
		} else {
			c.logger.DebugContext(resp.Request.Context(), "API response", fields.ToSlice()...)
		}
		return nil
	})
	r.OnError(func(req *resty.Request, err error) {
		c.metrics.Record(time.Since(req.Time), true)
		c.logger.WarnContext(req.Context(), "API request failed",
			log.NewFields().
				WithHTTPRequest(req.Method, req.URL).
				WithRequestID(trace.RequestID(req.Context())).
				WithErrorType(log.ErrorTypeNetwork).
				WithError(err).ToSlice()...)
	})

	return c
}

// Stats returns counters for the calls made so far.
func (c *Client) Stats() trace.Snapshot {
	return c.metrics.Snapshot()
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

// request describes one API call.
type request struct {
	method string
	path   string
	auth   bool
	query  map[string]string
	body   any
	out    any
	// want, when set, is the only status accepted as success.
	want int
}

func (c *Client) do(ctx context.Context, rq request) (*resty.Response, error) {
	ctx, id := trace.Ensure(ctx)
	req := c.resty.R().SetContext(ctx).SetHeader(trace.HeaderRequestID, id)
	if rq.auth {
		if token, ok := c.tokens.Token(); ok {
			req.SetAuthToken(token)
		}
	}
	if len(rq.query) > 0 {
		req.SetQueryParams(rq.query)
	}
	if rq.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(rq.body)
	}

	resp, err := req.Execute(rq.method, rq.path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", rq.method, rq.path, ErrNoResponse, err)
	}

	if resp.IsError() {
		return resp, &StatusError{Status: resp.StatusCode(), Message: serverMessage(resp.Body())}
	}
	if rq.want != 0 && resp.StatusCode() != rq.want {
		return resp, &StatusError{Status: resp.StatusCode()}
	}

	if rq.out != nil && len(bytes.TrimSpace(resp.Body())) > 0 {
		if err := json.Unmarshal(resp.Body(), rq.out); err != nil {
			return resp, fmt.Errorf("%s %s: decode response: %w", rq.method, rq.path, err)
		}
	}
	return resp, nil
}

// IsNoResponse reports whether err means the server could not be reached.
func IsNoResponse(err error) bool {
	return errors.Is(err, ErrNoResponse)
}
