package groupme

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to the GroupMe v3 REST API on behalf of one access token.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
	logger    zerolog.Logger
	newGUID   func() string
}

const (
	defaultBaseURL   = "https://api.groupme.com"
	apiPrefix        = "/v3"
	defaultUserAgent = "huddle/0.1"
	requestTimeout   = 15 * time.Second
)

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBaseURL points the client at a different host. Any path, query or
// fragment on the value is dropped; the /v3 prefix is always added.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		if u, err := parseBaseURL(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(ua); trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// WithLogger enables debug logging of each request. The token is never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a Client for the given access token.
func NewClient(token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, fmt.Errorf("groupme: access token is required")
	}
	base, err := parseBaseURL(defaultBaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		token:     trimmed,
		userAgent: defaultUserAgent,
		logger:    zerolog.Nop(),
		newGUID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type response struct {
	status int
	body   []byte
}

// send performs exactly one HTTP exchange. Status codes are left for the
// envelope decoder since GroupMe reports failures inside the body as well.
func (c *Client) send(ctx context.Context, r request) (response, error) {
	httpReq, err := c.newHTTPRequest(ctx, r)
	if err != nil {
		return response{}, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug().Str("op", r.op).Str("method", r.method).Str("path", r.path).Err(err).Msg("groupme request failed")
		return response{}, &TransportError{Op: r.op, Kind: KindConnection, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, &TransportError{Op: r.op, Kind: KindInvalidResponse, Err: err}
	}

	c.logger.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("groupme request")

	return response{status: resp.StatusCode, body: body}, nil
}

// call sends r and unwraps a payload of type T.
func call[T any](ctx context.Context, c *Client, r request) (T, error) {
	return fetch(ctx, c, r, func(resp response) (T, error) {
		return decodeEnvelope[T](r.op, resp.status, resp.body)
	})
}

// callField sends r and unwraps the payload member named key.
func callField[T any](ctx context.Context, c *Client, r request, key string) (T, error) {
	return fetch(ctx, c, r, func(resp response) (T, error) {
		return decodeField[T](r.op, resp.status, resp.body, key)
	})
}

// callListingField is callField for message listings, where GroupMe answers
// 304 with an empty body when the filter matched nothing. That case yields
// the zero value.
func callListingField[T any](ctx context.Context, c *Client, r request, key string) (T, error) {
	return fetch(ctx, c, r, func(resp response) (T, error) {
		var zero T
		if resp.status == http.StatusNotModified {
			return zero, nil
		}
		return decodeField[T](r.op, resp.status, resp.body, key)
	})
}

func fetch[T any](ctx context.Context, c *Client, r request, decode func(response) (T, error)) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("groupme: client is nil")
	}
	resp, err := c.send(ctx, r)
	if err != nil {
		return zero, err
	}
	out, err := decode(resp)
	if err != nil {
		c.logDecodeFailure(r, err)
		return zero, err
	}
	return out, nil
}

// exec sends r for an operation that returns no payload.
func (c *Client) exec(ctx context.Context, r request) error {
	if c == nil {
		return fmt.Errorf("groupme: client is nil")
	}
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if err := decodeNoPayload(r.op, resp.status, resp.body); err != nil {
		c.logDecodeFailure(r, err)
		return err
	}
	return nil
}

func (c *Client) logDecodeFailure(r request, err error) {
	c.logger.Warn().Str("op", r.op).Str("path", r.path).Err(err).Msg("groupme call failed")
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
