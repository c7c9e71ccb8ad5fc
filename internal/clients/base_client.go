package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transitpay/internal/metrics"
	"transitpay/internal/models"
)

// ErrSessionExpired is returned for any 401; the session has already been cleared.
var ErrSessionExpired = errors.New("session expired, please login again")

const defaultFailureMessage = "request failed"

// APIError is a non-2xx, non-401 backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Session is the part of the session store the client depends on.
type Session interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	// Route is the low-cardinality path template used for metrics and logs; defaults to Path.
	Route   string
	Query   url.Values
	Body    any
	Headers map[string]string
}

func (r Request) route() string {
	if r.Route != "" {
		return r.Route
	}
	return r.Path
}

// BaseClient issues authenticated JSON requests against the backend and unwraps the
// {data, message} envelope. It never retries.
type BaseClient struct {
	baseURL   string
	client    HTTPDoer
	session   Session
	logger    *zap.Logger
	metrics   *metrics.Client
	requestID func() string
}

// Option customises a BaseClient.
type Option func(*BaseClient)

// WithMetrics instruments every round trip.
func WithMetrics(m *metrics.Client) Option {
	return func(c *BaseClient) { c.metrics = m }
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *BaseClient) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// NewBaseClient builds client with base URL. session may be nil for anonymous use.
func NewBaseClient(baseURL string, client HTTPDoer, session Session, logger *zap.Logger, opts ...Option) *BaseClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &BaseClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		session:   session,
		logger:    logger,
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BaseClient) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do executes req and decodes the envelope data into out (which may be nil).
// Every failure is logged before it is returned.
func (c *BaseClient) Do(ctx context.Context, req Request, out any) error {
	reqID := c.requestID()
	err := c.do(ctx, req, reqID, out)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", req.Method),
			zap.String("route", req.route()),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
	}
	return err
}

func (c *BaseClient) do(ctx context.Context, req Request, reqID string, out any) error {
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.buildURL(req.Path, req.Query), reader)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if c.session != nil {
		token, err := c.session.Token(ctx)
		if err != nil {
			c.logger.Warn("sending request without token", zap.String("route", req.route()), zap.Error(err))
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	route := req.route()
	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.metrics.Observe(route, req.Method, 0, time.Since(start))
		c.metrics.Failure(route, "network")
		return err
	}
	defer resp.Body.Close()
	c.metrics.Observe(route, req.Method, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		c.metrics.Failure(route, "unauthorized")
		if c.session != nil {
			if clearErr := c.session.Clear(ctx); clearErr != nil {
				c.logger.Error("failed to clear expired session", zap.Error(clearErr))
			}
		}
		return ErrSessionExpired
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Failure(route, "network")
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Failure(route, "api")
		return &APIError{StatusCode: resp.StatusCode, Message: failureMessage(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.metrics.Failure(route, "decode")
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.metrics.Failure(route, "decode")
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func failureMessage(body []byte) string {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err == nil && strings.TrimSpace(env.Message) != "" {
		return env.Message
	}
	return defaultFailureMessage
}

// doData runs req and returns the decoded envelope data.
func doData[T any](ctx context.Context, c *BaseClient, req Request) (T, error) {
	var out T
	err := c.Do(ctx, req, &out)
	return out, err
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
