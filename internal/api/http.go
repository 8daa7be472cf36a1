package api

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

	"github.com/ngmaloney/vessel-console/internal/logging"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "VesselConsole/1.0 (github.com/ngmaloney/vessel-console)"
)

// ErrUnauthorized matches errors for requests rejected with 401.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response. Message is the server's message when the
// body carried one, otherwise a generic text for the operation.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrUnauthorized) hold for 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Option configures a Client.
type Option func(*Client)

// Client talks to the fleet API. Without WithMaxRetries a failed request
// is not repeated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	tokens     TokenSource
	cache      Cache
	cacheTTL   time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent:  defaultUserAgent,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource attaches the session whose token authorizes requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithCache caches the vessel list for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithMaxRetries retries reads that failed on the network or with a 5xx.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the base of the linear backoff between retries.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do sends a request and returns the response body of a 2xx answer.
// fallback is the message used when the server gives none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, fallback string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	retries := 0
	if method == http.MethodGet {
		retries = c.maxRetries
	}
	logger := logging.Entry(ctx)

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.retryDelay
			logger.Infof("Retrying in %s (attempt %d/%d) for %s %s", delay, attempt, retries, method, path)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%s: %w", fallback, ctx.Err())
			case <-time.After(delay):
			}
		}

		data, retry, err := c.send(ctx, method, path, endpoint, payload, fallback)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, method, path, endpoint string, payload []byte, fallback string) (data []byte, retry bool, err error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if cid := logging.CorrelationID(ctx); cid != "" {
		req.Header.Set(logging.HeaderCorrelationID, cid)
	}

	logger := logging.Entry(ctx)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warnf("Request: %s %s failed after %.3fs: %v", method, path, time.Since(start).Seconds(), err)
		return nil, true, fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()
	logger.Infof("Request: %s %s %s %.3fs", method, path, resp.Status, time.Since(start).Seconds())

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, false, nil
	}

	apiErr := &Error{
		Status:  resp.StatusCode,
		Message: serverMessage(data, fallback),
		Method:  method,
		Path:    path,
	}
	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		c.tokens.Invalidate()
	}
	return nil, resp.StatusCode >= 500, apiErr
}

// serverMessage extracts {"message": ...} from an error body. A list of
// messages is joined.
func serverMessage(body []byte, fallback string) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Message) == 0 {
		return fallback
	}

	var single string
	if err := json.Unmarshal(envelope.Message, &single); err == nil {
		if strings.TrimSpace(single) != "" {
			return single
		}
		return fallback
	}

	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil && len(many) > 0 {
		return strings.Join(many, "; ")
	}
	return fallback
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, fallback string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil, fallback)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
