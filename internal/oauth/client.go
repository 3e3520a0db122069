package oauth

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// GrantTypeDeviceCode identifies the device authorization grant per RFC 8628 section 3.4
	GrantTypeDeviceCode = "urn:ietf:params:oauth:grant-type:device_code"

	formContentType = "application/x-www-form-urlencoded"

	defaultTimeout      = 10 * time.Second
	defaultMaxFailures  = 5
	defaultOpenTimeout  = 30 * time.Second
	maxResponseBodySize = 1 << 20
)

// errServerStatus marks 5xx responses as breaker failures without hiding the response
var errServerStatus = errors.New("upstream server error")

// Observer receives one observation per upstream round trip.
// statusCode is 0 when the upstream could not be reached.
type Observer interface {
	ObserveUpstream(endpoint string, statusCode int, elapsed time.Duration)
}

// Client performs requests against the upstream identity provider
type Client struct {
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	observer  Observer
	logger    *zap.Logger
	endpoints Endpoints
	clientID  string
	secret    string
	admin     Credentials
	scope     string

	maxFailures uint32
	openTimeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from Config
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithObserver registers an observer for upstream latency and status
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithLogger sets the logger used for breaker state changes
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithBreaker tunes the circuit breaker. The breaker opens after maxFailures
// consecutive transport errors or 5xx responses and stays open for openTimeout.
func WithBreaker(maxFailures uint32, openTimeout time.Duration) Option {
	return func(c *Client) {
		c.maxFailures = maxFailures
		c.openTimeout = openTimeout
	}
}

// NewClient creates a new upstream client
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	paths := cfg.Paths
	if paths == (Paths{}) {
		paths = DefaultPaths()
	}
	endpoints, err := paths.Resolve(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("resolving endpoints: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // development only
	}

	c := &Client{
		http:        &http.Client{Timeout: timeout, Transport: transport},
		logger:      zap.NewNop(),
		endpoints:   endpoints,
		clientID:    cfg.ClientID,
		secret:      cfg.ClientSecret,
		admin:       cfg.Admin,
		scope:       cfg.Scope,
		maxFailures: defaultMaxFailures,
		openTimeout: defaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "oauth-upstream",
		Timeout: c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.maxFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations and unusable bodies say nothing about upstream availability
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrInvalidResponse)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	return c, nil
}

// Endpoints returns the resolved upstream URLs
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// DeviceAuthorize requests a device code per RFC 8628 section 3.1
func (c *Client) DeviceAuthorize(ctx context.Context) (*Response, error) {
	data := url.Values{
		"client_id": {c.clientID},
	}

	req, err := c.newFormRequest(ctx, c.withScope(c.endpoints.DeviceAuthorize), data)
	if err != nil {
		return nil, fmt.Errorf("creating device authorization request: %w", err)
	}
	if c.secret != "" {
		req.SetBasicAuth(c.clientID, c.secret)
	}

	return c.do(ctx, EndpointDeviceAuthorize, c.http, req)
}

// PollToken performs one device access token request per RFC 8628 section 3.4
func (c *Client) PollToken(ctx context.Context, deviceCode string) (*Response, error) {
	data := url.Values{
		"client_id":   {c.clientID},
		"device_code": {deviceCode},
		"grant_type":  {GrantTypeDeviceCode},
	}

	req, err := c.newFormRequest(ctx, c.withScope(c.endpoints.Token), data)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	if c.secret != "" {
		req.SetBasicAuth(c.clientID, c.secret)
	}

	return c.do(ctx, EndpointToken, c.http, req)
}

// Introspect queries the introspection endpoint with admin credentials
func (c *Client) Introspect(ctx context.Context, token string) (*Response, error) {
	req, err := c.newFormRequest(ctx, c.endpoints.Introspect, url.Values{"token": {token}})
	if err != nil {
		return nil, fmt.Errorf("creating introspection request: %w", err)
	}
	req.SetBasicAuth(c.admin.Username, c.admin.Password)

	return c.do(ctx, EndpointIntrospect, c.http, req)
}

// Revoke asks the upstream to revoke a token using client credentials
func (c *Client) Revoke(ctx context.Context, token string) (*Response, error) {
	req, err := c.newFormRequest(ctx, c.endpoints.Revoke, url.Values{"token": {token}})
	if err != nil {
		return nil, fmt.Errorf("creating revocation request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)

	return c.do(ctx, EndpointRevoke, c.http, req)
}

// UserInfo fetches the user-info document with the token as bearer credential
func (c *Client) UserInfo(ctx context.Context, token string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.UserInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("creating user info request: %w", err)
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.http), src)
	hc.Timeout = c.http.Timeout

	return c.do(ctx, EndpointUserInfo, hc, req)
}

// CheckHealth verifies the provider is accessible
func (c *Client) CheckHealth(ctx context.Context) error {
	if c.endpoints.Health == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Health, nil)
	if err != nil {
		return fmt.Errorf("creating health check request: %w", err)
	}

	// Probes bypass the breaker so a down IdP cannot hold it open
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending health check request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) newFormRequest(ctx context.Context, endpoint string, data url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) withScope(endpoint string) string {
	if c.scope == "" {
		return endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	q.Set("scope", c.scope)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, endpoint string, hc *http.Client, req *http.Request) (*Response, error) {
	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := hc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}

		out := &Response{StatusCode: resp.StatusCode}
		if len(body) > maxResponseBodySize {
			return out, InvalidResponse(endpoint, fmt.Sprintf("body exceeds %d bytes", maxResponseBodySize), nil)
		}
		out.Body = body
		if resp.StatusCode >= http.StatusInternalServerError {
			return out, errServerStatus
		}
		return out, nil
	})

	if errors.Is(err, errServerStatus) {
		resp := result.(*Response)
		c.observe(endpoint, resp.StatusCode, start)
		return resp, nil
	}
	if errors.Is(err, ErrInvalidResponse) {
		c.observe(endpoint, result.(*Response).StatusCode, start)
		return nil, err
	}
	if err != nil {
		c.observe(endpoint, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Operation: endpoint, Err: err}
	}

	resp := result.(*Response)
	c.observe(endpoint, resp.StatusCode, start)
	return resp, nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(endpoint, status, time.Since(start))
	}
}
