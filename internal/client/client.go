// Package client talks to the canteen ordering backend.
//
// A Client wraps one HTTP request per operation. Reads (menu, orders) and
// staff mutations (order status, sold-out flag) never fail loudly: they
// return an Outcome whose Value holds an empty or false result when the
// request fails, and whose Err says why. PlaceOrder is the exception and
// returns an error the caller is expected to show to the user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// CredentialPolicy decides which requests carry the client's cookies
type CredentialPolicy int

const (
	// CredentialsStaffListing sends cookies only on the staff order listing
	// and on login/logout, matching the backend's documented contract.
	CredentialsStaffListing CredentialPolicy = iota
	// CredentialsAlways sends cookies on every request
	CredentialsAlways
)

// ParseCredentialPolicy maps "listing" and "always" to a policy
func ParseCredentialPolicy(s string) (CredentialPolicy, error) {
	switch s {
	case "", "listing":
		return CredentialsStaffListing, nil
	case "always":
		return CredentialsAlways, nil
	default:
		return CredentialsStaffListing, fmt.Errorf("unknown credential policy %q", s)
	}
}

// RequestIDHeader carries a per-request correlation id
const RequestIDHeader = "X-Request-Id"

// Client is a canteen backend client. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	jar         http.CookieJar
	credentials CredentialPolicy
	log         *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. A Jar set on it is taken
// over by the Client so cookies follow the credential policy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCookieJar sets the jar used for credentialed requests
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithCredentials sets the credential policy
func WithCredentials(policy CredentialPolicy) Option {
	return func(c *Client) {
		c.credentials = policy
	}
}

// WithLogger sets the logger used for request failures
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the backend at baseURL (e.g. "http://localhost:8080")
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Cookies are attached by hand per request, so the transport-level jar
	// is detached from a private copy of the HTTP client.
	hc := *c.httpClient
	if c.jar == nil {
		c.jar = hc.Jar
	}
	hc.Jar = nil
	if hc.CheckRedirect == nil {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	c.httpClient = &hc

	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.jar = jar
	}

	return c, nil
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// request describes a single backend call
type request struct {
	method       string
	path         string
	body         any
	credentialed bool
}

// do sends the request. The caller closes the response body.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	u := c.endpoint(r.path)

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	credentialed := r.credentialed || c.credentials == CredentialsAlways
	if credentialed {
		markCredentialed(req)
		for _, cookie := range c.jar.Cookies(u) {
			req.AddCookie(cookie)
		}
	}

	// A transport failure is returned as the *url.Error, which already names
	// the method and URL.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if credentialed {
		if cookies := resp.Cookies(); len(cookies) > 0 {
			c.jar.SetCookies(u, cookies)
		}
	}

	return resp, nil
}

// endpoint resolves an absolute API path against the base URL
func (c *Client) endpoint(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = ""
	return &u
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// decodeJSON reads the whole body into v
func decodeJSON(resp *http.Response, v any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
