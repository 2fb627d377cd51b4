package fetch

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGitHubBase = "https://api.github.com"
	defaultLinearBase = "https://api.linear.app"
	userAgent         = "devdeck"
)

// Client fetches PR and issue metadata.
type Client struct {
	httpClient *http.Client
	githubBase string
	linearBase string
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout bounds every request. Zero leaves requests bounded only by
// their context. Apply it after WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d <= 0 {
			return
		}
		c := *cl.httpClient
		c.Timeout = d
		cl.httpClient = &c
	}
}

// WithGitHubBaseURL points the client at a GitHub Enterprise or test server.
func WithGitHubBaseURL(base string) Option {
	return func(cl *Client) {
		if base != "" {
			cl.githubBase = strings.TrimRight(base, "/")
		}
	}
}

// WithLinearBaseURL points the client at a different Linear API host.
func WithLinearBaseURL(base string) Option {
	return func(cl *Client) {
		if base != "" {
			cl.linearBase = strings.TrimRight(base, "/")
		}
	}
}

// WithClock overrides the capture timestamp source.
func WithClock(now func() time.Time) Option {
	return func(cl *Client) {
		cl.now = now
	}
}

// New creates a Client with the given options applied in order.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		githubBase: defaultGitHubBase,
		linearBase: defaultLinearBase,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusError builds an APIError from a response, keeping the reason phrase
// the server sent.
func statusError(provider string, resp *http.Response) *APIError {
	code := strconv.Itoa(resp.StatusCode)
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, code))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return &APIError{Provider: provider, StatusCode: resp.StatusCode, Reason: reason}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func missingToken(provider string) error {
	return fmt.Errorf("%s token not found: %w", provider, ErrMissingCredential)
}
