// Package fetch is the HTTP collaborator shared by the commands that talk to
// dealer sites and the GitHub API. Every request is a single attempt; a
// non-2xx status is returned as an *errors.APIError.
package fetch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// Client performs HTTP GET requests.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader("User-Agent", ua)
		}
	}
}

// WithToken authenticates requests with a GitHub style "token" header.
func WithToken(token string) Option {
	return func(c *resty.Client) {
		if token != "" {
			c.SetHeader("Authorization", "token "+token)
		}
	}
}

// WithHeader sets an arbitrary request header.
func WithHeader(key, value string) Option {
	return func(c *resty.Client) {
		c.SetHeader(key, value)
	}
}

// New creates a Client with the default timeout and user agent.
func New(opts ...Option) *Client {
	client := resty.New()
	client.SetTimeout(constants.DefaultHTTPTimeout)
	client.SetHeader("User-Agent", constants.DefaultUserAgent)
	for _, opt := range opts {
		opt(client)
	}
	return &Client{http: client}
}

// Get fetches url with the given query parameters and returns the body.
func (c *Client) Get(ctx context.Context, url string, query map[string]string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return nil, errors.WrapAPI(url, 0, err)
	}
	if res.IsError() {
		return nil, errors.NewAPIError(url, res.StatusCode(), res.Status())
	}
	return res.Body(), nil
}

// Text fetches url and returns the body as a string.
func (c *Client) Text(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// JSON fetches url and decodes the JSON body into out.
func (c *Client) JSON(ctx context.Context, url string, query map[string]string, out any) error {
	body, err := c.Get(ctx, url, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapParse("json", url, err)
	}
	return nil
}
