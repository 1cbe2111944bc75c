package eveapi

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://api.eveonline.com"
	DefaultTimeout = 30 * time.Second
)

type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client performs single-shot GET requests against the EVE XML API. It never
// retries; a failed request is reported to the caller as is.
type Client struct {
	client *resty.Client
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0)

	// CCP asks third party tools to identify themselves.
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{client: c}
}

// Fetch requests path with params as the query string and returns the raw
// body. Error bodies are returned as well since the API reports its own
// errors inside the XML envelope.
func (c *Client) Fetch(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		log.Errorf("Request to %s failed: %s", path, err)
		return nil, errors.Join(ErrTransport, err)
	}

	body := resp.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		if resp.IsError() {
			return nil, ToErrorFromResponse(resp)
		}

		return nil, ErrEmptyResponse
	}

	if resp.IsError() {
		log.Warnf("Request to %s answered with HTTP %d", path, resp.StatusCode())
	}

	return body, nil
}
