package core

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	// retryMax bounds each call to 5 total attempts.
	retryMax     = 4
	retryWaitMin = 100 * time.Millisecond
	retryWaitMax = 5 * time.Second
)

var (
	// A url.Error caused by one of these is not a connectivity problem
	// and is never retried.
	redirectsErrorRe = regexp.MustCompile(`stopped after \d+ redirects\z`)
	schemeErrorRe    = regexp.MustCompile(`unsupported protocol scheme`)
)

// ClientOption adjusts optional client behavior.
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger hclog.Logger
}

// WithLogger attaches a logger to the client. Retries and request
// failures are logged through it.
func WithLogger(logger hclog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// Client performs JSON requests against one service, applying the
// shared retry policy to every call.
type Client struct {
	base   *url.URL
	config *HTTPConfiguration
	http   *retryablehttp.Client
}

// NewClient creates a client rooted at the given service path under the
// configured server URI. When config is nil, the local configuration
// manager supplies one.
func NewClient(config *HTTPConfiguration, servicePath string, opts ...ClientOption) (*Client, error) {
	options := clientOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = hclog.NewNullLogger()
	}

	if config == nil {
		var err error
		config, err = NewConfigurationManager().GetConfiguration("", true)
		if err != nil {
			return nil, err
		}
	}

	base, err := url.Parse(strings.TrimRight(config.URI, "/") + "/" + strings.Trim(servicePath, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse service uri")
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = config.Timeout
	if httpClient.Timeout == 0 {
		httpClient.Timeout = DefaultTimeout
	}
	if config.CertPath != "" {
		pool, err := loadCertPool(config.CertPath)
		if err != nil {
			return nil, err
		}
		httpClient.Transport.(*http.Transport).TLSClientConfig = &tls.Config{
			RootCAs: pool,
		}
	}

	rClient := retryablehttp.NewClient()
	rClient.HTTPClient = httpClient
	rClient.RetryMax = retryMax
	rClient.RetryWaitMin = retryWaitMin
	rClient.RetryWaitMax = retryWaitMax
	rClient.CheckRetry = checkRetry
	rClient.Logger = options.logger
	// Surface the final failed response instead of a giving-up error so
	// callers see the status of the last attempt.
	rClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		base:   base,
		config: config,
		http:   rClient,
	}, nil
}

// checkRetry retries connection-level failures and the transient status
// codes 429, 502, 503, and 504. Everything else propagates on the first
// attempt.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		if v, ok := err.(*url.Error); ok {
			if redirectsErrorRe.MatchString(v.Error()) {
				return false, v
			}
			if schemeErrorRe.MatchString(v.Error()) {
				return false, v
			}
			if _, ok := v.Err.(x509.UnknownAuthorityError); ok {
				return false, v
			}
		}

		// Anything else at this level happened before a status was
		// received: connection refused, reset, or a timeout.
		return true, nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}

	return false, nil
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	_, err := c.Do(ctx, http.MethodGet, path, query, nil, out)
	return err
}

// Post performs a POST request with a JSON body and decodes the
// response into out when out is non-nil.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) error {
	_, err := c.Do(ctx, http.MethodPatch, path, nil, body, nil)
	return err
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// Do performs one logical request, retrying per the client policy, and
// decodes a JSON response body into out when out is non-nil and the
// response has content. The response status code is returned so callers
// can distinguish full from partial success.
func (c *Client) Do(ctx context.Context, method string, path string, query url.Values, body interface{}, out interface{}) (int, error) {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decode response body")
	}

	return resp.StatusCode, nil
}

// DoStream performs one request and hands the response body to the
// caller. The retry policy applies to establishing the response only;
// the caller owns closing the body.
func (c *Client) DoStream(ctx context.Context, method string, path string, body interface{}) (io.ReadCloser, error) {
	resp, err := c.send(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, method string, path string, query url.Values, body interface{}) (*http.Response, error) {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshal request body")
		}
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody interface{}
	if raw != nil {
		reqBody = raw
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("x-ni-api-key", c.config.APIKey)
	} else if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}

	if resp.StatusCode >= 400 {
		apiErr := readAPIError(resp)
		resp.Body.Close()
		return nil, apiErr
	}

	return resp, nil
}

// readAPIError converts an error response into an APIError, keeping the
// status code even when the body carries no structured error.
func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	parsed := errorResponse{}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
		*apiErr = *parsed.Error
		apiErr.StatusCode = resp.StatusCode
	}

	return apiErr
}

func loadCertPool(certPath string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(certPath)
	if err != nil {
		return nil, errors.Wrap(err, "read ca certificate")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no certificates found in %s", certPath)
	}

	return pool, nil
}
