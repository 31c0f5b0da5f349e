package core

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultTimeout is the per-attempt request timeout applied when a
	// configuration does not specify one.
	DefaultTimeout = 60 * time.Second

	cloudURI = "https://api.systemlinkcloud.com"

	envAPIURI = "SYSTEMLINK_API_URI"
	envAPIKey = "SYSTEMLINK_API_KEY"
)

// HTTPConfiguration describes a SystemLink web server and how to
// authenticate against it.
type HTTPConfiguration struct {
	// URI is the scheme, host, and optional port of the web server.
	URI string

	// APIKey is sent as the x-ni-api-key header when set.
	APIKey string

	// Username and Password are used for basic authentication when no
	// API key is set.
	Username string
	Password string

	// CertPath is an optional path to a PEM CA bundle used to verify
	// the server certificate.
	CertPath string

	// Workspace is the ID of the workspace the connected system
	// belongs to, when known.
	Workspace string

	// Timeout bounds each request attempt. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewHTTPConfiguration creates a configuration for the given server URI
// and API key.
func NewHTTPConfiguration(uri string, apiKey string) (*HTTPConfiguration, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(err, "parse server uri")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("server uri must be http or https: %s", uri)
	}

	return &HTTPConfiguration{
		URI:    strings.TrimRight(uri, "/"),
		APIKey: apiKey,
	}, nil
}

// NewCloudHTTPConfiguration creates a configuration for SystemLink Cloud.
func NewCloudHTTPConfiguration(apiKey string) (*HTTPConfiguration, error) {
	return NewHTTPConfiguration(cloudURI, apiKey)
}

// NewEnvHTTPConfiguration creates a configuration from the
// SYSTEMLINK_API_URI and SYSTEMLINK_API_KEY environment variables, as
// populated for hosted notebook execution.
func NewEnvHTTPConfiguration() (*HTTPConfiguration, error) {
	uri := os.Getenv(envAPIURI)
	key := os.Getenv(envAPIKey)
	if uri == "" || key == "" {
		return nil, errors.Errorf("%s and %s are not set", envAPIURI, envAPIKey)
	}

	return NewHTTPConfiguration(uri, key)
}
