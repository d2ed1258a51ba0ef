package archive

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

// DefaultUserAgent identifies this library in requests when the caller does
// not supply a user-agent of their own.
const DefaultUserAgent = "petabox <https://github.com/archivetools/petabox>"

// Config contains connection settings shared by all client surfaces. The
// remote service exposes several hosts: the main site (metadata, task
// search/submit), the S3-like object host, the download host, and the
// catalog host that serves task logs.
type Config struct {
	// BaseURL is the main site, serving the metadata and task-queue APIs.
	// Example: "https://archive.org"
	BaseURL string

	// S3URL is the S3-like object API host used for uploads and file
	// listings. Example: "https://s3.us.archive.org"
	S3URL string

	// DownloadURL is the host files are downloaded from.
	// Example: "https://archive.org/download"
	DownloadURL string

	// CatalogURL is the catalog host serving task logs.
	// Example: "https://catalogd.archive.org"
	CatalogURL string

	// UserAgent is sent with every request. Defaults to DefaultUserAgent
	// when empty.
	UserAgent string

	// Timeout for HTTP requests. Zero means no client-side timeout; the
	// library configures none itself.
	Timeout time.Duration

	// TLSVerify controls TLS certificate verification. Set to false only
	// for testing against self-signed endpoints.
	TLSVerify *bool
}

// DefaultConfig returns a Config pointed at the public archive.org hosts.
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:     "https://archive.org",
		S3URL:       "https://s3.us.archive.org",
		DownloadURL: "https://archive.org/download",
		CatalogURL:  "https://catalogd.archive.org",
		UserAgent:   DefaultUserAgent,
		TLSVerify:   &tlsVerify,
	}
}

// SetDefaults fills any unset field from DefaultConfig.
func (c *Config) SetDefaults() {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.S3URL == "" {
		c.S3URL = defaults.S3URL
	}
	if c.DownloadURL == "" {
		c.DownloadURL = defaults.DownloadURL
	}
	if c.CatalogURL == "" {
		c.CatalogURL = defaults.CatalogURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
}

// Validate checks the configuration. All problems are reported together as a
// multierror rather than stopping at the first one.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.S3URL, validation.Required),
		validation.Field(&c.DownloadURL, validation.Required),
		validation.Field(&c.CatalogURL, validation.Required),
		validation.Field(&c.UserAgent, validation.Required),
	); err != nil {
		result = multierror.Append(result, fmt.Errorf("validation error: %w", err))
	}

	for _, endpoint := range []struct {
		name  string
		value string
	}{
		{"base_url", c.BaseURL},
		{"s3_url", c.S3URL},
		{"download_url", c.DownloadURL},
		{"catalog_url", c.CatalogURL},
	} {
		if endpoint.value == "" {
			continue
		}
		parsed, err := url.Parse(endpoint.value)
		if err != nil {
			result = multierror.Append(result,
				fmt.Errorf("invalid %s: %w", endpoint.name, err))
			continue
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			result = multierror.Append(result, fmt.Errorf(
				"%s must use http or https scheme, got: %s",
				endpoint.name, parsed.Scheme))
		}
	}

	return result.ErrorOrNil()
}

// NewHTTPClient creates a configured HTTP client shared by all surfaces.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
