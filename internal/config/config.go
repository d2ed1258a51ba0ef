// Package config loads CLI configuration from an HCL file.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/archivetools/petabox/pkg/archive"
)

// Config is the on-disk CLI configuration.
//
// Example:
//
//	base_url    = "https://archive.org"
//	s3_url      = "https://s3.us.archive.org"
//	user_agent  = "my-tool <me@example.com>"
//	timeout     = "30s"
//	access_key  = "..."
//	secret_key  = "..."
type Config struct {
	BaseURL     string `hcl:"base_url,optional"`
	S3URL       string `hcl:"s3_url,optional"`
	DownloadURL string `hcl:"download_url,optional"`
	CatalogURL  string `hcl:"catalog_url,optional"`
	UserAgent   string `hcl:"user_agent,optional"`
	Timeout     string `hcl:"timeout,optional"`
	TLSVerify   *bool  `hcl:"tls_verify,optional"`

	// AccessKey/SecretKey override the environment variables. Leave unset
	// to fall back to AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY.
	AccessKey string `hcl:"access_key,optional"`
	SecretKey string `hcl:"secret_key,optional"`
}

// Load reads and decodes an HCL config file.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Archive converts the file configuration into the client configuration,
// filling unset fields with defaults.
func (c *Config) Archive() (*archive.Config, error) {
	out := &archive.Config{
		BaseURL:     c.BaseURL,
		S3URL:       c.S3URL,
		DownloadURL: c.DownloadURL,
		CatalogURL:  c.CatalogURL,
		UserAgent:   c.UserAgent,
		TLSVerify:   c.TLSVerify,
	}

	if c.Timeout != "" {
		timeout, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
		out.Timeout = timeout
	}

	out.SetDefaults()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Credentials resolves credentials from the file, falling back to the
// process environment. Returns nil when neither source provides a complete
// pair.
func (c *Config) Credentials() *archive.Credentials {
	if c.AccessKey != "" && c.SecretKey != "" {
		return archive.NewCredentials(c.AccessKey, c.SecretKey)
	}
	return archive.CredentialsFromEnv()
}
