// Package base carries the pieces shared by every CLI command: the UI, the
// logger, and resolution of client configuration and credentials.
package base

import (
	"flag"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/archivetools/petabox/internal/config"
	"github.com/archivetools/petabox/pkg/archive"
)

// Command is embedded by every CLI command.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger

	// FlagConfig is the optional path to an HCL config file.
	FlagConfig string
}

// ConfigFlags registers the flags common to all commands on fs.
func (c *Command) ConfigFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.FlagConfig, "config", "", "Path to an HCL config file (optional)")
}

// ClientConfig resolves the archive configuration and credentials: from the
// config file when one is given, otherwise defaults plus the process
// environment. The returned credentials may be nil.
func (c *Command) ClientConfig() (*archive.Config, *archive.Credentials, error) {
	if c.FlagConfig == "" {
		return archive.DefaultConfig(), archive.CredentialsFromEnv(), nil
	}

	fileCfg, err := config.Load(c.FlagConfig)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := fileCfg.Archive()
	if err != nil {
		return nil, nil, err
	}

	return cfg, fileCfg.Credentials(), nil
}
