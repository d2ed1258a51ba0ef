package item

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archivetools/petabox/internal/cmd/base"
	"github.com/archivetools/petabox/pkg/items"
)

// DownloadCommand downloads a file from an item.
type DownloadCommand struct {
	*base.Command

	flagItem   string
	flagOutput string
}

func (c *DownloadCommand) Synopsis() string {
	return "Download a file from an item"
}

func (c *DownloadCommand) Help() string {
	return `Usage: petabox download [options] <remote-path>

  Downloads a file from an item into the current directory, or to the path
  given with -o.

Options:

  -config=<path>   HCL config file
  -item=<id>       Source item identifier (required)
  -o=<path>        Output file (default: the remote file's base name)
`
}

func (c *DownloadCommand) Run(args []string) int {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	c.ConfigFlags(fs)
	fs.StringVar(&c.flagItem, "item", "", "")
	fs.StringVar(&c.flagOutput, "o", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if c.flagItem == "" || fs.NArg() != 1 {
		c.UI.Error("-item and exactly one remote path are required")
		return 1
	}
	remotePath := fs.Arg(0)

	output := c.flagOutput
	if output == "" {
		output = filepath.Base(remotePath)
	}

	cfg, creds, err := c.ClientConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	it, err := items.New(c.flagItem, cfg, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	it.WithCredentials(creds)

	f, err := os.Create(output)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer f.Close()

	n, err := it.Download(context.Background(), remotePath, f)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Info(fmt.Sprintf("downloaded %s/%s to %s (%d bytes)",
		c.flagItem, remotePath, output, n))
	return 0
}
