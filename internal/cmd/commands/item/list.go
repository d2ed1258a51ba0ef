package item

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/archivetools/petabox/internal/cmd/base"
	"github.com/archivetools/petabox/pkg/items"
)

// ListCommand lists the files within an item.
type ListCommand struct {
	*base.Command

	flagItem string
}

func (c *ListCommand) Synopsis() string {
	return "List the files in an item"
}

func (c *ListCommand) Help() string {
	return `Usage: petabox ls [options]

  Lists all files contained in an item.

Options:

  -config=<path>   HCL config file
  -item=<id>       Item identifier (required)
`
}

func (c *ListCommand) Run(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	c.ConfigFlags(fs)
	fs.StringVar(&c.flagItem, "item", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if c.flagItem == "" {
		c.UI.Error("-item is required")
		return 1
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

	files, err := it.List(context.Background())
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	for _, f := range files {
		c.UI.Output(fmt.Sprintf("%12d  %s  %s", f.Size, f.LastModified, f.Path))
	}
	return 0
}

// MetadataCommand prints an item's metadata record.
type MetadataCommand struct {
	*base.Command

	flagItem string
}

func (c *MetadataCommand) Synopsis() string {
	return "Show an item's metadata"
}

func (c *MetadataCommand) Help() string {
	return `Usage: petabox metadata [options]

  Prints the item's metadata record as JSON.

Options:

  -config=<path>   HCL config file
  -item=<id>       Item identifier (required)
`
}

func (c *MetadataCommand) Run(args []string) int {
	fs := flag.NewFlagSet("metadata", flag.ContinueOnError)
	c.ConfigFlags(fs)
	fs.StringVar(&c.flagItem, "item", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if c.flagItem == "" {
		c.UI.Error("-item is required")
		return 1
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

	record, err := it.Metadata(context.Background())
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(string(out))
	return 0
}
