// Package item holds the CLI commands for the object-store and metadata
// surfaces: upload, download, ls, and metadata.
package item

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/archivetools/petabox/internal/cmd/base"
	"github.com/archivetools/petabox/pkg/items"
)

// UploadCommand uploads a local file to an item.
type UploadCommand struct {
	*base.Command

	flagItem       string
	flagRemotePath string
	flagNoDerive   bool
	flagKeepOld    bool
	flagNoAutoMake bool
	flagMeta       metaList
}

type metaList map[string]string

func (m metaList) String() string { return "" }

func (m metaList) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("metadata %q is not of the form key=value", value)
	}
	m[key] = val
	return nil
}

func (c *UploadCommand) Synopsis() string {
	return "Upload a file to an item"
}

func (c *UploadCommand) Help() string {
	return `Usage: petabox upload [options] <file>

  Uploads a local file to an item. Credentials are required. If the item
  does not exist it is created automatically unless -no-auto-make is given;
  metadata supplied with -meta is stored only when the upload creates the
  item.

Options:

  -config=<path>    HCL config file
  -item=<id>        Target item identifier (required)
  -path=<path>      Path within the item (default: the file's base name)
  -no-derive        Do not queue a derive task after the upload
  -keep-old         Back up the prior version of the file
  -no-auto-make     Do not create the item if it does not exist
  -meta key=value   Initial item metadata (repeatable)
`
}

func (c *UploadCommand) Run(args []string) int {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	c.ConfigFlags(fs)
	fs.StringVar(&c.flagItem, "item", "", "")
	fs.StringVar(&c.flagRemotePath, "path", "", "")
	fs.BoolVar(&c.flagNoDerive, "no-derive", false, "")
	fs.BoolVar(&c.flagKeepOld, "keep-old", false, "")
	fs.BoolVar(&c.flagNoAutoMake, "no-auto-make", false, "")
	c.flagMeta = metaList{}
	fs.Var(c.flagMeta, "meta", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if c.flagItem == "" || fs.NArg() != 1 {
		c.UI.Error("-item and exactly one file argument are required")
		return 1
	}
	localPath := fs.Arg(0)

	remotePath := c.flagRemotePath
	if remotePath == "" {
		remotePath = filepath.Base(localPath)
	}

	cfg, creds, err := c.ClientConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if creds == nil {
		c.UI.Error("credentials are required to upload")
		return 1
	}

	it, err := items.New(c.flagItem, cfg, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	it.WithCredentials(creds).
		WithKeepOldVersions(c.flagKeepOld).
		WithAutoMake(!c.flagNoAutoMake)

	f, err := os.Open(localPath)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	err = it.Upload(context.Background(), items.UploadOptions{
		Path:     remotePath,
		Body:     f,
		Size:     info.Size(),
		Derive:   !c.flagNoDerive,
		Metadata: c.flagMeta,
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Info(fmt.Sprintf("uploaded %s to %s/%s (%d bytes)",
		localPath, c.flagItem, remotePath, info.Size()))
	return 0
}
