// Package items provides access to individual items on the archival storage
// service: uploading and downloading files through the S3-like object API,
// listing an item's files, and reading item metadata.
//
// An item could be a book, a song, a movie, or any set of files. Each item
// has an identifier that is unique across the entire service and must follow
// the syntax rules checked by archive.ValidateIdentifier.
package items

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/archivetools/petabox/pkg/archive"
)

// Item is a handle on one item. Operations that modify the item (uploads,
// deletes) require credentials; without valid keys the service responds
// with 403 Forbidden.
//
// An Item holds no mutable state across calls and is safe for concurrent
// use once configured.
type Item struct {
	identifier      string
	credentials     *archive.Credentials
	keepOldVersions bool
	autoMakeBucket  bool
	userAgent       string

	cfg        *archive.Config
	httpClient *http.Client
	logger     hclog.Logger
}

// New creates a handle on the item with the given identifier. A nil config
// selects the public service endpoints; a nil logger disables logging.
//
// The identifier is validated client-side; a malformed one fails with
// ErrInvalidArgument before any network call.
func New(identifier string, cfg *archive.Config, logger hclog.Logger) (*Item, error) {
	const op = "items.New"

	if err := archive.ValidateIdentifier(identifier); err != nil {
		return nil, &archive.Error{
			Op:    op,
			Err:   archive.ErrInvalidArgument,
			Msg:   fmt.Sprintf("invalid identifier %q", identifier),
			Cause: err,
		}
	}

	if cfg == nil {
		cfg = archive.DefaultConfig()
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid item config: %w", err)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Item{
		identifier:     identifier,
		autoMakeBucket: true,
		cfg:            cfg,
		httpClient:     cfg.NewHTTPClient(),
		logger:         logger.Named("items"),
	}, nil
}

// Identifier returns the item's identifier.
func (i *Item) Identifier() string {
	return i.identifier
}

// WithCredentials sets the credentials used by all operations on this item.
func (i *Item) WithCredentials(creds *archive.Credentials) *Item {
	i.credentials = creds
	return i
}

// WithUserAgent sets the user-agent for all operations on this item. An
// empty string selects the library default.
func (i *Item) WithUserAgent(userAgent string) *Item {
	i.userAgent = userAgent
	return i
}

// WithKeepOldVersions controls whether file creation and deletion back up
// the prior version of the file under history/files/. Disabled by default.
func (i *Item) WithKeepOldVersions(keep bool) *Item {
	i.keepOldVersions = keep
	return i
}

// WithAutoMake controls whether the item is created automatically when a
// file is uploaded and the item does not exist yet. Enabled by default.
func (i *Item) WithAutoMake(autoMake bool) *Item {
	i.autoMakeBucket = autoMake
	return i
}

func (i *Item) resolveUserAgent() string {
	if i.userAgent != "" {
		return i.userAgent
	}
	if i.cfg.UserAgent != "" {
		return i.cfg.UserAgent
	}
	return archive.DefaultUserAgent
}
