package items

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/archivetools/petabox/pkg/archive"
)

// MetadataRecord contains an item's metadata plus server-side placement
// details.
//
// The d1/d2/dir fields describe where the item currently lives; the item
// may be moved at any time, so constructing URLs from them is not
// recommended. Use the download host with the item identifier and relative
// file path instead.
type MetadataRecord struct {
	// Created is the UNIX epoch timestamp of when this record was created.
	// For the item's creation time check "addeddate" in Metadata instead.
	Created int64 `json:"created"`

	// Uniq is a pseudo-random value used internally by the metadata API.
	Uniq int64 `json:"uniq"`

	// D1 is the primary data server the item is stored on.
	D1 string `json:"d1"`

	// D2 is the secondary (backup) data server. May be empty in rare
	// cases.
	D2 string `json:"d2"`

	// Dir is the absolute path of the item on both data nodes.
	Dir string `json:"dir"`

	// Server is the preferred server for reading the item's contents.
	Server string `json:"server"`

	// WorkableServers lists the data servers currently available for
	// accessing the item's contents.
	WorkableServers []string `json:"workable_servers"`

	// ServersUnavailable is true when one or both data servers are
	// inaccessible.
	ServersUnavailable bool `json:"servers_unavailable"`

	// Metadata holds the item's own metadata. Values are usually strings
	// but some keys map to lists, so they are kept as raw JSON values.
	Metadata map[string]json.RawMessage `json:"metadata"`

	// ItemSize is the total size in bytes of all files within the item.
	ItemSize int64 `json:"item_size"`

	// ItemLastUpdated is the UNIX epoch timestamp of the last
	// modification.
	ItemLastUpdated int64 `json:"item_last_updated"`

	// FilesCount is the total number of files in the item.
	FilesCount int `json:"files_count"`

	// Files holds per-file metadata. Common keys: name, crc32, md5, sha1,
	// format, mtime, size, source.
	Files []map[string]string `json:"files"`

	// PendingTasks is true when one or more tasks are queued or running
	// for the item.
	PendingTasks bool `json:"pending_tasks"`

	// HasRedrow is true when one or more tasks were halted due to an
	// error.
	HasRedrow bool `json:"has_redrow"`

	// IsDark is true when the item is darked (hidden) and unavailable.
	IsDark bool `json:"is_dark"`

	// NoDownload is true when the item is not yet ready for downloading.
	NoDownload bool `json:"nodownload"`

	// IsCollection is true when the item is a collection.
	IsCollection bool `json:"is_collection"`
}

// Metadata retrieves the item's metadata record. Recent changes submitted
// via the metadata API are reflected even before they are written to disk.
func (i *Item) Metadata(ctx context.Context) (*MetadataRecord, error) {
	const op = "items.Metadata"

	endpoint := fmt.Sprintf("%s/metadata/%s", i.cfg.BaseURL, i.identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}

	req.Header.Set("user-agent", i.resolveUserAgent())
	if i.credentials != nil {
		archive.SetHeader(req, i.credentials.Header())
	}

	i.logger.Debug("fetching metadata", "identifier", i.identifier)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := archive.ClassifyStatus(op, resp.StatusCode); err != nil {
		return nil, err
	}

	var record MetadataRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, archive.NewError(op, archive.ErrParse, err)
	}
	return &record, nil
}
