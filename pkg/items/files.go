package items

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/archivetools/petabox/pkg/archive"
)

// FileEntry describes one file within an item, as reported by the S3-like
// bucket listing.
type FileEntry struct {
	// Path is the file's location within the item.
	Path string `xml:"Key"`

	// LastModified is the modification timestamp as reported by the
	// service.
	LastModified string `xml:"LastModified"`

	// Size is the file size in bytes.
	Size int64 `xml:"Size"`
}

// listBucketResult is the XML document the S3-like API returns for a bucket
// listing.
type listBucketResult struct {
	XMLName  xml.Name    `xml:"ListBucketResult"`
	Contents []FileEntry `xml:"Contents"`
}

// List retrieves all files contained in the item.
func (i *Item) List(ctx context.Context) ([]FileEntry, error) {
	const op = "items.List"

	endpoint := fmt.Sprintf("%s/%s", i.cfg.S3URL, i.identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}

	req.Header.Set("user-agent", i.resolveUserAgent())
	if i.credentials != nil {
		archive.SetHeader(req, i.credentials.Header())
	}

	i.logger.Debug("listing files", "identifier", i.identifier)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := archive.ClassifyStatus(op, resp.StatusCode); err != nil {
		return nil, err
	}

	var result listBucketResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, archive.NewError(op, archive.ErrParse, err)
	}

	return result.Contents, nil
}
