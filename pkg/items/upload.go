package items

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/archivetools/petabox/pkg/archive"
)

// UploadOptions describes one file upload.
type UploadOptions struct {
	// Path is both the filename and the location within the item where the
	// file is stored, e.g. "a_directory/myfile.txt".
	Path string

	// Body provides the file contents. The service requires an accurate
	// content-length, so Size must match what Body yields.
	Body io.Reader

	// Size is the exact number of bytes Body will provide.
	Size int64

	// Derive controls whether the service queues a derive task after the
	// upload, producing secondary files from the uploaded data.
	Derive bool

	// Metadata is attached as x-archive-meta-* headers. The service stores
	// it only when this upload creates the item; otherwise it is silently
	// discarded server-side.
	Metadata map[string]string
}

// Upload uploads one file to the item. Uploaded files may not be available
// immediately, depending on how busy the service is; use the tasks package
// to track progress.
func (i *Item) Upload(ctx context.Context, opts UploadOptions) error {
	const op = "items.Upload"

	endpoint := fmt.Sprintf("%s/%s/%s", i.cfg.S3URL, i.identifier, escapePath(opts.Path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, opts.Body)
	if err != nil {
		return archive.NewError(op, archive.ErrTransport, err)
	}
	req.ContentLength = opts.Size

	req.Header.Set("user-agent", i.resolveUserAgent())
	archive.SetHeader(req, archive.KeepOldVersion(i.keepOldVersions))
	archive.SetHeader(req, archive.AutoMakeBucket(i.autoMakeBucket))
	archive.SetHeader(req, archive.QueueDerive(opts.Derive))
	archive.SetHeader(req, archive.SizeHint(opts.Size))

	for name, value := range opts.Metadata {
		archive.SetHeader(req, archive.Meta{Name: name, Value: value})
	}

	if i.credentials != nil {
		archive.SetHeader(req, i.credentials.Header())
	}

	i.logger.Debug("uploading file",
		"identifier", i.identifier,
		"path", opts.Path,
		"size", opts.Size,
		"derive", opts.Derive,
	)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	return archive.ClassifyStatus(op, resp.StatusCode)
}

// Download streams a file from the item into w, returning the number of
// bytes written. The filepath is the file's location within the item; use
// List to discover available files.
//
// No size restriction is applied: if w stores data in memory, the caller is
// responsible for ensuring the file fits.
func (i *Item) Download(ctx context.Context, filepath string, w io.Writer) (int64, error) {
	const op = "items.Download"

	endpoint := fmt.Sprintf("%s/%s/%s", i.cfg.DownloadURL, i.identifier, escapePath(filepath))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, archive.NewError(op, archive.ErrTransport, err)
	}

	req.Header.Set("user-agent", i.resolveUserAgent())
	if i.credentials != nil {
		archive.SetHeader(req, i.credentials.Header())
	}

	i.logger.Debug("downloading file", "identifier", i.identifier, "path", filepath)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return 0, archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := archive.ClassifyStatus(op, resp.StatusCode); err != nil {
		return 0, err
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, archive.NewError(op, archive.ErrLocalIO, err)
	}
	return n, nil
}

// escapePath keeps URL-reserved characters in user-supplied paths from
// breaking the request target.
func escapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
