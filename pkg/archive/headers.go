package archive

import (
	"fmt"
	"net/http"
	"strconv"
)

// Header is one request-level directive understood by the archival service.
// The set of implementations is closed: each variant renders to exactly one
// wire header line via pair(). Boolean flags render as "1"/"0".
//
// Headers are a pure rendering layer. No validation is performed on values;
// a negative size hint is representable but nonsensical, and the service
// will reject it server-side.
type Header interface {
	pair() (name, value string)
}

// ContentLength sets the content-length header. Normally net/http fills this
// in automatically when the body size is known.
type ContentLength int64

func (h ContentLength) pair() (string, string) {
	return "content-length", strconv.FormatInt(int64(h), 10)
}

// Authorization carries the access/secret key pair. The service uses a fixed
// "LOW" scheme rather than AWS SigV4.
type Authorization struct {
	Access string
	Secret string
}

func (h Authorization) pair() (string, string) {
	return "authorization", fmt.Sprintf("LOW %s:%s", h.Access, h.Secret)
}

// ContentType sets the content-type header.
type ContentType string

func (h ContentType) pair() (string, string) { return "content-type", string(h) }

// ContentMD5 sets the content-md5 checksum header.
type ContentMD5 string

func (h ContentMD5) pair() (string, string) { return "content-md5", string(h) }

// AutoMakeBucket asks the service to create the target item if it does not
// already exist.
type AutoMakeBucket bool

func (h AutoMakeBucket) pair() (string, string) {
	return "x-amz-auto-make-bucket", boolFlag(bool(h))
}

// CascadeDelete asks the service to also delete derived files when deleting
// an original.
type CascadeDelete bool

func (h CascadeDelete) pair() (string, string) {
	return "x-archive-cascade-delete", boolFlag(bool(h))
}

// IgnorePreexistingBucket asks the service to clear existing item metadata
// on upload.
type IgnorePreexistingBucket bool

func (h IgnorePreexistingBucket) pair() (string, string) {
	return "x-archive-ignore-preexisting-bucket", boolFlag(bool(h))
}

// KeepOldVersion asks the service to preserve the prior version of a file
// under history/files/ instead of overwriting it.
type KeepOldVersion bool

func (h KeepOldVersion) pair() (string, string) {
	return "x-archive-keep-old-version", boolFlag(bool(h))
}

// Meta attaches one item metadata pair on upload. The service stores it only
// when the upload creates the item.
type Meta struct {
	Name  string
	Value string
}

func (h Meta) pair() (string, string) {
	return "x-archive-meta-" + h.Name, h.Value
}

// QueueDerive controls whether the service queues a derive task after upload.
type QueueDerive bool

func (h QueueDerive) pair() (string, string) {
	return "x-archive-queue-derive", boolFlag(bool(h))
}

// SizeHint tells the service the expected total item size so it can pick
// appropriate storage up front.
type SizeHint int64

func (h SizeHint) pair() (string, string) {
	return "x-archive-size-hint", strconv.FormatInt(int64(h), 10)
}

// Custom is an escape hatch for headers not covered by the typed variants.
// The caller is responsible for not colliding with reserved names.
type Custom struct {
	Key   string
	Value string
}

func (h Custom) pair() (string, string) { return h.Key, h.Value }

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// HeaderPair renders a Header to its wire-level (name, value) pair without
// attaching it to a request. Rendering is deterministic.
func HeaderPair(h Header) (name, value string) {
	return h.pair()
}

// SetHeader attaches h to req. Previously attached headers of other kinds are
// preserved; attaching the same kind twice replaces the earlier value.
func SetHeader(req *http.Request, h Header) {
	name, value := h.pair()
	req.Header.Set(name, value)
}
