package items

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivetools/petabox/pkg/archive"
)

func testItem(t *testing.T, identifier, serverURL string) *Item {
	t.Helper()

	cfg := archive.DefaultConfig()
	cfg.BaseURL = serverURL
	cfg.S3URL = serverURL
	cfg.DownloadURL = serverURL + "/download"

	it, err := New(identifier, cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	return it
}

func TestNew_InvalidIdentifier(t *testing.T) {
	_, err := New("not a valid identifier!", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, archive.ErrInvalidArgument))
}

func TestItemUpload(t *testing.T) {
	var gotBody []byte

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/test_item/a_directory/myfile.txt", r.URL.Path)

		assert.Equal(t, "1", r.Header.Get("x-archive-keep-old-version"))
		assert.Equal(t, "0", r.Header.Get("x-amz-auto-make-bucket"))
		assert.Equal(t, "1", r.Header.Get("x-archive-queue-derive"))
		assert.Equal(t, "12", r.Header.Get("x-archive-size-hint"))
		assert.Equal(t, "test_collection", r.Header.Get("x-archive-meta-collection"))
		assert.Equal(t, "LOW accesskey:secretkey", r.Header.Get("authorization"))
		assert.Equal(t, int64(12), r.ContentLength)

		var err error
		gotBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)

		w.WriteHeader(http.StatusOK)
	}))
	defer mockServer.Close()

	it := testItem(t, "test_item", mockServer.URL)
	it.WithCredentials(archive.NewCredentials("accesskey", "secretkey")).
		WithKeepOldVersions(true).
		WithAutoMake(false)

	err := it.Upload(context.Background(), UploadOptions{
		Path:     "a_directory/myfile.txt",
		Body:     strings.NewReader("Hello World!"),
		Size:     12,
		Derive:   true,
		Metadata: map[string]string{"collection": "test_collection"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(gotBody))
}

func TestItemUpload_Forbidden(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer mockServer.Close()

	it := testItem(t, "test_item", mockServer.URL)

	err := it.Upload(context.Background(), UploadOptions{
		Path: "f.txt",
		Body: strings.NewReader("x"),
		Size: 1,
	})
	assert.True(t, errors.Is(err, archive.ErrForbidden))
}

func TestItemList(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test_item", r.URL.Path)

		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>test_item</Name>
  <Contents>
    <Key>a_directory/myfile.txt</Key>
    <LastModified>2024-03-15T09:30:00.000Z</LastModified>
    <Size>12</Size>
  </Contents>
  <Contents>
    <Key>test_item_meta.xml</Key>
    <LastModified>2024-03-15T09:31:00.000Z</LastModified>
    <Size>512</Size>
  </Contents>
</ListBucketResult>`)
	}))
	defer mockServer.Close()

	it := testItem(t, "test_item", mockServer.URL)

	files, err := it.List(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "a_directory/myfile.txt", files[0].Path)
	assert.Equal(t, int64(12), files[0].Size)
	assert.Equal(t, "2024-03-15T09:31:00.000Z", files[1].LastModified)
}

func TestItemList_ParseFailure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `this is not xml`)
	}))
	defer mockServer.Close()

	it := testItem(t, "test_item", mockServer.URL)

	_, err := it.List(context.Background())
	assert.True(t, errors.Is(err, archive.ErrParse))
}

func TestItemDownload(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/test_item/a_directory/myfile.txt", r.URL.Path)
		fmt.Fprint(w, "Hello World!")
	}))
	defer mockServer.Close()

	it := testItem(t, "test_item", mockServer.URL)

	var buf bytes.Buffer
	n, err := it.Download(context.Background(), "a_directory/myfile.txt", &buf)
	require.NoError(t, err)

	assert.Equal(t, int64(12), n)
	assert.Equal(t, "Hello World!", buf.String())
}

func TestItemMetadata(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metadata/test_item", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"created": 1710000000,
			"uniq": 42,
			"d1": "ia600501.us.archive.org",
			"d2": "ia600502.us.archive.org",
			"dir": "/5/items/test_item",
			"server": "ia600501.us.archive.org",
			"workable_servers": ["ia600501.us.archive.org"],
			"metadata": {"identifier": "test_item", "collection": ["a", "b"]},
			"item_size": 524,
			"item_last_updated": 1710500000,
			"files_count": 2,
			"files": [{"name": "myfile.txt", "size": "12", "source": "original"}],
			"pending_tasks": true,
			"is_dark": false
		}`)
	}))
	defer mockServer.Close()

	it := testItem(t, "test_item", mockServer.URL)

	record, err := it.Metadata(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1710000000), record.Created)
	assert.Equal(t, "ia600501.us.archive.org", record.Server)
	assert.Equal(t, 2, record.FilesCount)
	assert.True(t, record.PendingTasks)
	assert.False(t, record.IsDark)
	require.Len(t, record.Files, 1)
	assert.Equal(t, "myfile.txt", record.Files[0]["name"])
	assert.JSONEq(t, `"test_item"`, string(record.Metadata["identifier"]))
	assert.JSONEq(t, `["a", "b"]`, string(record.Metadata["collection"]))
}

func TestItemBuilders(t *testing.T) {
	it, err := New("test_item", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "test_item", it.Identifier())
	assert.True(t, it.autoMakeBucket)
	assert.False(t, it.keepOldVersions)

	it.WithKeepOldVersions(true).WithAutoMake(false).WithUserAgent("custom-agent")
	assert.True(t, it.keepOldVersions)
	assert.False(t, it.autoMakeBucket)
	assert.Equal(t, "custom-agent", it.resolveUserAgent())

	it.WithUserAgent("")
	assert.Equal(t, archive.DefaultUserAgent, it.resolveUserAgent())
}
