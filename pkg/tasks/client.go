package tasks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/archivetools/petabox/pkg/archive"
)

// tasksPath is the task-queue endpoint path on both the main and catalog
// hosts.
const tasksPath = "/services/tasks.php"

// Client issues task-queue API calls. All methods are synchronous and
// blocking; none retries, caches, or spawns background work. A Client is
// safe for concurrent use.
type Client struct {
	cfg        *archive.Config
	httpClient *http.Client
	logger     hclog.Logger
}

// NewClient creates a task-queue client. A nil config selects the public
// service endpoints; a nil logger disables logging.
func NewClient(cfg *archive.Config, logger hclog.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultClientConfig()
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tasks client config: %w", err)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		cfg:        cfg,
		httpClient: cfg.NewHTTPClient(),
		logger:     logger.Named("tasks-client"),
	}, nil
}

// DefaultClientConfig returns the configuration used when NewClient is
// given nil.
func DefaultClientConfig() *archive.Config {
	return archive.DefaultConfig()
}

// Search performs one task search call. cursor is the pagination token from
// a previous response, or empty for the first page.
//
// The response may carry a new cursor when more tasks match the request
// than fit in one page. The cursor is only valid with the exact request
// parameters that produced it; the caller must keep the request unchanged
// across a pagination sequence and stop calling once the cursor is absent.
func (c *Client) Search(ctx context.Context, req *SearchRequest, cursor string) (*SearchResponse, error) {
	const op = "tasks.Search"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+tasksPath, nil)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}
	httpReq.URL.RawQuery = req.buildQuery(cursor).Encode()

	httpReq.Header.Set("user-agent", resolveUserAgent(req.userAgent, c.cfg))
	if req.credentials != nil {
		archive.SetHeader(httpReq, req.credentials.Header())
	}

	c.logger.Debug("searching tasks",
		"filters", len(req.filters),
		"limit", req.limit,
		"cursor", cursor != "",
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrLocalIO, err)
	}

	if err := archive.ClassifyStatus(op, resp.StatusCode); err != nil {
		return nil, err
	}

	result, err := decodeSearchResponse(body)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrParse, err)
	}
	return result, nil
}

// SearchPages drives a full pagination sequence: it calls Search once per
// page, invoking fn with each response, and stops when the server omits the
// cursor or fn returns an error. The request is only read, never modified.
func (c *Client) SearchPages(ctx context.Context, req *SearchRequest, fn func(*SearchResponse) error) error {
	cursor := ""
	for {
		resp, err := c.Search(ctx, req, cursor)
		if err != nil {
			return err
		}
		if err := fn(resp); err != nil {
			return err
		}
		if resp.Cursor == "" {
			return nil
		}
		cursor = resp.Cursor
	}
}

// Log retrieves the plaintext log of an individual task. Logs are only
// available to the owner of the associated item or to privileged users, so
// credentials are required.
func (c *Client) Log(ctx context.Context, taskID int64, creds *archive.Credentials, userAgent string) (string, error) {
	const op = "tasks.Log"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.CatalogURL+tasksPath, nil)
	if err != nil {
		return "", archive.NewError(op, archive.ErrTransport, err)
	}

	q := httpReq.URL.Query()
	q.Set("task_log", strconv.FormatInt(taskID, 10))
	httpReq.URL.RawQuery = q.Encode()

	httpReq.Header.Set("user-agent", resolveUserAgent(userAgent, c.cfg))
	if creds != nil {
		archive.SetHeader(httpReq, creds.Header())
	}

	c.logger.Debug("retrieving task log", "task_id", taskID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", archive.NewError(op, archive.ErrLocalIO, err)
	}

	if err := archive.ClassifyStatus(op, resp.StatusCode); err != nil {
		return "", err
	}

	// The log body is an opaque plaintext blob; there is no structure to
	// validate.
	return string(body), nil
}

func resolveUserAgent(userAgent string, cfg *archive.Config) string {
	if userAgent != "" {
		return userAgent
	}
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return archive.DefaultUserAgent
}
