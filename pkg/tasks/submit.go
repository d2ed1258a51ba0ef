package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/archivetools/petabox/pkg/archive"
)

// SubmitRequest accumulates the parameters of a task submission: the target
// item, the command to run, an optional priority, and credentials.
type SubmitRequest struct {
	identifier  string
	command     Command
	priority    int
	credentials *archive.Credentials
	userAgent   string
}

// NewSubmitRequest creates a submission request for the given item and
// command. Priority defaults to 0.
func NewSubmitRequest(identifier string, cmd Command) *SubmitRequest {
	return &SubmitRequest{
		identifier: identifier,
		command:    cmd,
	}
}

// WithCredentials sets the credentials sent with the submission. Task
// submission always requires authentication.
func (r *SubmitRequest) WithCredentials(creds *archive.Credentials) *SubmitRequest {
	r.credentials = creds
	return r
}

// WithUserAgent sets the user-agent string. An empty string selects the
// library default.
func (r *SubmitRequest) WithUserAgent(userAgent string) *SubmitRequest {
	r.userAgent = userAgent
	return r
}

// WithPriority sets the task priority, typically -10 to +10 with 0 as the
// default. The value is passed through unvalidated; out-of-range priorities
// are rejected server-side.
func (r *SubmitRequest) WithPriority(priority int) *SubmitRequest {
	r.priority = priority
	return r
}

// SubmitResponse is the decoded result of a task submission.
type SubmitResponse struct {
	Success bool `json:"success"`
	Value   struct {
		// TaskID identifies the newly queued task.
		TaskID int64 `json:"task_id"`

		// Log is the URL of the task's log.
		Log string `json:"log"`
	} `json:"value"`
}

type submitPayload struct {
	Identifier string            `json:"identifier"`
	Cmd        string            `json:"cmd"`
	Args       map[string]string `json:"args,omitempty"`
	Priority   int               `json:"priority,omitempty"`
}

// Submit queues a new task. The identifier must be valid item identifier
// syntax; a malformed one is rejected client-side before any network call.
//
// Unlike search, the submission response envelope is decoded strictly: the
// lenient inner-value fallback exists to absorb a known quirk of the search
// endpoint only.
func (c *Client) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	const op = "tasks.Submit"

	if err := archive.ValidateIdentifier(req.identifier); err != nil {
		return nil, &archive.Error{
			Op:    op,
			Err:   archive.ErrInvalidArgument,
			Msg:   "invalid identifier",
			Cause: err,
		}
	}

	payload := submitPayload{
		Identifier: req.identifier,
		Cmd:        req.command.Name(),
		Args:       req.command.Args(),
		Priority:   req.priority,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrLocalIO, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+tasksPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}

	httpReq.Header.Set("user-agent", resolveUserAgent(req.userAgent, c.cfg))
	archive.SetHeader(httpReq, archive.ContentType("application/json"))
	if req.credentials != nil {
		archive.SetHeader(httpReq, req.credentials.Header())
	}

	c.logger.Debug("submitting task",
		"identifier", req.identifier,
		"cmd", req.command.Name(),
		"priority", req.priority,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, archive.NewError(op, archive.ErrLocalIO, err)
	}

	if err := archive.ClassifyStatus(op, resp.StatusCode); err != nil {
		return nil, err
	}

	var result SubmitResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, archive.NewError(op, archive.ErrParse, err)
	}
	return &result, nil
}
