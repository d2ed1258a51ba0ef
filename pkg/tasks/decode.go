package tasks

import "encoding/json"

// SearchResponse is the decoded result of one search call.
type SearchResponse struct {
	// Success is the server's success flag.
	Success bool

	// Catalog lists active tasks (queued, running, errored, or paused).
	Catalog []CatalogEntry

	// History lists completed tasks.
	History []HistoryEntry

	// Summary holds total counts of active tasks by status. Nil when the
	// summary category was not requested or the server omitted it. The
	// counts are global and unaffected by pagination.
	Summary *Summary

	// Cursor is the opaque pagination token. Empty when there is no more
	// data to retrieve.
	Cursor string
}

// CatalogEntry is a snapshot of a single active task.
type CatalogEntry struct {
	Args       map[string]string `json:"args"`
	Cmd        string            `json:"cmd"`
	Identifier string            `json:"identifier"`
	Priority   int               `json:"priority"`

	// Server is empty while the task has not been assigned to a server.
	Server     string `json:"server"`
	Status     Status `json:"status"`
	Submitter  string `json:"submitter"`
	SubmitTime string `json:"submittime"`
	TaskID     int64  `json:"task_id"`
}

// HistoryEntry is a snapshot of a single completed task.
type HistoryEntry struct {
	Args       map[string]string `json:"args"`
	Cmd        string            `json:"cmd"`
	Finished   int64             `json:"finished"`
	Identifier string            `json:"identifier"`
	Priority   int               `json:"priority"`
	Server     string            `json:"server"`
	Submitter  string            `json:"submitter"`
	SubmitTime string            `json:"submittime"`
	TaskID     int64             `json:"task_id"`
}

// Summary holds total counts of active tasks matched by a search, by status.
// Completed tasks are not counted.
type Summary struct {
	Queued  int `json:"queued"`
	Running int `json:"running"`
	Error   int `json:"error"`
	Paused  int `json:"paused"`
}

// searchEnvelope is the outer response shape. The inner value is captured
// raw so it can be decoded leniently.
type searchEnvelope struct {
	Success bool            `json:"success"`
	Value   json.RawMessage `json:"value"`
}

type searchValue struct {
	Catalog []CatalogEntry `json:"catalog"`
	History []HistoryEntry `json:"history"`
	Summary *Summary       `json:"summary"`
	Cursor  string         `json:"cursor"`
}

// decodeSearchResponse decodes a search response body. The decode is two
// stage: the outer {success, value} envelope must parse, but any failure to
// decode the inner value substitutes an all-defaults value instead of
// failing the response. The server is known to return an empty array in
// place of the value object when there is nothing to report, and the set of
// malformed shapes it may emit is not fully known, so the fallback applies
// to every inner decode failure.
func decodeSearchResponse(body []byte) (*SearchResponse, error) {
	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	var value searchValue
	if len(envelope.Value) > 0 {
		if err := json.Unmarshal(envelope.Value, &value); err != nil {
			value = searchValue{}
		}
	}

	resp := &SearchResponse{
		Success: envelope.Success,
		Catalog: value.Catalog,
		History: value.History,
		Summary: value.Summary,
		Cursor:  value.Cursor,
	}
	if resp.Catalog == nil {
		resp.Catalog = []CatalogEntry{}
	}
	if resp.History == nil {
		resp.History = []HistoryEntry{}
	}
	return resp, nil
}
