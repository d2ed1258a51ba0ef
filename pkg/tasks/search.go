package tasks

import (
	"net/url"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/archivetools/petabox/pkg/archive"
)

// submitTimeLayout is the date/time format the service expects in
// submit-time filters.
const submitTimeLayout = "2006-01-02 15:04:05"

// maxSearchLimit is the service-imposed ceiling on results per page.
const maxSearchLimit = 500

// defaultSearchLimit matches the service default.
const defaultSearchLimit = 50

// Filter is one searchable predicate over the task queue. Filters are built
// with the constructor functions below; the set of predicate kinds is closed.
// Each kind maps to exactly one wire query parameter, and a request holds at
// most one value per kind (last write wins).
//
// All filters present on a request are AND-combined by the server. No OR,
// NOT, or grouping is supported by the protocol.
//
// Wildcards (`*` or `%`) are passed through verbatim where the server
// accepts them; the client does not validate or escape wildcard syntax.
type Filter struct {
	key   string
	value string
}

// FilterIdentifier filters by item identifier. Wildcards are accepted by the
// server unless the request asks for the history category.
func FilterIdentifier(identifier string) Filter {
	return Filter{key: "identifier", value: identifier}
}

// FilterTaskID filters by task identification number.
func FilterTaskID(taskID int64) Filter {
	return Filter{key: "task_id", value: strconv.FormatInt(taskID, 10)}
}

// FilterServer filters by the name of the server the task was or will be
// performed on, e.g. "ia600501.us.archive.org" or "ia*.us.*".
func FilterServer(server string) Filter {
	return Filter{key: "server", value: server}
}

// FilterCommandName filters by command name, e.g. "derive.php". Wildcards
// are accepted.
func FilterCommandName(name string) Filter {
	return Filter{key: "cmd", value: name}
}

// FilterCommand filters by a Command value's wire name.
func FilterCommand(cmd Command) Filter {
	return FilterCommandName(cmd.Name())
}

// FilterSubmitter filters by the email address of the submitting user.
// Wildcards are accepted.
func FilterSubmitter(submitter string) Filter {
	return Filter{key: "submitter", value: submitter}
}

// FilterPriority filters by task priority, typically -10 to +10.
func FilterPriority(priority int) Filter {
	return Filter{key: "priority", value: strconv.Itoa(priority)}
}

// FilterState filters by the current task status.
func FilterState(status Status) Filter {
	return Filter{key: "wait_admin", value: status.queryValue()}
}

// FilterSubmittedAfter matches tasks submitted strictly after the given
// date/time string. The string is passed through verbatim; use
// NormalizeSubmitTime or the *Time variant to format it.
func FilterSubmittedAfter(datetime string) Filter {
	return Filter{key: "submittime>", value: datetime}
}

// FilterSubmittedBefore matches tasks submitted strictly before the given
// date/time string.
func FilterSubmittedBefore(datetime string) Filter {
	return Filter{key: "submittime<", value: datetime}
}

// FilterSubmittedOnOrAfter matches tasks submitted on or after the given
// date/time string.
func FilterSubmittedOnOrAfter(datetime string) Filter {
	return Filter{key: "submittime>=", value: datetime}
}

// FilterSubmittedOnOrBefore matches tasks submitted on or before the given
// date/time string.
func FilterSubmittedOnOrBefore(datetime string) Filter {
	return Filter{key: "submittime<=", value: datetime}
}

// FilterSubmittedAfterTime is FilterSubmittedAfter with a time.Time.
func FilterSubmittedAfterTime(t time.Time) Filter {
	return FilterSubmittedAfter(t.Format(submitTimeLayout))
}

// FilterSubmittedBeforeTime is FilterSubmittedBefore with a time.Time.
func FilterSubmittedBeforeTime(t time.Time) Filter {
	return FilterSubmittedBefore(t.Format(submitTimeLayout))
}

// FilterSubmittedOnOrAfterTime is FilterSubmittedOnOrAfter with a time.Time.
func FilterSubmittedOnOrAfterTime(t time.Time) Filter {
	return FilterSubmittedOnOrAfter(t.Format(submitTimeLayout))
}

// FilterSubmittedOnOrBeforeTime is FilterSubmittedOnOrBefore with a
// time.Time.
func FilterSubmittedOnOrBeforeTime(t time.Time) Filter {
	return FilterSubmittedOnOrBefore(t.Format(submitTimeLayout))
}

// NormalizeSubmitTime parses a free-form date/time string and renders it in
// the format the service expects in submit-time filters.
func NormalizeSubmitTime(datetime string) (string, error) {
	t, err := dateparse.ParseAny(datetime)
	if err != nil {
		return "", err
	}
	return t.Format(submitTimeLayout), nil
}

// SearchRequest accumulates the parameters of a task search: optional
// credentials, user-agent, filters, the three result categories, and a
// per-page limit.
//
// A SearchRequest is reusable: each call only reads its fields, so the same
// request may drive any number of sequential calls, including a full
// pagination sequence. The cursor is passed per call, never stored here.
//
// The history category has a server-side precondition: the request must
// carry at least an identifier or task-id filter, and an identifier filter
// must be wildcard-free. This is deliberately not enforced client-side;
// violating it surfaces as a server rejection through the error taxonomy.
type SearchRequest struct {
	credentials *archive.Credentials
	userAgent   string
	filters     map[string]string
	summary     bool
	catalog     bool
	history     bool
	limit       int
}

// NewSearchRequest creates a search request with the service defaults:
// summary enabled, catalog and history disabled, limit 50.
func NewSearchRequest() *SearchRequest {
	return &SearchRequest{
		filters: make(map[string]string),
		summary: true,
		limit:   defaultSearchLimit,
	}
}

// WithCredentials sets the credentials sent with the request. Operations
// that require authentication fail with ErrForbidden when none are provided
// or the keys are invalid.
func (r *SearchRequest) WithCredentials(creds *archive.Credentials) *SearchRequest {
	r.credentials = creds
	return r
}

// WithUserAgent sets the user-agent string. An empty string selects the
// library default.
func (r *SearchRequest) WithUserAgent(userAgent string) *SearchRequest {
	r.userAgent = userAgent
	return r
}

// WithCategories selects which result categories the server returns:
// summary counts, the catalog of active tasks, and the history of completed
// tasks. Summary is enabled by default.
func (r *SearchRequest) WithCategories(summary, catalog, history bool) *SearchRequest {
	r.summary = summary
	r.catalog = catalog
	r.history = history
	return r
}

// WithLimit sets the maximum number of tasks per page, combined across the
// catalog and history categories. Values above 500 are clamped to 500 at
// assignment time. The limit has no effect on the summary category.
func (r *SearchRequest) WithLimit(limit int) *SearchRequest {
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	r.limit = limit
	return r
}

// WithFilter adds a filter to the request. Each filter kind can be present
// at most once: supplying the same kind again overwrites the earlier value.
// The server ANDs all filters together.
func (r *SearchRequest) WithFilter(f Filter) *SearchRequest {
	r.filters[f.key] = f.value
	return r
}

// Clone returns an independent copy of the request.
func (r *SearchRequest) Clone() *SearchRequest {
	out := &SearchRequest{
		credentials: r.credentials,
		userAgent:   r.userAgent,
		filters:     make(map[string]string, len(r.filters)),
		summary:     r.summary,
		catalog:     r.catalog,
		history:     r.history,
		limit:       r.limit,
	}
	for k, v := range r.filters {
		out.filters[k] = v
	}
	return out
}

// buildQuery renders the request's query parameters. The cursor is only
// meaningful relative to the exact parameter set that produced it; keeping
// the request unchanged across a pagination sequence is a caller obligation
// the protocol does not check.
func (r *SearchRequest) buildQuery(cursor string) url.Values {
	q := url.Values{}
	for key, val := range r.filters {
		q.Set(key, val)
	}
	q.Set("summary", boolQuery(r.summary))
	q.Set("catalog", boolQuery(r.catalog))
	q.Set("history", boolQuery(r.history))
	q.Set("limit", strconv.Itoa(r.limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}

func boolQuery(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
