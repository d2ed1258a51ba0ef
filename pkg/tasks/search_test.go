package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWireKeys(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filter
		wantKey   string
		wantValue string
	}{
		{name: "identifier", filter: FilterIdentifier("test_item"), wantKey: "identifier", wantValue: "test_item"},
		{name: "identifier with wildcard passes through", filter: FilterIdentifier("test*"), wantKey: "identifier", wantValue: "test*"},
		{name: "task id", filter: FilterTaskID(123456), wantKey: "task_id", wantValue: "123456"},
		{name: "server", filter: FilterServer("ia*.us.*"), wantKey: "server", wantValue: "ia*.us.*"},
		{name: "command name", filter: FilterCommandName("derive.php"), wantKey: "cmd", wantValue: "derive.php"},
		{name: "command value", filter: FilterCommand(DeriveCommand{}), wantKey: "cmd", wantValue: "derive.php"},
		{name: "submitter", filter: FilterSubmitter("someone@example.com"), wantKey: "submitter", wantValue: "someone@example.com"},
		{name: "priority", filter: FilterPriority(-5), wantKey: "priority", wantValue: "-5"},
		{name: "state queued", filter: FilterState(StatusQueued), wantKey: "wait_admin", wantValue: "0"},
		{name: "state paused", filter: FilterState(StatusPaused), wantKey: "wait_admin", wantValue: "9"},
		{name: "submitted after", filter: FilterSubmittedAfter("2024-01-01 00:00:00"), wantKey: "submittime>", wantValue: "2024-01-01 00:00:00"},
		{name: "submitted before", filter: FilterSubmittedBefore("2024-01-01 00:00:00"), wantKey: "submittime<", wantValue: "2024-01-01 00:00:00"},
		{name: "submitted on or after", filter: FilterSubmittedOnOrAfter("2024-01-01 00:00:00"), wantKey: "submittime>=", wantValue: "2024-01-01 00:00:00"},
		{name: "submitted on or before", filter: FilterSubmittedOnOrBefore("2024-01-01 00:00:00"), wantKey: "submittime<=", wantValue: "2024-01-01 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.filter.key)
			assert.Equal(t, tt.wantValue, tt.filter.value)
		})
	}
}

func TestFilterSubmittedTime(t *testing.T) {
	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	f := FilterSubmittedAfterTime(at)
	assert.Equal(t, "submittime>", f.key)
	assert.Equal(t, "2024-03-15 09:30:00", f.value)
}

func TestNormalizeSubmitTime(t *testing.T) {
	got, err := NormalizeSubmitTime("March 15, 2024 9:30am")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15 09:30:00", got)

	_, err = NormalizeSubmitTime("not a date")
	assert.Error(t, err)
}

func TestSearchRequest_WithFilterLastWriteWins(t *testing.T) {
	req := NewSearchRequest().
		WithFilter(FilterIdentifier("first_item")).
		WithFilter(FilterIdentifier("second_item"))

	assert.Equal(t, "second_item", req.filters["identifier"])
	assert.Len(t, req.filters, 1)
}

func TestSearchRequest_WithLimitClampedAtAssignment(t *testing.T) {
	req := NewSearchRequest().WithLimit(10000)

	// The clamp is applied when the limit is assigned, not at call time:
	// the stored value is already 500.
	assert.Equal(t, 500, req.limit)

	q := req.buildQuery("")
	assert.Equal(t, "500", q.Get("limit"))
}

func TestSearchRequest_Defaults(t *testing.T) {
	req := NewSearchRequest()

	assert.True(t, req.summary)
	assert.False(t, req.catalog)
	assert.False(t, req.history)
	assert.Equal(t, 50, req.limit)
}

func TestSearchRequest_BuildQuery(t *testing.T) {
	req := NewSearchRequest().
		WithCategories(true, true, false).
		WithLimit(100).
		WithFilter(FilterIdentifier("test_item")).
		WithFilter(FilterState(StatusError))

	q := req.buildQuery("abc")

	assert.Equal(t, "test_item", q.Get("identifier"))
	assert.Equal(t, "2", q.Get("wait_admin"))
	assert.Equal(t, "1", q.Get("summary"))
	assert.Equal(t, "1", q.Get("catalog"))
	assert.Equal(t, "0", q.Get("history"))
	assert.Equal(t, "100", q.Get("limit"))
	assert.Equal(t, "abc", q.Get("cursor"))
}

func TestSearchRequest_BuildQueryOmitsEmptyCursor(t *testing.T) {
	q := NewSearchRequest().buildQuery("")
	_, present := q["cursor"]
	assert.False(t, present)
}

func TestSearchRequest_Clone(t *testing.T) {
	orig := NewSearchRequest().WithFilter(FilterIdentifier("test_item"))
	clone := orig.Clone()

	clone.WithFilter(FilterIdentifier("other_item")).WithLimit(10)

	assert.Equal(t, "test_item", orig.filters["identifier"])
	assert.Equal(t, 50, orig.limit)
	assert.Equal(t, "other_item", clone.filters["identifier"])
}
