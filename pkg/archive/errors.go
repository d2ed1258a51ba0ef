package archive

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes every operation in this library can
// report. Callers should match them with errors.Is rather than inspecting
// status codes or error strings.
var (
	// ErrTransport indicates the underlying HTTP call failed, either at the
	// network level or with an unexpected status code.
	ErrTransport = errors.New("transport failure")

	// ErrForbidden indicates the HTTP call completed with a 403 status.
	// This almost always means missing or invalid credentials.
	ErrForbidden = errors.New("forbidden")

	// ErrParse indicates the response body could not be decoded into the
	// expected shape.
	ErrParse = errors.New("failed to parse response")

	// ErrLocalIO indicates a local read or write failed, e.g. while
	// streaming a download into a writer.
	ErrLocalIO = errors.New("local I/O failure")

	// ErrInvalidArgument indicates a precondition detected client-side
	// before any network call was made.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error is the error type returned by all operations in this library. It
// carries the operation name, one of the sentinel errors above, and optional
// context (a message, the HTTP status code, the underlying cause).
type Error struct {
	// Op is the operation that failed, e.g. "tasks.Search" or "items.Upload".
	Op string

	// Err is one of the sentinel errors above.
	Err error

	// Msg is an optional human-readable message.
	Msg string

	// StatusCode is the HTTP status code of the response, if one was
	// received. Zero otherwise.
	StatusCode int

	// Cause is the underlying error, if any (network error, decode error,
	// io error).
	Cause error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %v: %v", e.Op, e.Msg, e.Err, e.Cause)
		}
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Err, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an *Error for op wrapping the given sentinel.
func NewError(op string, sentinel error, cause error) *Error {
	return &Error{Op: op, Err: sentinel, Cause: cause}
}

// ClassifyStatus maps a completed HTTP response's status code to the error
// taxonomy. A nil return means the status is a success (2xx). Classification
// happens exactly once, at the boundary where the response is first observed;
// callers must not re-classify.
func ClassifyStatus(op string, statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusForbidden:
		return &Error{Op: op, Err: ErrForbidden, StatusCode: statusCode}
	default:
		return &Error{
			Op:         op,
			Err:        ErrTransport,
			Msg:        fmt.Sprintf("unexpected status %d", statusCode),
			StatusCode: statusCode,
		}
	}
}
