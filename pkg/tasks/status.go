package tasks

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the current state of a catalogued task. The numeric values are
// the service's "wait_admin" codes, used both on the wire (the State filter)
// and for equality.
type Status int

const (
	// StatusQueued: the task is waiting to run. Displayed green.
	StatusQueued Status = 0

	// StatusRunning: the task is running. Displayed blue.
	StatusRunning Status = 1

	// StatusError: the task has thrown an error. Displayed red.
	StatusError Status = 2

	// StatusPaused: the task is paused. Displayed brown.
	StatusPaused Status = 9
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusRunning:
		return "running"
	case StatusError:
		return "error"
	case StatusPaused:
		return "paused"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Color returns the display color associated with the status.
func (s Status) Color() string {
	switch s {
	case StatusQueued:
		return "green"
	case StatusRunning:
		return "blue"
	case StatusError:
		return "red"
	case StatusPaused:
		return "brown"
	default:
		return ""
	}
}

// WaitAdmin returns the service's numeric code for the status.
func (s Status) WaitAdmin() int {
	return int(s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	switch name {
	case "queued":
		*s = StatusQueued
	case "running":
		*s = StatusRunning
	case "error":
		*s = StatusError
	case "paused":
		*s = StatusPaused
	default:
		return fmt.Errorf("unknown task status %q", name)
	}
	return nil
}

// queryValue renders the status for the wait_admin query parameter.
func (s Status) queryValue() string {
	return strconv.Itoa(int(s))
}
