package monitoring

import (
	"fmt"
	"time"
)

const (
	EventStart   = "start"
	EventSuccess = "success"
	EventError   = "error"
)

// Event is one append-only audit record of an ingestion function's lifecycle.
type Event struct {
	ID           int64
	FunctionName string
	EventType    string
	DurationMs   *int64
	ErrorMessage string
	Metadata     map[string]any
	Timestamp    time.Time
	CreatedAt    time.Time
}

func IsValidEventType(value string) bool {
	switch value {
	case EventStart, EventSuccess, EventError:
		return true
	default:
		return false
	}
}

func (e Event) Validate() error {
	if e.FunctionName == "" {
		return fmt.Errorf("function_name is required")
	}
	if !IsValidEventType(e.EventType) {
		return fmt.Errorf("event_type must be one of start, success, error")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}
