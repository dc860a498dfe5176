package models

import "time"

// Run event types.
const (
	EventStart = "START"
	EventStop  = "STOP"
	EventError = "ERROR"
)

// RunEvent is a single journal entry about one zone run.
type RunEvent struct {
	EventID     string    `json:"event_id"`
	RunID       string    `json:"run_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // START | STOP | ERROR
	Zone        string    `json:"zone,omitempty"`
	Seconds     int       `json:"seconds"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
