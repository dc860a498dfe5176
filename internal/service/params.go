package service

import "time"

// LogFilter narrows a history listing. Empty fields match everything.
type LogFilter struct {
	From time.Time // inclusive
	To   time.Time // inclusive
	Type string    // START, STOP or ERROR, any case
	Zone string
}
