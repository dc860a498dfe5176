package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"sprinkler/internal/models"
	"sprinkler/internal/repository"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from is after to")
	ErrUnknownEventType = errors.New("unknown event type")
)

// EventTypes are the journal entry kinds in the order a run produces them.
var EventTypes = []string{models.EventStart, models.EventStop, models.EventError}

// EventLogService reads the run journal.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// query checks f and turns it into a repository query with UTC bounds, an
// upper-cased type and a trimmed zone name.
func (f LogFilter) query() (repository.EventQuery, error) {
	q := repository.EventQuery{
		From: f.From,
		To:   f.To,
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
		Zone: strings.TrimSpace(f.Zone),
	}
	if !q.From.IsZero() {
		q.From = q.From.UTC()
	}
	if !q.To.IsZero() {
		q.To = q.To.UTC()
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.EventQuery{}, ErrInvalidTimeRange
	}
	if q.Type != "" && !slices.Contains(EventTypes, q.Type) {
		return repository.EventQuery{}, fmt.Errorf("%w %q (choose from %v)", ErrUnknownEventType, f.Type, EventTypes)
	}
	return q, nil
}

// List returns journal events matching f, oldest first. Zones are not
// checked against the configuration; the journal may name zones that have
// since been removed.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RunEvent, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q)
}
