package service

import (
	"context"

	"sprinkler/internal/logger"
	"sprinkler/internal/models"
	"sprinkler/internal/repository"
	"sprinkler/internal/zone"
)

// Irrigation runs one zone per call and can force everything off.
type Irrigation interface {
	Water(ctx context.Context, zoneName, rawDuration string) error
	Stop(ctx context.Context) error
	Zones() []string
}

// EventLog exposes the run journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RunEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Irrigation
	EventLog
}

// NewService wires the zone table and optional journal into concrete
// services. A nil repos disables the journal.
func NewService(zones *zone.Map, repos *repository.Repository, clock Clock, log *logger.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	var events repository.EventRepo = nopEventRepo{}
	if repos != nil && repos.EventRepo != nil {
		events = repos.EventRepo
	}
	ctrl := NewController(zones, clock, log)
	return &Service{
		Irrigation: NewIrrigationService(ctrl, zones, events, clock, log),
		EventLog:   NewEventLogService(events),
	}
}

// nopEventRepo stands in when no journal is configured.
type nopEventRepo struct{}

func (nopEventRepo) Append(context.Context, models.RunEvent) error { return nil }

func (nopEventRepo) List(context.Context, repository.EventQuery) ([]models.RunEvent, error) {
	return nil, nil
}
