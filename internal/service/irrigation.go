package service

import (
	"context"
	"fmt"

	"sprinkler/internal/duration"
	"sprinkler/internal/logger"
	"sprinkler/internal/models"
	"sprinkler/internal/repository"
	"sprinkler/internal/zone"

	"github.com/google/uuid"
)

type IrrigationService struct {
	ctrl      *Controller
	zones     *zone.Map
	eventRepo repository.EventRepo
	clock     Clock
	log       *logger.Logger
}

func NewIrrigationService(ctrl *Controller, zones *zone.Map, eventRepo repository.EventRepo, clock Clock, log *logger.Logger) *IrrigationService {
	return &IrrigationService{ctrl: ctrl, zones: zones, eventRepo: eventRepo, clock: clock, log: log}
}

// Zones lists the configured zone names in order.
func (s *IrrigationService) Zones() []string { return s.zones.Names() }

// Water validates the zone, parses rawDuration and runs the zone. Nothing is
// sent to the hardware unless both inputs are valid.
func (s *IrrigationService) Water(ctx context.Context, zoneName, rawDuration string) error {
	if _, err := s.zones.Lookup(zoneName); err != nil {
		return err
	}
	seconds, err := duration.Parse(rawDuration)
	if err != nil {
		return err
	}
	s.log.Debugw("parsed runtime", "raw", rawDuration, "seconds", seconds)

	runID := uuid.NewString()
	s.record(ctx, models.RunEvent{
		RunID:       runID,
		Type:        models.EventStart,
		Zone:        zoneName,
		Seconds:     seconds,
		Description: fmt.Sprintf("zone %s started for %d seconds", zoneName, seconds),
		Metadata:    map[string]any{"raw_duration": rawDuration},
	})

	if err := s.ctrl.Run(ctx, zoneName, seconds); err != nil {
		s.record(context.WithoutCancel(ctx), models.RunEvent{
			RunID:       runID,
			Type:        models.EventError,
			Zone:        zoneName,
			Seconds:     seconds,
			Description: "run aborted",
			Metadata:    map[string]any{"err": err.Error()},
		})
		return err
	}

	s.record(ctx, models.RunEvent{
		RunID:       runID,
		Type:        models.EventStop,
		Zone:        zoneName,
		Seconds:     seconds,
		Description: fmt.Sprintf("zone %s finished", zoneName),
	})
	return nil
}

// Stop switches every zone off right away.
func (s *IrrigationService) Stop(ctx context.Context) error {
	if err := s.ctrl.AllOff(); err != nil {
		return err
	}
	s.log.Infow("turned off all zones")
	s.record(ctx, models.RunEvent{
		RunID:       uuid.NewString(),
		Type:        models.EventStop,
		Description: "all zones turned off",
	})
	return nil
}

// record appends to the journal. Failures are logged and never abort a run.
func (s *IrrigationService) record(ctx context.Context, e models.RunEvent) {
	e.EventID = uuid.NewString()
	e.OccurredAt = s.clock.Now().UTC()
	if err := s.eventRepo.Append(ctx, e); err != nil {
		s.log.Errorw("journal_append_failed", "err", err, "type", e.Type, "zone", e.Zone)
	}
}
