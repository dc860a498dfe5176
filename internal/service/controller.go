package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sprinkler/internal/hardware"
	"sprinkler/internal/logger"
	"sprinkler/internal/zone"
)

// Light sequence timing.
const (
	preambleStep  = 250 * time.Millisecond
	preamblePause = time.Second
	preambleFlash = 500 * time.Millisecond
	blinkInterval = 250 * time.Millisecond

	blinkPhases = 4
)

// preambleFlashes are the indicator levels of the sweeps after the pause.
var preambleFlashes = []bool{false, true, false, true}

// Controller sequences one zone run: everything off, light preamble, the
// zone energized for its duration, everything off again.
type Controller struct {
	zones *zone.Map
	clock Clock
	log   *logger.Logger
}

func NewController(zones *zone.Map, clock Clock, log *logger.Logger) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{zones: zones, clock: clock, log: log}
}

// PreambleDuration is how long Preamble waits in total for n zones.
func PreambleDuration(n int) time.Duration {
	return time.Duration(n)*2*preambleStep + preamblePause + time.Duration(len(preambleFlashes))*preambleFlash
}

// AllOff releases every relay and darkens every indicator, zone by zone.
func (c *Controller) AllOff() error {
	return c.zones.Each(func(name string, ch hardware.Channel) error {
		if err := ch.AutoLight(false); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.Off(); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.LightNC(false); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.LightNO(false); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		return nil
	})
}

// forceAllOff is the cleanup variant of AllOff: every command is attempted
// on every zone and the failures are joined.
func (c *Controller) forceAllOff() error {
	var errs []error
	_ = c.zones.Each(func(name string, ch hardware.Channel) error {
		for _, step := range []func() error{
			func() error { return ch.AutoLight(false) },
			ch.Off,
			func() error { return ch.LightNC(false) },
			func() error { return ch.LightNO(false) },
		} {
			if err := step(); err != nil {
				errs = append(errs, fmt.Errorf("zone %s: %w", name, err))
			}
		}
		return nil
	})
	return errors.Join(errs...)
}

// Preamble plays the fixed light animation and ends with AllOff.
func (c *Controller) Preamble(ctx context.Context) error {
	err := c.zones.Each(func(name string, ch hardware.Channel) error {
		if err := ch.Off(); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.AutoLight(false); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.LightNO(true); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := c.clock.Sleep(ctx, preambleStep); err != nil {
			return err
		}
		if err := ch.LightNC(true); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		return c.clock.Sleep(ctx, preambleStep)
	})
	if err != nil {
		return err
	}
	if err := c.clock.Sleep(ctx, preamblePause); err != nil {
		return err
	}

	for _, lit := range preambleFlashes {
		if err := c.setAllLights(lit); err != nil {
			return err
		}
		if err := c.clock.Sleep(ctx, preambleFlash); err != nil {
			return err
		}
	}
	return c.AllOff()
}

func (c *Controller) setAllLights(on bool) error {
	return c.zones.Each(func(name string, ch hardware.Channel) error {
		if err := ch.LightNO(on); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.LightNC(on); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		return nil
	})
}

// blinkPhase maps wall-clock seconds onto the four indicator patterns.
func blinkPhase(t time.Time) (no, nc bool) {
	phase := t.Unix() % blinkPhases
	if phase < 0 {
		phase += blinkPhases
	}
	return phase&2 != 0, phase&1 != 0
}

// RunZone energizes name for seconds while blinking its indicators, then
// calls AllOff. A zero duration switches the relay on and straight off.
func (c *Controller) RunZone(ctx context.Context, name string, seconds int) error {
	ch, err := c.zones.Lookup(name)
	if err != nil {
		return err
	}
	end := c.clock.Now().Add(time.Duration(seconds) * time.Second)

	if err := ch.On(); err != nil {
		return fmt.Errorf("zone %s: %w", name, err)
	}
	for c.clock.Now().Before(end) {
		no, nc := blinkPhase(c.clock.Now())
		if err := ch.LightNO(no); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := ch.LightNC(nc); err != nil {
			return fmt.Errorf("zone %s: %w", name, err)
		}
		if err := c.clock.Sleep(ctx, blinkInterval); err != nil {
			return err
		}
	}
	return c.AllOff()
}

// Run performs the whole sequence for one zone. If any step fails, panics or
// ctx is canceled, every relay is switched off before Run returns.
func (c *Controller) Run(ctx context.Context, name string, seconds int) (err error) {
	if _, err := c.zones.Lookup(name); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if cerr := c.forceAllOff(); cerr != nil {
				c.log.Errorw("cleanup after panic failed", "err", cerr)
			}
			panic(r)
		}
		if err == nil {
			return
		}
		c.log.Errorw("run aborted, turning off all zones", "zone", name, "err", err)
		if cerr := c.forceAllOff(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("cleanup: %w", cerr))
		}
	}()

	if err := c.AllOff(); err != nil {
		return err
	}
	c.log.Infow("turned off all zones")

	c.log.Debugw("starting preamble", "zones", c.zones.Len(), "takes", PreambleDuration(c.zones.Len()))
	if err := c.Preamble(ctx); err != nil {
		return err
	}

	c.log.Infow("turning on zone", "zone", name, "seconds", seconds)
	if err := c.RunZone(ctx, name, seconds); err != nil {
		return err
	}
	c.log.Infow("turned off all zones")
	return nil
}
