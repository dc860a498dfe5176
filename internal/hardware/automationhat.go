package hardware

import (
	"fmt"

	"sprinkler/internal/logger"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// relaySpec ties a relay to its coil pin and LED driver outputs.
type relaySpec struct {
	Name    string
	Pin     string
	LightNO int
	LightNC int
}

// Automation HAT wiring.
var hatLayout = []relaySpec{
	{Name: RelayOne, Pin: "GPIO13", LightNO: 13, LightNC: 14},
	{Name: RelayTwo, Pin: "GPIO19", LightNO: 11, LightNC: 12},
	{Name: RelayThree, Pin: "GPIO16", LightNO: 9, LightNC: 10},
}

// BoardConfig selects the I2C bus and LED settings.
type BoardConfig struct {
	I2CBus     string // "" picks the first bus
	LEDAddr    uint16
	Brightness byte
}

// AutomationHAT is the real board.
type AutomationHAT struct {
	bus    i2c.BusCloser
	relays map[string]*hatRelay
	closed bool
}

// OpenAutomationHAT initializes periph.io and locates the board pins. No
// output is driven until a channel is used.
func OpenAutomationHAT(cfg BoardConfig, log *logger.Logger) (*AutomationHAT, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}
	addr := cfg.LEDAddr
	if addr == 0 {
		addr = SN3218Addr
	}

	pins := make(map[string]gpio.PinOut, len(hatLayout))
	for _, spec := range hatLayout {
		p := gpioreg.ByName(spec.Pin)
		if p == nil {
			_ = bus.Close()
			return nil, fmt.Errorf("relay %s: gpio %s not found", spec.Name, spec.Pin)
		}
		pins[spec.Name] = p
	}
	log.Debugw("automation hat opened", "i2c_bus", bus.String(), "led_addr", addr)

	leds := NewSN3218(&i2c.Dev{Bus: bus, Addr: addr}, cfg.Brightness)
	hat := newAutomationHAT(pins, leds)
	hat.bus = bus
	return hat, nil
}

func newAutomationHAT(pins map[string]gpio.PinOut, leds *SN3218) *AutomationHAT {
	hat := &AutomationHAT{relays: make(map[string]*hatRelay, len(hatLayout))}
	for _, spec := range hatLayout {
		pin, ok := pins[spec.Name]
		if !ok {
			continue
		}
		hat.relays[spec.Name] = &hatRelay{
			name:    spec.Name,
			pin:     pin,
			leds:    leds,
			lightNO: spec.LightNO,
			lightNC: spec.LightNC,
			auto:    true,
		}
	}
	return hat
}

// Relay returns the named relay channel.
func (h *AutomationHAT) Relay(name string) (Channel, error) {
	if h.closed {
		return nil, ErrClosed
	}
	r, ok := h.relays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelay, name)
	}
	return r, nil
}

// Close releases the I2C bus. Relay pins keep their last level.
func (h *AutomationHAT) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.bus == nil {
		return nil
	}
	return h.bus.Close()
}

type hatRelay struct {
	name    string
	pin     gpio.PinOut
	leds    *SN3218
	lightNO int
	lightNC int
	auto    bool
}

func (r *hatRelay) drive(l gpio.Level) error {
	if err := r.pin.Out(l); err != nil {
		return fmt.Errorf("relay %s: drive %s: %w", r.name, l, err)
	}
	if !r.auto {
		return nil
	}
	// In auto mode NO lights while energized, NC while released.
	if err := r.LightNO(bool(l)); err != nil {
		return err
	}
	return r.LightNC(!bool(l))
}

func (r *hatRelay) On() error  { return r.drive(gpio.High) }
func (r *hatRelay) Off() error { return r.drive(gpio.Low) }

func (r *hatRelay) AutoLight(enabled bool) error {
	r.auto = enabled
	return nil
}

func (r *hatRelay) LightNO(on bool) error {
	if err := r.leds.Set(r.lightNO, on); err != nil {
		return fmt.Errorf("relay %s: light no: %w", r.name, err)
	}
	return nil
}

func (r *hatRelay) LightNC(on bool) error {
	if err := r.leds.Set(r.lightNC, on); err != nil {
		return fmt.Errorf("relay %s: light nc: %w", r.name, err)
	}
	return nil
}
