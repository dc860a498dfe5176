package hardware

import (
	"fmt"

	"sprinkler/internal/logger"
)

// Operation names recorded by the simulator.
const (
	OpOn        = "on"
	OpOff       = "off"
	OpAutoLight = "auto_light"
	OpLightNO   = "light_no"
	OpLightNC   = "light_nc"
)

// Call is one command received by a simulated channel.
type Call struct {
	Relay string
	Op    string
	Value bool
}

func (c Call) String() string {
	switch c.Op {
	case OpOn, OpOff:
		return c.Relay + "." + c.Op
	}
	return fmt.Sprintf("%s.%s(%t)", c.Relay, c.Op, c.Value)
}

// State is the simulated output state of one channel.
type State struct {
	Relay     bool
	AutoLight bool
	NO        bool
	NC        bool
}

// Simulator is an in-memory board used for dry runs and tests. It keeps the
// same auto-light behaviour as the real board.
type Simulator struct {
	log      *logger.Logger
	order    []string
	channels map[string]*SimChannel
	calls    []Call
	maxOn    int
	failures map[string]error
	closed   bool
}

// NewSimulator builds a simulated board with the given relays, or the
// Automation HAT relays when none are named.
func NewSimulator(log *logger.Logger, relays ...string) *Simulator {
	if log == nil {
		log = logger.Nop()
	}
	if len(relays) == 0 {
		relays = RelayNames()
	}
	s := &Simulator{
		log:      log,
		channels: make(map[string]*SimChannel, len(relays)),
		failures: make(map[string]error),
	}
	for _, name := range relays {
		s.order = append(s.order, name)
		s.channels[name] = &SimChannel{sim: s, name: name, state: State{AutoLight: true}}
	}
	return s
}

// Relay returns the named simulated channel.
func (s *Simulator) Relay(name string) (Channel, error) {
	if s.closed {
		return nil, ErrClosed
	}
	ch, ok := s.channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelay, name)
	}
	return ch, nil
}

func (s *Simulator) Close() error {
	s.closed = true
	return nil
}

// FailOn makes every later op on relay return err. A nil err clears it.
func (s *Simulator) FailOn(relay, op string, err error) {
	key := relay + "/" + op
	if err == nil {
		delete(s.failures, key)
		return
	}
	s.failures[key] = err
}

// Calls returns every command received so far, in order.
func (s *Simulator) Calls() []Call {
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// ResetCalls forgets the recorded commands and the energized high-water mark.
func (s *Simulator) ResetCalls() {
	s.calls = nil
	s.maxOn = s.RelaysOn()
}

// State returns the current outputs of relay.
func (s *Simulator) State(relay string) State {
	if ch, ok := s.channels[relay]; ok {
		return ch.state
	}
	return State{}
}

// RelaysOn counts the currently energized relays.
func (s *Simulator) RelaysOn() int {
	n := 0
	for _, name := range s.order {
		if s.channels[name].state.Relay {
			n++
		}
	}
	return n
}

// MaxRelaysOn is the largest number of relays that were energized at once.
func (s *Simulator) MaxRelaysOn() int { return s.maxOn }

func (s *Simulator) apply(ch *SimChannel, op string, value bool) error {
	if err, ok := s.failures[ch.name+"/"+op]; ok {
		s.log.Debugw("simulated driver failure", "relay", ch.name, "op", op, "err", err)
		return err
	}
	s.calls = append(s.calls, Call{Relay: ch.name, Op: op, Value: value})

	switch op {
	case OpOn, OpOff:
		ch.state.Relay = op == OpOn
		if ch.state.AutoLight {
			ch.state.NO = ch.state.Relay
			ch.state.NC = !ch.state.Relay
		}
		s.log.Debugw("relay", "relay", ch.name, "energized", ch.state.Relay)
	case OpAutoLight:
		ch.state.AutoLight = value
	case OpLightNO:
		ch.state.NO = value
	case OpLightNC:
		ch.state.NC = value
	}
	if n := s.RelaysOn(); n > s.maxOn {
		s.maxOn = n
	}
	return nil
}

// SimChannel is one simulated relay.
type SimChannel struct {
	sim   *Simulator
	name  string
	state State
}

func (c *SimChannel) On() error                    { return c.sim.apply(c, OpOn, true) }
func (c *SimChannel) Off() error                   { return c.sim.apply(c, OpOff, false) }
func (c *SimChannel) AutoLight(enabled bool) error { return c.sim.apply(c, OpAutoLight, enabled) }
func (c *SimChannel) LightNO(on bool) error        { return c.sim.apply(c, OpLightNO, on) }
func (c *SimChannel) LightNC(on bool) error        { return c.sim.apply(c, OpLightNC, on) }
