// Package zone holds the fixed, ordered mapping from irrigation zones to relay
// channels. A Map is built once at startup and never changes.
package zone

import (
	"errors"
	"fmt"

	"sprinkler/internal/hardware"
)

var (
	ErrUnknownZone = errors.New("unknown zone")
	ErrNoZones     = errors.New("no zones configured")
)

// Entry binds a zone name to its relay channel.
type Entry struct {
	Name    string
	Channel hardware.Channel
}

// Map is an immutable ordered zone table.
type Map struct {
	entries []Entry
	index   map[string]int
}

// New validates entries and returns a Map keeping their order.
func New(entries []Entry) (*Map, error) {
	if len(entries) == 0 {
		return nil, ErrNoZones
	}
	m := &Map{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("zone %d: empty name", i)
		}
		if e.Channel == nil {
			return nil, fmt.Errorf("zone %q: no channel", e.Name)
		}
		if _, dup := m.index[e.Name]; dup {
			return nil, fmt.Errorf("zone %q: defined twice", e.Name)
		}
		m.entries[i] = e
		m.index[e.Name] = i
	}
	return m, nil
}

// Lookup returns the channel for name.
func (m *Map) Lookup(name string) (hardware.Channel, error) {
	i, ok := m.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose from %v)", ErrUnknownZone, name, m.Names())
	}
	return m.entries[i].Channel, nil
}

// Names lists the zones in configured order.
func (m *Map) Names() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Name
	}
	return out
}

// Len is the number of zones.
func (m *Map) Len() int { return len(m.entries) }

// Each calls fn for every zone in order and stops at the first error.
func (m *Map) Each(fn func(name string, ch hardware.Channel) error) error {
	for _, e := range m.entries {
		if err := fn(e.Name, e.Channel); err != nil {
			return err
		}
	}
	return nil
}
