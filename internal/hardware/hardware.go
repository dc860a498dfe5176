// Package hardware drives the relay coils and indicator lights of an
// Automation HAT style board, or a simulated stand-in for it.
package hardware

import "errors"

// Channel is one relay with its two indicator lights. Every call is a
// synchronous command; a returned error means the command may not have
// reached the hardware.
type Channel interface {
	On() error
	Off() error
	// AutoLight toggles the board mirroring relay state onto the lights.
	AutoLight(enabled bool) error
	LightNO(on bool) error
	LightNC(on bool) error
}

// Board hands out relay channels by name.
type Board interface {
	Relay(name string) (Channel, error)
	Close() error
}

// Relay names as printed on the board.
const (
	RelayOne   = "one"
	RelayTwo   = "two"
	RelayThree = "three"
)

// RelayNames lists the board relays in silkscreen order.
func RelayNames() []string {
	return []string{RelayOne, RelayTwo, RelayThree}
}

var (
	ErrUnknownRelay = errors.New("unknown relay")
	ErrClosed       = errors.New("board closed")
)
