package hardware

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// SN3218 register map.
const (
	sn3218RegShutdown = 0x00
	sn3218RegPWM      = 0x01
	sn3218RegEnable   = 0x13
	sn3218RegUpdate   = 0x16
	sn3218RegReset    = 0x17

	// SN3218Addr is the fixed I2C address of the LED driver.
	SN3218Addr = 0x54
	// SN3218Channels is the number of LED outputs.
	SN3218Channels = 18
)

// SN3218 is the 18 channel I2C LED driver that lights the board indicators.
// The chip is set up lazily on the first write.
type SN3218 struct {
	dev         conn.Conn
	brightness  byte
	values      [SN3218Channels]byte
	initialized bool
}

// NewSN3218 wraps dev; lit channels are driven at brightness.
func NewSN3218(dev conn.Conn, brightness byte) *SN3218 {
	if brightness == 0 {
		brightness = 0xFF
	}
	return &SN3218{dev: dev, brightness: brightness}
}

func (s *SN3218) write(b ...byte) error {
	return s.dev.Tx(b, nil)
}

// Init resets the chip, leaves shutdown mode and enables every output.
func (s *SN3218) Init() error {
	steps := [][]byte{
		{sn3218RegReset, 0xFF},
		{sn3218RegShutdown, 0x01},
		{sn3218RegEnable, 0x3F, 0x3F, 0x3F},
	}
	for _, b := range steps {
		if err := s.write(b...); err != nil {
			return fmt.Errorf("sn3218 init register 0x%02x: %w", b[0], err)
		}
	}
	s.initialized = true
	return nil
}

// Set lights or darkens one output and latches the new values.
func (s *SN3218) Set(channel int, on bool) error {
	if channel < 0 || channel >= SN3218Channels {
		return fmt.Errorf("sn3218 channel %d out of range", channel)
	}
	if !s.initialized {
		if err := s.Init(); err != nil {
			return err
		}
	}
	var v byte
	if on {
		v = s.brightness
	}
	s.values[channel] = v

	buf := make([]byte, 0, SN3218Channels+1)
	buf = append(buf, sn3218RegPWM)
	buf = append(buf, s.values[:]...)
	if err := s.write(buf...); err != nil {
		return fmt.Errorf("sn3218 write pwm: %w", err)
	}
	if err := s.write(sn3218RegUpdate, 0xFF); err != nil {
		return fmt.Errorf("sn3218 latch: %w", err)
	}
	return nil
}
