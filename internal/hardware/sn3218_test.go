package hardware

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

type failingConn struct {
	err   error
	calls int
}

func (f *failingConn) String() string { return "failing" }
func (f *failingConn) Duplex() conn.Duplex { return conn.Half }
func (f *failingConn) Tx(w, r []byte) error {
	f.calls++
	return f.err
}

func TestSN3218_SetInitializesOnceAndLatches(t *testing.T) {
	t.Parallel()

	rec := &i2ctest.Record{}
	leds := NewSN3218(&i2c.Dev{Bus: rec, Addr: SN3218Addr}, 0x80)

	if err := leds.Set(13, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := leds.Set(14, true); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// 3 init writes, then pwm+latch per Set
	if len(rec.Ops) != 7 {
		t.Fatalf("expected 7 i2c writes, got %d", len(rec.Ops))
	}
	for i, op := range rec.Ops {
		if op.Addr != SN3218Addr {
			t.Fatalf("op %d addressed 0x%02x", i, op.Addr)
		}
	}
	if !bytes.Equal(rec.Ops[0].W, []byte{sn3218RegReset, 0xFF}) {
		t.Fatalf("first write should reset, got %v", rec.Ops[0].W)
	}
	if !bytes.Equal(rec.Ops[2].W, []byte{sn3218RegEnable, 0x3F, 0x3F, 0x3F}) {
		t.Fatalf("third write should enable all outputs, got %v", rec.Ops[2].W)
	}

	pwm := rec.Ops[5].W
	if len(pwm) != SN3218Channels+1 || pwm[0] != sn3218RegPWM {
		t.Fatalf("unexpected pwm write %v", pwm)
	}
	if pwm[1+13] != 0x80 || pwm[1+14] != 0x80 || pwm[1+12] != 0 {
		t.Fatalf("unexpected channel values %v", pwm)
	}
	if !bytes.Equal(rec.Ops[6].W, []byte{sn3218RegUpdate, 0xFF}) {
		t.Fatalf("expected latch after pwm, got %v", rec.Ops[6].W)
	}
}

func TestSN3218_SetOffClearsChannel(t *testing.T) {
	t.Parallel()

	rec := &i2ctest.Record{}
	leds := NewSN3218(&i2c.Dev{Bus: rec, Addr: SN3218Addr}, 0)
	_ = leds.Set(0, true)
	_ = leds.Set(0, false)

	last := rec.Ops[len(rec.Ops)-2].W
	if last[1] != 0 {
		t.Fatalf("expected channel 0 dark, got %d", last[1])
	}
	first := rec.Ops[3].W
	if first[1] != 0xFF {
		t.Fatalf("zero brightness should default to full, got %d", first[1])
	}
}

func TestSN3218_Errors(t *testing.T) {
	t.Parallel()

	leds := NewSN3218(&failingConn{err: errors.New("nack")}, 0)
	if err := leds.Set(SN3218Channels, true); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected range error, got %v", err)
	}
	err := leds.Set(1, true)
	if err == nil || !strings.Contains(err.Error(), "nack") {
		t.Fatalf("expected init error, got %v", err)
	}
}
