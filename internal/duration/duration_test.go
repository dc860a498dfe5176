package duration

import (
	"errors"
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"30s", 30},
		{"30S", 30},
		{"30sec", 30},
		{"30secs", 30},
		{"30seconds", 30},
		{"0s", 0},
		{"5m", 300},
		{"5M", 300},
		{"5min", 300},
		{"5mins", 300},
		{"5minutes", 300},
		{"2m", 120},
		{"45", 45},
		{"45 ", 45},
		{"45x", 45},
		{"007", 7},
		{"10s30m", 10},
		{"٣٠s", 30},
		{"٥min", 300},
		{"४५", 45},
		{"１２s", 12},
		{"3٠", 30},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_FormsAcrossValues(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 9, 59, 60, 3600, 86400} {
		for _, suffix := range []string{"s", "sec", "secs"} {
			if got, err := Parse(fmt.Sprintf("%d%s", n, suffix)); err != nil || got != n {
				t.Errorf("Parse(%d%s) = %d, %v; want %d", n, suffix, got, err, n)
			}
		}
		for _, suffix := range []string{"m", "min", "mins"} {
			if got, err := Parse(fmt.Sprintf("%d%s", n, suffix)); err != nil || got != n*60 {
				t.Errorf("Parse(%d%s) = %d, %v; want %d", n, suffix, got, err, n*60)
			}
		}
		if got, err := Parse(fmt.Sprintf("%d", n)); err != nil || got != n {
			t.Errorf("Parse(%d) = %d, %v; want %d", n, got, err, n)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "-5s", " 5s", "s5", "m", "five minutes", "99999999999999999999999s"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestParse_Overflow(t *testing.T) {
	t.Parallel()

	in := fmt.Sprintf("%dm", maxInt/60+1)
	if _, err := Parse(in); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Parse(%q) error = %v, want ErrInvalidFormat", in, err)
	}
}

// The first matching rule wins even when a later rule would match a longer prefix
// or apply a different multiplier.
func TestParse_PriorityOrder(t *testing.T) {
	t.Parallel()

	rs := compileRules([]Rule{
		{Pattern: `(\p{Nd}+)`, Multiplier: 2},
		{Pattern: `(\p{Nd}+)s`, Multiplier: 1},
	})
	got, err := parseWith(rs, "30s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 60 {
		t.Fatalf("expected earlier rule to win with 60, got %d", got)
	}

	// With the shipped order "30s" is taken by the seconds rule, and "3min" by
	// the plain minutes rule, not by the longer "mins?" form.
	if got, _ := Parse("30s"); got != 30 {
		t.Fatalf("Parse(30s) = %d, want 30", got)
	}
	if got, _ := Parse("3min"); got != 180 {
		t.Fatalf("Parse(3min) = %d, want 180", got)
	}
}

func TestDigitValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    rune
		want int
	}{
		{'0', 0},
		{'7', 7},
		{'\u0660', 0},     // Arabic-Indic zero
		{'\u0669', 9},
		{'\u096f', 9},     // Devanagari nine
		{'\uff15', 5},     // fullwidth five
		{'\U0001d7d9', 1}, // mathematical double-struck one
		{'a', -1},
		{'\u00b2', -1},    // superscript two is not a decimal digit
	}
	for _, tt := range tests {
		if got := digitValue(tt.r); got != tt.want {
			t.Errorf("digitValue(%U) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	t.Parallel()

	rs := Rules()
	if len(rs) != 5 {
		t.Fatalf("expected 5 rules, got %d", len(rs))
	}
	rs[0].Multiplier = 1000
	if got, _ := Parse("1s"); got != 1 {
		t.Fatalf("mutating Rules() result changed parsing: got %d", got)
	}
}
