// Package duration turns human run-time strings such as "30s", "5min" or "45"
// into a whole number of seconds.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
)

// ErrInvalidFormat is returned when no rule matches the start of the input.
var ErrInvalidFormat = errors.New("invalid duration format")

// Rule is one recognized prefix form and the number of seconds per unit.
// Form is the human-readable shape of Pattern.
type Rule struct {
	Pattern    string
	Multiplier int
	Form       string
}

// rules are tried in order; the first one matching the start of the input wins,
// whatever follows the match is ignored. Digits may come from any script.
var rules = []Rule{
	{Pattern: `(\p{Nd}+)s`, Multiplier: 1, Form: "<n>s"},
	{Pattern: `(\p{Nd}+)secs?`, Multiplier: 1, Form: "<n>sec[s]"},
	{Pattern: `(\p{Nd}+)m`, Multiplier: 60, Form: "<n>m"},
	{Pattern: `(\p{Nd}+)mins?`, Multiplier: 60, Form: "<n>min[s]"},
	{Pattern: `(\p{Nd}+)`, Multiplier: 1, Form: "<n>"},
}

type compiledRule struct {
	re         *regexp.Regexp
	multiplier int
}

var compiled = compileRules(rules)

func compileRules(rs []Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rs))
	for _, r := range rs {
		out = append(out, compiledRule{
			re:         regexp.MustCompile(`(?i)^` + r.Pattern),
			multiplier: r.Multiplier,
		})
	}
	return out
}

// Rules returns a copy of the recognized forms in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Parse returns the number of seconds described by spec.
func Parse(spec string) (int, error) {
	return parseWith(compiled, spec)
}

func parseWith(rs []compiledRule, spec string) (int, error) {
	for _, r := range rs {
		m := r.re.FindStringSubmatch(spec)
		if m == nil {
			continue
		}
		n, ok := atoi(m[1])
		if !ok || n > maxInt/r.multiplier {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidFormat, spec)
		}
		return n * r.multiplier, nil
	}
	return 0, fmt.Errorf("%w: unable to parse time %q", ErrInvalidFormat, spec)
}

const maxInt = int(^uint(0) >> 1)

// atoi reads a run of decimal digits of any script. It reports false on
// overflow.
func atoi(digits string) (int, bool) {
	n := 0
	for _, r := range digits {
		d := digitValue(r)
		if d < 0 || n > (maxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// digitValue returns the value of a Unicode decimal digit, or -1. Decimal
// digits are encoded in contiguous runs from zero to nine, so the value is
// the offset into the run.
func digitValue(r rune) int {
	if '0' <= r && r <= '9' {
		return int(r - '0')
	}
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); lo <= r && r <= hi {
			return digitOffset(r, lo, rune(rg.Stride))
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); lo <= r && r <= hi {
			return digitOffset(r, lo, rune(rg.Stride))
		}
	}
	return -1
}

func digitOffset(r, lo, stride rune) int {
	if (r-lo)%stride != 0 {
		return -1
	}
	return int((r-lo)/stride) % 10
}
