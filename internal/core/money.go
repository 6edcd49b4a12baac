package core

// Money parsing and handling. Amounts are stored as integer cents; the
// currency itself is a presentation concern and never appears here.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a unitless monetary amount in cents.
type Money struct {
	Cents int64
}

// CentsOf constructs a Money from a raw cent count.
func CentsOf(c int64) Money {
	return Money{Cents: c}
}

// Units constructs a Money from whole currency units.
func Units(u int64) Money {
	return Money{Cents: u * 100}
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m - o. The result may be negative; callers that need a
// floor must clamp themselves.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Float64 returns the amount in units for derived-percentage arithmetic
// and display. Keep calculations in cents wherever exactness matters.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Validate checks that the amount is strictly positive, as required for
// donation and expenditure amounts.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return validationf("amount must be positive")
	}
	return nil
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Both dot and comma separators are accepted.
// Negative and malformed inputs are rejected; zero is allowed so that
// target amounts of 0 can be expressed.
//
// Examples:
//
//	ParseAmount("12.34") -> 1234 cents
//	ParseAmount("12,345") -> 1235 cents (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, validationf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, validationf("signed amount %q", s)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, validationf("malformed amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, validationf("malformed amount %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, validationf("malformed amount %q", s)
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, validationf("amount %q overflows", s)
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	return Money{Cents: iv*100 + frac}, nil
}
