package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Money is a currency amount in cents.
type Money int64

var ErrInvalidAmount = errors.New("invalid amount")

// maxWhole is the largest whole part whose cents, rounding included, fit in
// an int64.
const maxWhole = (math.MaxInt64 - 100) / 100

// NewMoney rounds v to the nearest cent, halves away from zero.
func NewMoney(v float64) Money {
	return Money(math.Round(v * 100))
}

// ParseMoney reads a decimal such as "9.99" or "-3.5". Digits beyond the
// second decimal are rounded half up on the third one.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		if math.Abs(f*100) >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
		}
		if neg {
			f = -f
		}
		return NewMoney(f), nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	if (whole == "" && frac == "") || !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > maxWhole {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	frac += "000"
	cents := w*100 + int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}
	if neg {
		cents = -cents
	}
	return Money(cents), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Money) Mul(qty int) Money { return m * Money(qty) }
func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }
func (m Money) Float64() float64  { return float64(m) / 100 }

// String renders the plain decimal form, e.g. "49.95".
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Display renders the amount for people: "$1,234.50".
func (m Money) Display() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(v/100), v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalParam lets gin bind form and query values straight into Money.
func (m *Money) UnmarshalParam(param string) error {
	v, err := ParseMoney(param)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
