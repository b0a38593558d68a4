// Package money converts between integer cents and the dollar strings shown
// to users. Balances and transaction amounts are kept as int64 cents
// everywhere; decimals appear only at the text boundary.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SignMode controls when Format prefixes a sign.
type SignMode int

const (
	// SignAlways prefixes "+" for credits and "-" for debits; zero has no sign.
	SignAlways SignMode = iota
	// SignNegative prefixes "-" for debits only.
	SignNegative
)

// Format renders cents as a dollar string, e.g. Format(123456, SignAlways)
// -> "+$1,234.56".
func Format(cents int64, mode SignMode) string {
	sign := ""
	switch {
	case cents < 0:
		sign = "-"
	case cents > 0 && mode == SignAlways:
		sign = "+"
	}

	abs := cents
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%s$%s.%02d", sign, group(abs/100), abs%100)
}

// ParseCents converts a user-entered dollar amount ("20", "20.5", "20.50")
// to cents. Amounts with more than two decimal places are rejected.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}
	return cents.IntPart(), nil
}

// ParseRate converts a percentage string ("10.525") to thousandths of a
// percent (10525). Rates with more than three decimal places are rejected.
func ParseRate(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q", s)
	}

	milli := d.Mul(decimal.NewFromInt(1000))
	if !milli.IsInteger() {
		return 0, fmt.Errorf("rate %q has more than 3 decimal places", s)
	}
	return milli.IntPart(), nil
}

// FormatRate renders a rate in thousandths of a percent as a percentage
// with three decimal places: FormatRate(10525) -> "10.525%".
func FormatRate(rate int64) string {
	sign := ""
	if rate < 0 {
		sign = "-"
		rate = -rate
	}
	return fmt.Sprintf("%s%d.%03d%%", sign, rate/1000, rate%1000)
}

// group inserts thousands separators: 1234567 -> "1,234,567".
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
