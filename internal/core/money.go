package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultCurrency is assumed when a caller does not name one.
const DefaultCurrency = "BRL"

// Money is an amount in integer cents tagged with a currency code. Amounts
// are never negative. The currency is an opaque upper-cased tag; no check is
// made that it is a real ISO code, and no conversion between currencies
// exists anywhere in the system.
type Money struct {
	cents    int64
	currency string
}

// NewMoney builds a Money value. Negative amounts are rejected. An empty
// currency falls back to DefaultCurrency; the code is stored upper-cased.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, invalidf("amount cannot be negative")
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{cents: cents, currency: strings.ToUpper(currency)}, nil
}

// ParseMoney converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot (12.34) and comma (12,34) separators are
// accepted. Zero is a valid Money amount; signs are not.
func ParseMoney(s, currency string) (Money, error) {
	cents, err := parseDecimalToCents(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(cents, currency)
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 { return m.cents }

// Currency returns the upper-cased currency code.
func (m Money) Currency() string { return m.currency }

// IsZero reports whether m is the zero value, i.e. no Money was provided.
// A constructed Money always carries a currency, so Money with zero cents
// and a currency is NOT zero.
func (m Money) IsZero() bool { return m.currency == "" && m.cents == 0 }

// Add returns m + o. Both operands must carry the same currency.
func (m Money) Add(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrCurrencyMismatch, o.currency, m.currency)
	}
	return NewMoney(m.cents+o.cents, m.currency)
}

// Subtract returns m - o. Both operands must carry the same currency.
// Subtraction itself does not check the sign of the result; a negative
// result is rejected by NewMoney's non-negative invariant and surfaces as
// ErrInvalidArgument.
func (m Money) Subtract(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrCurrencyMismatch, o.currency, m.currency)
	}
	return NewMoney(m.cents-o.cents, m.currency)
}

// String renders the amount as "12.34 BRL". Display only; calculations stay
// in cents.
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, c/100, c%100, m.currency)
}

// parseDecimalToCents converts a decimal string to cents, rounding half-up
// on the third decimal digit. Negative values and signs are rejected.
func parseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalidf("amount cannot be empty")
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, invalidf("amount cannot carry a sign")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, invalidf("malformed amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, invalidf("malformed amount %q", s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, invalidf("malformed amount %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, invalidf("malformed amount %q", s)
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, invalidf("amount %q too large", s)
	}
	// Take the first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}
