package core

import (
	"errors"
	"testing"
)

func mustMoney(t *testing.T, cents int64, currency string) Money {
	t.Helper()
	m, err := NewMoney(cents, currency)
	if err != nil {
		t.Fatalf("NewMoney(%d, %q): %v", cents, currency, err)
	}
	return m
}

func TestNewMoney(t *testing.T) {
	cases := []struct {
		name     string
		cents    int64
		currency string
		want     string // expected currency after normalization
		ok       bool
	}{
		{"positive", 1234, "BRL", "BRL", true},
		{"zero is valid", 0, "BRL", "BRL", true},
		{"lower-cased code normalized", 100, "eur", "EUR", true},
		{"empty code defaults", 100, "", "BRL", true},
		{"negative rejected", -1, "BRL", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMoney(tc.cents, tc.currency)
			if !tc.ok {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Cents() != tc.cents || m.Currency() != tc.want {
				t.Fatalf("got %d %s, want %d %s", m.Cents(), m.Currency(), tc.cents, tc.want)
			}
		})
	}
}

func TestMoneyAdd(t *testing.T) {
	a := mustMoney(t, 1050, "BRL")
	b := mustMoney(t, 250, "brl")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != (Money{cents: 1300, currency: "BRL"}) {
		t.Fatalf("got %v", sum)
	}

	if _, err := a.Add(mustMoney(t, 1, "USD")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoneySubtract(t *testing.T) {
	a := mustMoney(t, 1000, "BRL")
	b := mustMoney(t, 300, "BRL")

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.Cents() != 700 {
		t.Fatalf("got %d cents", diff.Cents())
	}

	// Equal operands yield zero, which Money permits.
	zero, err := b.Subtract(b)
	if err != nil || zero.Cents() != 0 {
		t.Fatalf("got %v, %v", zero, err)
	}

	// A negative result is rejected by the result's own constructor.
	if _, err := b.Subtract(a); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	if _, err := a.Subtract(mustMoney(t, 1, "USD")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoneyValueEquality(t *testing.T) {
	a := mustMoney(t, 500, "eur")
	b := mustMoney(t, 500, "EUR")
	if a != b {
		t.Fatalf("expected %v == %v", a, b)
	}
	if a == mustMoney(t, 500, "USD") {
		t.Fatal("different currencies must not compare equal")
	}
}

func TestMoneyIsZero(t *testing.T) {
	if !(Money{}).IsZero() {
		t.Fatal("zero value should be zero")
	}
	if mustMoney(t, 0, "BRL").IsZero() {
		t.Fatal("a constructed zero-cent Money is not the zero value")
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"1", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true}, // zero is valid Money; Expense is where > 0 applies
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in, "BRL")
		if tc.ok {
			if err != nil || m.Cents() != tc.cents {
				t.Fatalf("%q: expected %d cents, got %d (err=%v)", tc.in, tc.cents, m.Cents(), err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := mustMoney(t, 1234, "BRL").String(); got != "12.34 BRL" {
		t.Fatalf("got %q", got)
	}
	if got := mustMoney(t, 5, "EUR").String(); got != "0.05 EUR" {
		t.Fatalf("got %q", got)
	}
}
