package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validExpenseParts(t *testing.T) (Money, time.Time) {
	t.Helper()
	amount, err := NewMoney(1250, "BRL")
	if err != nil {
		t.Fatal(err)
	}
	return amount, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
}

func TestNewExpense(t *testing.T) {
	amount, date := validExpenseParts(t)

	e, err := NewExpense("Lunch at the corner", amount, date, "user-1", "cat-1", TypeExpense, PaymentCash, "with colleagues")
	if err != nil {
		t.Fatal(err)
	}
	if e.Description() != "Lunch at the corner" {
		t.Fatalf("got %q", e.Description())
	}
	if e.Amount() != amount || !e.Date().Equal(date) {
		t.Fatal("fields not carried through")
	}
	if e.UserID() != "user-1" || e.CategoryID() != "cat-1" {
		t.Fatal("references not carried through")
	}
	if e.Type() != TypeExpense || e.PaymentMethod() != PaymentCash || e.Notes() != "with colleagues" {
		t.Fatal("optional fields not carried through")
	}
	if e.ID() == "" || e.UpdatedAt() != nil {
		t.Fatal("expected fresh entity state")
	}
}

func TestNewExpenseDefaultsAndNormalization(t *testing.T) {
	amount, date := validExpenseParts(t)

	e, err := NewExpense("  Lunch  ", amount, date, "user-1", "cat-1", "", PaymentUnspecified, "  note  ")
	if err != nil {
		t.Fatal(err)
	}
	if e.Type() != TypeExpense {
		t.Fatalf("empty type must default to expense, got %q", e.Type())
	}
	if e.Description() != "Lunch" || e.Notes() != "note" {
		t.Fatal("strings must be stored trimmed")
	}
	if e.PaymentMethod() != PaymentUnspecified {
		t.Fatalf("got %q", e.PaymentMethod())
	}
}

func TestNewExpenseValidation(t *testing.T) {
	amount, date := validExpenseParts(t)

	cases := []struct {
		name        string
		description string
		amount      Money
		date        time.Time
		userID      string
		categoryID  string
		wantErr     error
	}{
		{"empty description", "", amount, date, "user-1", "cat-1", ErrInvalidArgument},
		{"short description", "ab", amount, date, "user-1", "cat-1", ErrInvalidArgument},
		{"long description", strings.Repeat("a", 201), amount, date, "user-1", "cat-1", ErrInvalidArgument},
		{"multibyte short description", "食費", amount, date, "user-1", "cat-1", ErrInvalidArgument},
		{"multibyte long description", strings.Repeat("食", 201), amount, date, "user-1", "cat-1", ErrInvalidArgument},
		{"missing amount", "Lunch downtown", Money{}, date, "user-1", "cat-1", ErrMissingValue},
		{"date before 2000", "Lunch downtown", amount, time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), "user-1", "cat-1", ErrInvalidArgument},
		{"empty user id", "Lunch downtown", amount, date, "", "cat-1", ErrInvalidArgument},
		{"empty category id", "Lunch downtown", amount, date, "user-1", "", ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewExpense(tc.description, tc.amount, tc.date, tc.userID, tc.categoryID, TypeExpense, PaymentUnspecified, ""); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewExpenseRejectsZeroAmount(t *testing.T) {
	// Money(0, BRL) constructs fine; the strictly-positive rule belongs to
	// Expense, not Money.
	zero, err := NewMoney(0, "BRL")
	if err != nil {
		t.Fatal(err)
	}
	_, date := validExpenseParts(t)

	_, err = NewExpense("Lunch downtown", zero, date, "user-1", "cat-1", TypeExpense, PaymentUnspecified, "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if !strings.Contains(err.Error(), "greater than zero") {
		t.Fatalf("expected the amount rule in the message, got %q", err)
	}
}

func TestNewExpenseDateBounds(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	stubClock(t, now, 0)
	amount, _ := validExpenseParts(t)

	cases := []struct {
		name string
		date time.Time
		ok   bool
	}{
		{"lower bound inclusive", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"just below lower bound", time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"today", now, true},
		{"tomorrow", now.Add(24 * time.Hour), true},
		{"beyond one day ahead", now.Add(24*time.Hour + time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewExpense("Lunch downtown", amount, tc.date, "user-1", "cat-1", TypeExpense, PaymentUnspecified, "")
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestExpenseMutatorsRevalidateTheirOwnField(t *testing.T) {
	stubClock(t, time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC), time.Second)
	amount, date := validExpenseParts(t)

	e, err := NewExpense("Lunch downtown", amount, date, "user-1", "cat-1", TypeExpense, PaymentUnspecified, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := e.UpdateDescription("ab"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	zero, _ := NewMoney(0, "BRL")
	if err := e.UpdateAmount(zero); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := e.UpdateDate(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := e.ChangeCategory("  "); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if e.UpdatedAt() != nil {
		t.Fatal("failed mutations must not touch updatedAt")
	}

	if err := e.UpdateDescription("Dinner out"); err != nil {
		t.Fatal(err)
	}
	bigger, _ := NewMoney(9900, "BRL")
	if err := e.UpdateAmount(bigger); err != nil {
		t.Fatal(err)
	}
	if err := e.UpdateDate(date.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}
	if err := e.ChangeCategory("cat-2"); err != nil {
		t.Fatal(err)
	}
	if e.Description() != "Dinner out" || e.Amount() != bigger || e.CategoryID() != "cat-2" {
		t.Fatal("mutations not applied")
	}
	if e.UpdatedAt() == nil {
		t.Fatal("expected updatedAt after mutation")
	}
}

func TestExpenseOptionalFieldMutatorsAcceptAnything(t *testing.T) {
	stubClock(t, time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC), time.Second)
	amount, date := validExpenseParts(t)

	e, err := NewExpense("Lunch downtown", amount, date, "user-1", "cat-1", TypeIncome, PaymentPix, "first")
	if err != nil {
		t.Fatal(err)
	}

	e.UpdatePaymentMethod(PaymentUnspecified)
	if e.PaymentMethod() != PaymentUnspecified {
		t.Fatal("clearing the payment method must be allowed")
	}
	first := e.UpdatedAt()
	if first == nil {
		t.Fatal("payment-method update counts as a mutation")
	}

	e.UpdateNotes("")
	if e.Notes() != "" {
		t.Fatal("clearing notes must be allowed")
	}
	if !e.UpdatedAt().After(*first) {
		t.Fatal("notes update counts as a mutation")
	}
}

func TestParseExpenseType(t *testing.T) {
	cases := []struct {
		in   string
		want ExpenseType
		ok   bool
	}{
		{"", TypeExpense, true},
		{"expense", TypeExpense, true},
		{"Income", TypeIncome, true},
		{"transfer", "", false},
	}
	for _, tc := range cases {
		got, err := ParseExpenseType(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q: got %q, %v", tc.in, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		in   string
		want PaymentMethod
		ok   bool
	}{
		{"", PaymentUnspecified, true},
		{"cash", PaymentCash, true},
		{"PIX", PaymentPix, true},
		{"bank_transfer", PaymentBankTransfer, true},
		{"cheque", "", false},
	}
	for _, tc := range cases {
		got, err := ParsePaymentMethod(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q: got %q, %v", tc.in, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
