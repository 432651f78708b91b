package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals that a field value violates a validation rule.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingValue signals that a mandatory value (email, password, amount)
	// was not provided.
	ErrMissingValue = errors.New("missing required value")

	// ErrCurrencyMismatch signals an arithmetic operation between two Money
	// values with different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func missingf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingValue, fmt.Sprintf(format, args...))
}
