package core

import (
	"regexp"
	"strings"
)

// emailPattern accepts local@domain.tld: exactly one @, no whitespace, at
// least one dot after the @.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is a validated, normalized address. The stored value is always
// trimmed and lower-cased; two Email values built from case variants of the
// same address compare equal.
type Email struct {
	value string
}

// NewEmail validates and normalizes raw into an Email.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, invalidf("email cannot be empty")
	}
	if !emailPattern.MatchString(v) {
		return Email{}, invalidf("invalid email format %q", v)
	}
	return Email{value: v}, nil
}

// String returns the normalized address.
func (e Email) String() string { return e.value }

// IsZero reports whether no email was provided.
func (e Email) IsZero() bool { return e.value == "" }
