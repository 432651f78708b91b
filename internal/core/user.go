package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

// User is an account that owns categories and expenses. Accounts start
// active. Email uniqueness across users is a storage concern, not a rule of
// this type.
type User struct {
	Entity
	name        string
	email       Email
	password    HashedPassword
	isActive    bool
	lastLoginAt *time.Time
}

// NewUser builds an active user. Email and password are mandatory; a zero
// value for either is treated as absent.
func NewUser(name string, email Email, password HashedPassword) (*User, error) {
	name, err := validUserName(name)
	if err != nil {
		return nil, err
	}
	if email.IsZero() {
		return nil, missingf("user email is required")
	}
	if password.IsZero() {
		return nil, missingf("user password is required")
	}
	return &User{
		Entity:   newEntity(),
		name:     name,
		email:    email,
		password: password,
		isActive: true,
	}, nil
}

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Email returns the account email.
func (u *User) Email() Email { return u.email }

// Password returns the stored hash+salt pair.
func (u *User) Password() HashedPassword { return u.password }

// IsActive reports whether the account is active.
func (u *User) IsActive() bool { return u.isActive }

// LastLoginAt returns the time of the last recorded login, or nil if the
// user has never logged in.
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// UpdateName replaces the display name after revalidation.
func (u *User) UpdateName(newName string) error {
	name, err := validUserName(newName)
	if err != nil {
		return err
	}
	u.name = name
	u.touch()
	return nil
}

// UpdateEmail replaces the account email.
func (u *User) UpdateEmail(newEmail Email) error {
	if newEmail.IsZero() {
		return missingf("user email is required")
	}
	u.email = newEmail
	u.touch()
	return nil
}

// ChangePassword replaces the stored hash+salt pair.
func (u *User) ChangePassword(newPassword HashedPassword) error {
	if newPassword.IsZero() {
		return missingf("user password is required")
	}
	u.password = newPassword
	u.touch()
	return nil
}

// Activate marks the account active. Idempotent, but still counts as a
// mutation.
func (u *User) Activate() {
	u.isActive = true
	u.touch()
}

// Deactivate marks the account inactive. Idempotent, but still counts as a
// mutation.
func (u *User) Deactivate() {
	u.isActive = false
	u.touch()
}

// RecordLogin stamps lastLoginAt with the current time. Logging in is
// activity, not a profile mutation, so updatedAt is left alone.
func (u *User) RecordLogin() {
	t := nowFunc()
	u.lastLoginAt = &t
}

func validUserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("user name cannot be empty")
	}
	if utf8.RuneCountInString(name) < 3 {
		return "", invalidf("user name must have at least 3 characters")
	}
	return name, nil
}
