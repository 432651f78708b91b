package services

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	// Repository implementations return it for missing rows.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a uniqueness rule would be violated:
	// one email per user, one category name per owner.
	ErrAlreadyExists = errors.New("already exists")

	// ErrCategoryInUse is returned when deleting a category that expenses
	// still reference.
	ErrCategoryInUse = errors.New("category still referenced by expenses")

	// ErrNotOwned is returned when an expense would reference a category
	// belonging to a different user.
	ErrNotOwned = errors.New("category does not belong to user")

	// ErrUserInactive is returned when a deactivated account tries to
	// authenticate.
	ErrUserInactive = errors.New("user is deactivated")

	// ErrInvalidCredentials is returned for unknown emails or wrong
	// passwords, indistinguishably.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
