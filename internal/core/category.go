package core

import (
	"strings"
	"unicode/utf8"
)

// Category is a user-owned grouping for expenses. It references its owner by
// identifier only; whether the owner exists is checked by the service layer,
// and "one category name per user" is enforced by storage, not here.
type Category struct {
	Entity
	name        string
	description string
	userID      string
}

// NewCategory validates name, owner and optional description, in that order.
// Stored strings are trimmed; length rules apply to the trimmed value.
func NewCategory(name, userID, description string) (*Category, error) {
	name, err := validCategoryName(name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("category user id cannot be empty")
	}
	description, err = validCategoryDescription(description)
	if err != nil {
		return nil, err
	}
	return &Category{
		Entity:      newEntity(),
		name:        name,
		description: description,
		userID:      userID,
	}, nil
}

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Description returns the optional description, empty when unset.
func (c *Category) Description() string { return c.description }

// UserID returns the identifier of the owning user.
func (c *Category) UserID() string { return c.userID }

// UpdateName replaces the name after revalidation.
func (c *Category) UpdateName(newName string) error {
	name, err := validCategoryName(newName)
	if err != nil {
		return err
	}
	c.name = name
	c.touch()
	return nil
}

// UpdateDescription replaces the description. An empty description clears it.
func (c *Category) UpdateDescription(newDescription string) error {
	description, err := validCategoryDescription(newDescription)
	if err != nil {
		return err
	}
	c.description = description
	c.touch()
	return nil
}

func validCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("category name cannot be empty")
	}
	// Length rules count characters, not bytes.
	if utf8.RuneCountInString(name) < 3 {
		return "", invalidf("category name must have at least 3 characters")
	}
	if utf8.RuneCountInString(name) > 100 {
		return "", invalidf("category name cannot exceed 100 characters")
	}
	return name, nil
}

func validCategoryDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > 250 {
		return "", invalidf("category description cannot exceed 250 characters")
	}
	return description, nil
}
