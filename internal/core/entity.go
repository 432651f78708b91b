// Package core holds the domain model: self-validating entities and value
// objects for users, categories and expense transactions. Every invariant is
// checked at construction and after each mutation; nothing in this package
// performs I/O.
package core

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc supplies the current time for identifiers and timestamps.
// Tests override it to get deterministic clocks.
var nowFunc = func() time.Time { return time.Now().UTC() }

// Entity carries the identity and lifecycle timestamps shared by all
// entities. Equality between entities is by ID.
type Entity struct {
	id        string
	createdAt time.Time
	updatedAt *time.Time
}

func newEntity() Entity {
	return Entity{
		id:        uuid.NewString(),
		createdAt: nowFunc(),
	}
}

// ID returns the identifier assigned at construction.
func (e *Entity) ID() string { return e.id }

// CreatedAt returns the construction timestamp.
func (e *Entity) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns the time of the last mutation, or nil if the entity has
// never been mutated.
func (e *Entity) UpdatedAt() *time.Time { return e.updatedAt }

// touch records a mutation. Every mutating operation calls it on success.
func (e *Entity) touch() {
	t := nowFunc()
	e.updatedAt = &t
}
