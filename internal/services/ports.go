// Package services orchestrates the domain model: it owns every rule that
// needs more than one entity or a storage lookup (uniqueness, ownership,
// referential checks) and drives persistence and event publishing. The
// entities themselves stay free of I/O.
package services

import (
	"context"

	"expensemanager/internal/core"
)

// Ports for the collaborators the services drive. The SQLite repository in
// internal/storage implements the three repositories; tests use in-memory
// fakes. Implementations return ErrNotFound for missing rows.
type (
	UserRepository interface {
		CreateUser(ctx context.Context, u *core.User) error
		GetUser(ctx context.Context, id string) (*core.User, error)
		GetUserByEmail(ctx context.Context, email string) (*core.User, error)
		UpdateUser(ctx context.Context, u *core.User) error
		DeleteUser(ctx context.Context, id string) error
		EmailExists(ctx context.Context, email string) (bool, error)
	}

	CategoryRepository interface {
		CreateCategory(ctx context.Context, c *core.Category) error
		GetCategory(ctx context.Context, id string) (*core.Category, error)
		GetCategoryByName(ctx context.Context, userID, name string) (*core.Category, error)
		ListCategories(ctx context.Context, userID string) ([]*core.Category, error)
		UpdateCategory(ctx context.Context, c *core.Category) error
		DeleteCategory(ctx context.Context, id string) error
	}

	ExpenseRepository interface {
		CreateExpense(ctx context.Context, e *core.Expense) error
		GetExpense(ctx context.Context, id string) (*core.Expense, error)
		ListExpenses(ctx context.Context, userID string, year, month int) ([]*core.Expense, error)
		UpdateExpense(ctx context.Context, e *core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
		CategoryInUse(ctx context.Context, categoryID string) (bool, error)
	}

	// PasswordHasher turns plaintext passwords into the hash+salt pair the
	// domain carries. internal/auth provides the PBKDF2 implementation.
	PasswordHasher interface {
		Hash(password string) (core.HashedPassword, error)
		Verify(password string, stored core.HashedPassword) bool
	}

	// EventPublisher announces expense lifecycle events for downstream
	// consumers such as the export worker. Publishing is best-effort.
	EventPublisher interface {
		PublishExpenseEvent(ctx context.Context, event, expenseID string) error
	}
)
