package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expensemanager/internal/core"
	"expensemanager/internal/log"
)

// CategoryService manages user-owned categories. "One category name per
// user" is a cross-entity rule, so it lives here rather than in the entity.
type CategoryService struct {
	categories CategoryRepository
	users      UserRepository
	expenses   ExpenseRepository
	logger     *log.Logger
}

func NewCategoryService(categories CategoryRepository, users UserRepository, expenses ExpenseRepository, logger *log.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		users:      users,
		expenses:   expenses,
		logger:     logger.WithComponent(log.ComponentCategory),
	}
}

// Create adds a category for an existing user.
func (s *CategoryService) Create(ctx context.Context, userID, name, description string) (*core.Category, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("owner %s: %w", userID, err)
	}

	if err := s.ensureNameFree(ctx, userID, name, ""); err != nil {
		return nil, err
	}

	category, err := core.NewCategory(name, userID, description)
	if err != nil {
		return nil, err
	}

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}

	s.logger.InfoContext(ctx, "Category created",
		log.FieldCategoryID, category.ID(),
		log.FieldUserID, userID)

	return category, nil
}

// Get fetches a category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*core.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

// List returns all categories owned by a user.
func (s *CategoryService) List(ctx context.Context, userID string) ([]*core.Category, error) {
	return s.categories.ListCategories(ctx, userID)
}

// Rename changes a category's name, re-checking per-owner uniqueness.
func (s *CategoryService) Rename(ctx context.Context, id, newName string) (*core.Category, error) {
	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, category.UserID(), newName, category.ID()); err != nil {
		return nil, err
	}

	if err := category.UpdateName(newName); err != nil {
		return nil, err
	}
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	return category, nil
}

// UpdateDescription replaces a category's description.
func (s *CategoryService) UpdateDescription(ctx context.Context, id, newDescription string) (*core.Category, error) {
	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.UpdateDescription(newDescription); err != nil {
		return nil, err
	}
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Categories never delete themselves; the rule
// that a referenced category must stay is enforced here.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		return err
	}

	inUse, err := s.expenses.CategoryInUse(ctx, id)
	if err != nil {
		return fmt.Errorf("check category references: %w", err)
	}
	if inUse {
		return fmt.Errorf("category %s: %w", id, ErrCategoryInUse)
	}

	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "Category deleted", log.FieldCategoryID, id)
	return nil
}

// ensureNameFree checks the per-owner name uniqueness rule. excludeID skips
// the category being renamed so renaming to its own name is allowed.
func (s *CategoryService) ensureNameFree(ctx context.Context, userID, name, excludeID string) error {
	name = strings.TrimSpace(name)
	existing, err := s.categories.GetCategoryByName(ctx, userID, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check category name uniqueness: %w", err)
	}
	if existing.ID() != excludeID {
		return fmt.Errorf("category name %q: %w", name, ErrAlreadyExists)
	}
	return nil
}
