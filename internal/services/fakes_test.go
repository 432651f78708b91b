package services

import (
	"context"
	"log/slog"
	"sync"

	"expensemanager/internal/core"
	"expensemanager/internal/log"
)

// In-memory fakes backing the service tests. All three keep entities in
// mutex-guarded maps and return ErrNotFound for missing rows, matching the
// repository contract.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*core.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*core.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return ErrNotFound
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*core.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*core.Category)}
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, c *core.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID()] = c
	return nil
}

func (r *fakeCategoryRepo) GetCategory(_ context.Context, id string) (*core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetCategoryByName(_ context.Context, userID, name string) (*core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.UserID() == userID && c.Name() == name {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeCategoryRepo) ListCategories(_ context.Context, userID string) ([]*core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*core.Category
	for _, c := range r.categories {
		if c.UserID() == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ context.Context, c *core.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID()]; !ok {
		return ErrNotFound
	}
	r.categories[c.ID()] = c
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeExpenseRepo struct {
	mu       sync.Mutex
	expenses map[string]*core.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*core.Expense)}
}

func (r *fakeExpenseRepo) CreateExpense(_ context.Context, e *core.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID()] = e
	return nil
}

func (r *fakeExpenseRepo) GetExpense(_ context.Context, id string) (*core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *fakeExpenseRepo) ListExpenses(_ context.Context, userID string, year, month int) ([]*core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*core.Expense
	for _, e := range r.expenses {
		if e.UserID() != userID {
			continue
		}
		if e.Date().Year() == year && int(e.Date().Month()) == month {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) UpdateExpense(_ context.Context, e *core.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[e.ID()]; !ok {
		return ErrNotFound
	}
	r.expenses[e.ID()] = e
	return nil
}

func (r *fakeExpenseRepo) DeleteExpense(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) CategoryInUse(_ context.Context, categoryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expenses {
		if e.CategoryID() == categoryID {
			return true, nil
		}
	}
	return false, nil
}

// fakeHasher marks hashes deterministically so tests can assert without
// real key stretching.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (core.HashedPassword, error) {
	return core.NewHashedPassword("hash:"+password, "salt")
}

func (fakeHasher) Verify(password string, stored core.HashedPassword) bool {
	return stored.Hash() == "hash:"+password
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *fakePublisher) PublishExpenseEvent(_ context.Context, event, expenseID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event+":"+expenseID)
	return nil
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func testLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError, Component: log.ComponentApp})
}
