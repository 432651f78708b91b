// Package memory is an in-process ExpenseWriter used in tests and when no
// export backend is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"expensemanager/internal/core"
	ports "expensemanager/internal/sheets"
)

type Row struct {
	Expense  *core.Expense
	Category string
}

type Store struct {
	mu   sync.Mutex
	rows []Row
}

var _ ports.ExpenseWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the expense and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e *core.Expense, categoryName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, Row{Expense: e, Category: categoryName})
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.rows...)
}
