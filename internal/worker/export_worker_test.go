package worker

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"expensemanager/internal/amqp"
	"expensemanager/internal/core"
	"expensemanager/internal/log"
	"expensemanager/internal/services"
	"expensemanager/internal/sheets/memory"
)

type stubExpenseRepo struct {
	mu       sync.Mutex
	expenses map[string]*core.Expense
}

func (r *stubExpenseRepo) GetExpense(_ context.Context, id string) (*core.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return e, nil
}

func (r *stubExpenseRepo) CreateExpense(context.Context, *core.Expense) error { return nil }
func (r *stubExpenseRepo) UpdateExpense(context.Context, *core.Expense) error { return nil }
func (r *stubExpenseRepo) DeleteExpense(context.Context, string) error        { return nil }
func (r *stubExpenseRepo) CategoryInUse(context.Context, string) (bool, error) {
	return false, nil
}
func (r *stubExpenseRepo) ListExpenses(context.Context, string, int, int) ([]*core.Expense, error) {
	return nil, nil
}

type stubCategoryRepo struct {
	categories map[string]*core.Category
}

func (r *stubCategoryRepo) GetCategory(_ context.Context, id string) (*core.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) CreateCategory(context.Context, *core.Category) error { return nil }
func (r *stubCategoryRepo) UpdateCategory(context.Context, *core.Category) error { return nil }
func (r *stubCategoryRepo) DeleteCategory(context.Context, string) error         { return nil }
func (r *stubCategoryRepo) GetCategoryByName(context.Context, string, string) (*core.Category, error) {
	return nil, services.ErrNotFound
}
func (r *stubCategoryRepo) ListCategories(context.Context, string) ([]*core.Category, error) {
	return nil, nil
}

func newWorkerFixture(t *testing.T) (*ExportWorker, *memory.Store, *core.Expense) {
	t.Helper()
	amount, err := core.NewMoney(1250, "BRL")
	if err != nil {
		t.Fatalf("NewMoney: %v", err)
	}
	category, err := core.NewCategory("Groceries", "user-1", "")
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	expense, err := core.NewExpense("market", amount, time.Now().UTC(), "user-1", category.ID(), core.TypeExpense, core.PaymentCash, "")
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}

	expenses := &stubExpenseRepo{expenses: map[string]*core.Expense{expense.ID(): expense}}
	categories := &stubCategoryRepo{categories: map[string]*core.Category{category.ID(): category}}
	writer := memory.New()
	logger := log.New(log.Config{Level: slog.LevelError, Component: log.ComponentApp})

	return NewExportWorker(expenses, categories, writer, logger), writer, expense
}

func TestExportWorkerHandleEvent(t *testing.T) {
	worker, writer, expense := newWorkerFixture(t)

	msg := amqp.NewExpenseEventMessage(services.EventExpenseRecorded, expense.ID())
	if err := worker.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Category != "Groceries" {
		t.Errorf("category = %q, want Groceries", rows[0].Category)
	}
	if rows[0].Expense.ID() != expense.ID() {
		t.Error("exported wrong expense")
	}
}

func TestExportWorkerDropsDeletedEvents(t *testing.T) {
	worker, writer, expense := newWorkerFixture(t)

	msg := amqp.NewExpenseEventMessage(services.EventExpenseDeleted, expense.ID())
	if err := worker.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(writer.Rows()) != 0 {
		t.Error("deleted event should not be exported")
	}
}

func TestExportWorkerDropsMissingExpense(t *testing.T) {
	worker, writer, _ := newWorkerFixture(t)

	msg := amqp.NewExpenseEventMessage(services.EventExpenseRecorded, "gone")
	if err := worker.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent for missing expense should drop, got %v", err)
	}
	if len(writer.Rows()) != 0 {
		t.Error("missing expense should not be exported")
	}
}
