// Package worker consumes expense events and exports the referenced
// expenses to the configured writer.
package worker

import (
	"context"
	"errors"
	"fmt"

	"expensemanager/internal/amqp"
	"expensemanager/internal/log"
	"expensemanager/internal/services"
	"expensemanager/internal/sheets"
)

// ExportWorker resolves expense events to full rows and appends them to an
// ExpenseWriter. Events for expenses that no longer exist are dropped rather
// than requeued.
type ExportWorker struct {
	expenses   services.ExpenseRepository
	categories services.CategoryRepository
	writer     sheets.ExpenseWriter
	logger     *log.Logger
}

func NewExportWorker(expenses services.ExpenseRepository, categories services.CategoryRepository, writer sheets.ExpenseWriter, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		expenses:   expenses,
		categories: categories,
		writer:     writer,
		logger:     logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEvent processes one expense event message.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	if msg.Event == services.EventExpenseDeleted {
		// Export destinations are append-only; nothing to do.
		w.logger.InfoContext(ctx, "Skipping deleted expense event",
			log.FieldExpenseID, msg.ExpenseID)
		return nil
	}

	expense, err := w.expenses.GetExpense(ctx, msg.ExpenseID)
	if errors.Is(err, services.ErrNotFound) {
		// Deleted between publish and consume; drop it.
		w.logger.WarnContext(ctx, "Expense gone before export",
			log.FieldExpenseID, msg.ExpenseID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get expense %s: %w", msg.ExpenseID, err)
	}

	categoryName := ""
	category, err := w.categories.GetCategory(ctx, expense.CategoryID())
	if err == nil {
		categoryName = category.Name()
	} else if !errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("get category %s: %w", expense.CategoryID(), err)
	}

	rowRef, err := w.writer.Append(ctx, expense, categoryName)
	if err != nil {
		return fmt.Errorf("append expense %s: %w", msg.ExpenseID, err)
	}

	w.logger.InfoContext(ctx, "Expense exported",
		log.FieldExpenseID, msg.ExpenseID,
		log.FieldOperation, msg.Event,
		log.FieldSheetsRef, rowRef)

	return nil
}
