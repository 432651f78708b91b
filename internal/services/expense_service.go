package services

import (
	"context"
	"fmt"
	"time"

	"expensemanager/internal/cache"
	"expensemanager/internal/core"
	"expensemanager/internal/log"
)

// Expense lifecycle events published for downstream consumers.
const (
	EventExpenseRecorded = "recorded"
	EventExpenseUpdated  = "updated"
	EventExpenseDeleted  = "deleted"
)

// RecordExpenseInput carries everything needed to record a transaction.
type RecordExpenseInput struct {
	UserID        string
	CategoryID    string
	Description   string
	Amount        core.Money
	Date          time.Time
	Type          core.ExpenseType
	PaymentMethod core.PaymentMethod
	Notes         string
}

// ExpenseService records and mutates transactions. The cross-entity check
// that the referenced category belongs to the referencing user happens here,
// before the entity is constructed or re-pointed; Expense itself only knows
// identifiers. Events are published best-effort: a broker outage never fails
// a recorded expense.
type ExpenseService struct {
	expenses   ExpenseRepository
	categories CategoryRepository
	users      UserRepository
	events     EventPublisher // may be nil
	summaries  *cache.LRUCache[core.MonthSummary]
	logger     *log.Logger
}

func NewExpenseService(expenses ExpenseRepository, categories CategoryRepository, users UserRepository, events EventPublisher, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		users:      users,
		events:     events,
		summaries:  cache.NewLRUCache[core.MonthSummary](64, 5*time.Minute),
		logger:     logger.WithComponent(log.ComponentExpense),
	}
}

// Record validates ownership and persists a new transaction.
func (s *ExpenseService) Record(ctx context.Context, in RecordExpenseInput) (*core.Expense, error) {
	if _, err := s.users.GetUser(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("owner %s: %w", in.UserID, err)
	}
	if err := s.ensureCategoryOwnedBy(ctx, in.CategoryID, in.UserID); err != nil {
		return nil, err
	}

	expense, err := core.NewExpense(in.Description, in.Amount, in.Date, in.UserID, in.CategoryID, in.Type, in.PaymentMethod, in.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	s.invalidateSummary(expense.UserID(), expense.Date())
	s.publish(ctx, EventExpenseRecorded, expense.ID())

	s.logger.InfoContext(ctx, "Expense recorded",
		log.FieldExpenseID, expense.ID(),
		log.FieldUserID, expense.UserID(),
		log.FieldAmountCents, expense.Amount().Cents(),
		log.FieldCurrency, expense.Amount().Currency())

	return expense, nil
}

// Get fetches an expense by id.
func (s *ExpenseService) Get(ctx context.Context, id string) (*core.Expense, error) {
	return s.expenses.GetExpense(ctx, id)
}

// List returns a user's expenses for one month.
func (s *ExpenseService) List(ctx context.Context, userID string, year, month int) ([]*core.Expense, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", core.ErrInvalidArgument, month)
	}
	return s.expenses.ListExpenses(ctx, userID, year, month)
}

// UpdateDescription rewrites the transaction description.
func (s *ExpenseService) UpdateDescription(ctx context.Context, id, newDescription string) (*core.Expense, error) {
	return s.mutate(ctx, id, func(e *core.Expense) error {
		return e.UpdateDescription(newDescription)
	})
}

// UpdateAmount replaces the transaction amount.
func (s *ExpenseService) UpdateAmount(ctx context.Context, id string, newAmount core.Money) (*core.Expense, error) {
	return s.mutate(ctx, id, func(e *core.Expense) error {
		return e.UpdateAmount(newAmount)
	})
}

// UpdateDate moves the transaction to another date.
func (s *ExpenseService) UpdateDate(ctx context.Context, id string, newDate time.Time) (*core.Expense, error) {
	return s.mutate(ctx, id, func(e *core.Expense) error {
		// The old month's summary goes stale too.
		s.invalidateSummary(e.UserID(), e.Date())
		return e.UpdateDate(newDate)
	})
}

// ChangeCategory points the expense at another category owned by the same
// user.
func (s *ExpenseService) ChangeCategory(ctx context.Context, id, newCategoryID string) (*core.Expense, error) {
	return s.mutate(ctx, id, func(e *core.Expense) error {
		if err := s.ensureCategoryOwnedBy(ctx, newCategoryID, e.UserID()); err != nil {
			return err
		}
		return e.ChangeCategory(newCategoryID)
	})
}

// UpdatePaymentMethod replaces the payment method; any value is accepted.
func (s *ExpenseService) UpdatePaymentMethod(ctx context.Context, id string, newMethod core.PaymentMethod) (*core.Expense, error) {
	return s.mutate(ctx, id, func(e *core.Expense) error {
		e.UpdatePaymentMethod(newMethod)
		return nil
	})
}

// UpdateNotes replaces the notes; any value is accepted.
func (s *ExpenseService) UpdateNotes(ctx context.Context, id, newNotes string) (*core.Expense, error) {
	return s.mutate(ctx, id, func(e *core.Expense) error {
		e.UpdateNotes(newNotes)
		return nil
	})
}

// Delete removes a transaction.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	expense, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.invalidateSummary(expense.UserID(), expense.Date())
	s.publish(ctx, EventExpenseDeleted, id)

	s.logger.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id)
	return nil
}

// MonthSummary folds one month of transactions into totals and a
// per-category breakdown. Amounts combine with Money.Add, so a month mixing
// currencies reports the currency-mismatch error instead of converting.
// Results are cached briefly; every mutation invalidates the affected month.
func (s *ExpenseService) MonthSummary(ctx context.Context, userID string, year, month int) (core.MonthSummary, error) {
	if month < 1 || month > 12 {
		return core.MonthSummary{}, fmt.Errorf("%w: month %d out of range", core.ErrInvalidArgument, month)
	}

	key := summaryKey(userID, year, month)
	if cached, ok := s.summaries.Get(key); ok {
		return cached, nil
	}

	expenses, err := s.expenses.ListExpenses(ctx, userID, year, month)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("list expenses: %w", err)
	}
	categories, err := s.categories.ListCategories(ctx, userID)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID()] = c.Name()
	}

	summary := core.MonthSummary{Year: year, Month: month}
	perCategory := make(map[string]core.Money)
	var order []string

	for _, e := range expenses {
		switch e.Type() {
		case core.TypeIncome:
			summary.Income, err = accumulate(summary.Income, e.Amount())
		default:
			summary.Expenses, err = accumulate(summary.Expenses, e.Amount())
			if err == nil {
				prev, seen := perCategory[e.CategoryID()]
				if !seen {
					order = append(order, e.CategoryID())
				}
				perCategory[e.CategoryID()], err = accumulate(prev, e.Amount())
			}
		}
		if err != nil {
			return core.MonthSummary{}, fmt.Errorf("summarize %d-%02d: %w", year, month, err)
		}
	}

	for _, id := range order {
		summary.ByCategory = append(summary.ByCategory, core.CategoryAmount{
			CategoryID: id,
			Name:       names[id],
			Amount:     perCategory[id],
		})
	}

	s.summaries.Set(key, summary)
	return summary, nil
}

// mutate is the shared fetch-mutate-save-publish path of the field mutators.
func (s *ExpenseService) mutate(ctx context.Context, id string, fn func(*core.Expense) error) (*core.Expense, error) {
	expense, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(expense); err != nil {
		return nil, err
	}
	if err := s.expenses.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	s.invalidateSummary(expense.UserID(), expense.Date())
	s.publish(ctx, EventExpenseUpdated, expense.ID())
	return expense, nil
}

func (s *ExpenseService) ensureCategoryOwnedBy(ctx context.Context, categoryID, userID string) error {
	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("category %s: %w", categoryID, err)
	}
	if category.UserID() != userID {
		return fmt.Errorf("category %s: %w", categoryID, ErrNotOwned)
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, event, expenseID string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, event, expenseID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish expense event",
			log.FieldExpenseID, expenseID,
			log.FieldOperation, event,
			log.FieldError, err)
	}
}

func (s *ExpenseService) invalidateSummary(userID string, date time.Time) {
	s.summaries.Delete(summaryKey(userID, date.Year(), int(date.Month())))
}

func summaryKey(userID string, year, month int) string {
	return fmt.Sprintf("%s/%d-%02d", userID, year, month)
}

// accumulate folds amount into total, treating a zero-value total as the
// start of the fold.
func accumulate(total, amount core.Money) (core.Money, error) {
	if total.IsZero() {
		return amount, nil
	}
	return total.Add(amount)
}
