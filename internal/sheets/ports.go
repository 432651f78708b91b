// Package sheets defines the outbound export ports and their adapters.
package sheets

import (
	"context"

	"expensemanager/internal/core"
)

// ExpenseWriter appends one expense row to an export destination and
// returns a reference to the written row.
type ExpenseWriter interface {
	Append(ctx context.Context, e *core.Expense, categoryName string) (rowRef string, err error)
}
