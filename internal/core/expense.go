package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

// minExpenseDate is the earliest date a transaction may carry.
var minExpenseDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// maxFutureWindow is how far into the future a transaction date may lie.
const maxFutureWindow = 24 * time.Hour

// Expense is a dated financial transaction, outgoing or incoming. It
// references its owner and category by identifier only; that the category
// belongs to the same user is a cross-entity rule checked by the service
// layer, never here.
type Expense struct {
	Entity
	description   string
	amount        Money
	date          time.Time
	expenseType   ExpenseType
	paymentMethod PaymentMethod
	notes         string
	userID        string
	categoryID    string
}

// NewExpense validates description, amount, date, userID and categoryID in
// that order and fails on the first violation. The amount must be strictly
// positive: a zero Money constructs fine on its own but is not a valid
// transaction amount. An empty typ defaults to TypeExpense; paymentMethod
// and notes are optional and never validated.
func NewExpense(description string, amount Money, date time.Time, userID, categoryID string, typ ExpenseType, paymentMethod PaymentMethod, notes string) (*Expense, error) {
	description, err := validExpenseDescription(description)
	if err != nil {
		return nil, err
	}
	if err := validExpenseAmount(amount); err != nil {
		return nil, err
	}
	if err := validExpenseDate(date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("expense user id cannot be empty")
	}
	if strings.TrimSpace(categoryID) == "" {
		return nil, invalidf("expense category id cannot be empty")
	}
	if typ == "" {
		typ = TypeExpense
	}
	return &Expense{
		Entity:        newEntity(),
		description:   description,
		amount:        amount,
		date:          date,
		expenseType:   typ,
		paymentMethod: paymentMethod,
		notes:         strings.TrimSpace(notes),
		userID:        userID,
		categoryID:    categoryID,
	}, nil
}

// Description returns the transaction description.
func (e *Expense) Description() string { return e.description }

// Amount returns the transaction amount.
func (e *Expense) Amount() Money { return e.amount }

// Date returns when the transaction occurred.
func (e *Expense) Date() time.Time { return e.date }

// Type returns whether this is an expense or an income.
func (e *Expense) Type() ExpenseType { return e.expenseType }

// PaymentMethod returns how the transaction was paid, PaymentUnspecified
// when not recorded.
func (e *Expense) PaymentMethod() PaymentMethod { return e.paymentMethod }

// Notes returns the optional free-form notes, empty when unset.
func (e *Expense) Notes() string { return e.notes }

// UserID returns the identifier of the owning user.
func (e *Expense) UserID() string { return e.userID }

// CategoryID returns the identifier of the referenced category.
func (e *Expense) CategoryID() string { return e.categoryID }

// UpdateDescription replaces the description after revalidation.
func (e *Expense) UpdateDescription(newDescription string) error {
	description, err := validExpenseDescription(newDescription)
	if err != nil {
		return err
	}
	e.description = description
	e.touch()
	return nil
}

// UpdateAmount replaces the amount after revalidation.
func (e *Expense) UpdateAmount(newAmount Money) error {
	if err := validExpenseAmount(newAmount); err != nil {
		return err
	}
	e.amount = newAmount
	e.touch()
	return nil
}

// UpdateDate replaces the date after revalidation.
func (e *Expense) UpdateDate(newDate time.Time) error {
	if err := validExpenseDate(newDate); err != nil {
		return err
	}
	e.date = newDate
	e.touch()
	return nil
}

// ChangeCategory points the expense at another category. Ownership of the
// new category is the service layer's check.
func (e *Expense) ChangeCategory(newCategoryID string) error {
	if strings.TrimSpace(newCategoryID) == "" {
		return invalidf("expense category id cannot be empty")
	}
	e.categoryID = newCategoryID
	e.touch()
	return nil
}

// UpdatePaymentMethod replaces the payment method. Any value, including
// PaymentUnspecified, is accepted.
func (e *Expense) UpdatePaymentMethod(newMethod PaymentMethod) {
	e.paymentMethod = newMethod
	e.touch()
}

// UpdateNotes replaces the notes. Any value, including empty, is accepted.
func (e *Expense) UpdateNotes(newNotes string) {
	e.notes = strings.TrimSpace(newNotes)
	e.touch()
}

func validExpenseDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", invalidf("expense description cannot be empty")
	}
	if utf8.RuneCountInString(description) < 3 {
		return "", invalidf("expense description must have at least 3 characters")
	}
	if utf8.RuneCountInString(description) > 200 {
		return "", invalidf("expense description cannot exceed 200 characters")
	}
	return description, nil
}

func validExpenseAmount(amount Money) error {
	if amount.IsZero() {
		return missingf("expense amount is required")
	}
	if amount.Cents() <= 0 {
		return invalidf("amount must be greater than zero")
	}
	return nil
}

func validExpenseDate(date time.Time) error {
	if date.After(nowFunc().Add(maxFutureWindow)) {
		return invalidf("expense date cannot be more than 1 day in the future")
	}
	if date.Before(minExpenseDate) {
		return invalidf("expense date cannot be before year 2000")
	}
	return nil
}
