package core

import "strings"

// ExpenseType distinguishes outgoing from incoming transactions.
type ExpenseType string

const (
	TypeExpense ExpenseType = "expense"
	TypeIncome  ExpenseType = "income"
)

// ParseExpenseType maps a string to an ExpenseType. The empty string means
// "use the default" and parses to TypeExpense.
func ParseExpenseType(s string) (ExpenseType, error) {
	switch ExpenseType(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeExpense:
		return TypeExpense, nil
	case TypeIncome:
		return TypeIncome, nil
	default:
		return "", invalidf("unknown expense type %q", s)
	}
}

// PaymentMethod records how a transaction was paid. The empty string means
// the method was not recorded; the domain attaches no rule to it beyond
// optionality.
type PaymentMethod string

const (
	PaymentUnspecified  PaymentMethod = ""
	PaymentCash         PaymentMethod = "cash"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPix          PaymentMethod = "pix"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentOther        PaymentMethod = "other"
)

// ParsePaymentMethod maps a string to a PaymentMethod, accepting the empty
// string as "unspecified".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentUnspecified, PaymentCash, PaymentDebitCard, PaymentCreditCard, PaymentPix, PaymentBankTransfer, PaymentOther:
		return m, nil
	default:
		return "", invalidf("unknown payment method %q", s)
	}
}
