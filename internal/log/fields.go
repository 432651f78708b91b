package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserID      = "user_id"
	FieldCategoryID  = "category_id"
	FieldExpenseID   = "expense_id"
	FieldEmail       = "email"
	FieldAmountCents = "amount_cents"
	FieldCurrency    = "currency"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentUsers    = "users"
	ComponentCategory = "categories"
	ComponentExpense  = "expenses"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSheets   = "sheets"
)
