package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"

	FieldUserEmail  = "user_email"
	FieldExpenseID  = "expense_id"
	FieldCategoryID = "category_id"
	FieldAmount     = "amount"
	FieldDate       = "date"
	FieldWindow     = "window"
	FieldReports    = "reports"
	FieldFailures   = "failures"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentExpense   = "expense"
	ComponentReport    = "report"
	ComponentStats     = "statistics"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentMail      = "mail"
	ComponentScheduler = "scheduler"
)
