package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPath        = "path"
	FieldBackend     = "backend"
	FieldCount       = "count"
	FieldExpenseID   = "expense_id"
	FieldExpenseName = "expense_name"
	FieldAmount      = "amount"
	FieldDueDate     = "due_date"
	FieldPaidDate    = "paid_date"
	FieldKind        = "kind"
	FieldCycleDays   = "cycle_days"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentCLI        = "cli"
	ComponentConfig     = "config"
	ComponentTracker    = "tracker"
	ComponentRecurrence = "recurrence"
	ComponentStorage    = "storage"
	ComponentExport     = "export"
)

// Operations defines standard operation names
const (
	OpAdd        = "add"
	OpPay        = "pay"
	OpRemove     = "remove"
	OpLoad       = "load"
	OpSave       = "save"
	OpReactivate = "reactivate"
	OpExport     = "export"
)
