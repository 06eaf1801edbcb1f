package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps the engine's log output easy to filter.
const (
	FieldFile        = "file_path"
	FieldOutput      = "output_path"
	FieldParser      = "parser"
	FieldInstitution = "institution"
	FieldAccountKey  = "account_key"
	FieldAccountType = "account_type"
	FieldStrategy    = "strategy"
	FieldYear        = "statement_year"
	FieldCount       = "count"
	FieldLine        = "line"
	FieldToken       = "token"
	FieldRow         = "row"
	FieldReason      = "reason"
)
