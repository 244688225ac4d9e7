package logging

// Standard field names for structured log output.
const (
	FieldFile         = "file_path"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldInputDir     = "input_dir"
	FieldOutputDir    = "output_dir"
	FieldCount        = "count"
	FieldLine         = "line"
	FieldDelimiter    = "delimiter"
	FieldPolicy       = "policy"
	FieldWorkers      = "workers"
	FieldMessageID    = "message_id"
	FieldTransactions = "transactions"
	FieldError        = "error"
	FieldErrorCode    = "error_code"
	FieldValue        = "value"
	FieldColumns      = "columns"
	FieldDuration     = "duration_ms"
	FieldSkipped      = "skipped"
	FieldStatus       = "status"
	FieldFailed       = "failed"
)
