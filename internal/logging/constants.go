package logging

// Standard field names so log lines from different components can be filtered
// the same way.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldYear       = "year"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldParty      = "party"
	FieldDonor      = "donor"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldCount      = "count"
	FieldThreshold  = "threshold"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
