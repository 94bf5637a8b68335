// Package parser defines the contract shared by the per-year disclosure
// parsers and the base they embed.
package parser

import (
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/models"
	"fjacquet/giften-csv/internal/sheet"
)

// Parser turns the grid of one disclosure year into donation records.
// Parse never fails: a grid it cannot interpret yields no records and the
// reason is logged.
type Parser interface {
	Parse(grid sheet.Grid) []models.DonationRecord
}

// YearParser is a Parser bound to one disclosure year.
type YearParser interface {
	Parser
	Year() int
	Name() string
}

// LoggerConfigurable is implemented by parsers whose logger can be replaced
// after construction.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// SourceConfigurable is implemented by parsers that can name the file a grid
// came from in their diagnostics.
type SourceConfigurable interface {
	SetSource(path string)
}

// CSVWriter is implemented by parsers that can write their records to CSV.
type CSVWriter interface {
	WriteToCSV(records []models.DonationRecord, csvFile string, delimiter rune) error
}

// FullParser is the complete set of capabilities of the year parsers.
type FullParser interface {
	YearParser
	LoggerConfigurable
	SourceConfigurable
	CSVWriter
}
