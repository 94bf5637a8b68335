package parser

import (
	"fjacquet/giften-csv/internal/common"
	"fjacquet/giften-csv/internal/layout"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/models"
	"fjacquet/giften-csv/internal/parsererror"
	"fjacquet/giften-csv/internal/sheet"
)

// BaseParser holds what every year parser needs: the year's layout and a
// logger. Parsers embed it:
//
//	type Parser struct {
//		parser.BaseParser
//	}
type BaseParser struct {
	logger logging.Logger
	layout layout.Layout
	name   string
	source string
}

// NewBaseParser creates a BaseParser for the given layout. If logger is nil,
// a default logger is used.
func NewBaseParser(name string, l layout.Layout, logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{
		logger: logger,
		layout: l,
		name:   name,
	}
}

// SetLogger replaces the logger. A nil logger is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// SetSource records the path of the file the next grid was read from, so
// header misses can name it.
func (b *BaseParser) SetSource(path string) {
	b.source = path
}

// Source returns the path set with SetSource.
func (b *BaseParser) Source() string {
	return b.source
}

// GetLogger returns the current logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Layout returns the column layout the parser reads.
func (b *BaseParser) Layout() layout.Layout {
	return b.layout
}

// Year returns the disclosure year the parser is bound to.
func (b *BaseParser) Year() int {
	return b.layout.Year
}

// Name identifies the parser in log lines.
func (b *BaseParser) Name() string {
	return b.name
}

// LocateHeader finds the header row of grid. When there is none, the miss is
// logged as a warning and false is returned so the caller can yield nothing.
func (b *BaseParser) LocateHeader(grid sheet.Grid) (int, bool) {
	row, ok := common.FindHeaderRow(grid, b.layout.HeaderLabels)
	if !ok {
		err := &parsererror.HeaderNotFoundError{FilePath: b.source, Labels: b.layout.HeaderLabels}
		b.logger.WithError(err).Warn("Header row not found, no records for this year",
			logging.Field{Key: logging.FieldParser, Value: b.name},
			logging.Field{Key: logging.FieldYear, Value: b.layout.Year},
			logging.Field{Key: logging.FieldFile, Value: b.source})
		return -1, false
	}
	b.logger.Debug("Located header row",
		logging.Field{Key: logging.FieldParser, Value: b.name},
		logging.Field{Key: logging.FieldRow, Value: row},
		logging.Field{Key: logging.FieldColumn, Value: grid.Width()})
	return row, true
}

// LogSkippedAmount records a row dropped because its amount cell is not a
// number.
func (b *BaseParser) LogSkippedAmount(row int, cell sheet.Cell, err error) {
	perr := &parsererror.ParseError{
		Parser: b.name,
		Field:  "amount",
		Value:  cell.String(),
		Err:    err,
	}
	b.logger.WithError(perr).Debug("Skipping row with unparsable amount",
		logging.Field{Key: logging.FieldYear, Value: b.layout.Year},
		logging.Field{Key: logging.FieldRow, Value: row})
}

// LogParsed reports how many records a grid produced.
func (b *BaseParser) LogParsed(records []models.DonationRecord) {
	b.logger.Info("Parsed disclosure sheet",
		logging.Field{Key: logging.FieldParser, Value: b.name},
		logging.Field{Key: logging.FieldYear, Value: b.layout.Year},
		logging.Field{Key: logging.FieldThreshold, Value: b.layout.ThresholdAmount().String()},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
}

// WriteToCSV writes records with the shared CSV writer.
func (b *BaseParser) WriteToCSV(records []models.DonationRecord, csvFile string, delimiter rune) error {
	return common.WriteCSV(records, csvFile, delimiter, b.logger)
}
