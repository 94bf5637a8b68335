// Package common provides the pieces both year parsers and the reporter
// share: header detection, the carried row context, cell coercion and CSV I/O.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/giften-csv/internal/logging"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDelimiter is the separator of every output table.
const DefaultDelimiter = ','

// WriteCSV writes rows to csvFile as a header row plus one line per element,
// using the struct's csv tags. The file starts with a UTF-8 byte-order mark
// so spreadsheet programs pick the right encoding for Dutch names.
func WriteCSV[T any](rows []T, csvFile string, delimiter rune, logger logging.Logger) (err error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if rows == nil {
		rows = []T{}
	}

	logger.Info("Writing CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- output path comes from configuration
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file")
			if err == nil {
				err = fmt.Errorf("error closing CSV file: %w", cerr)
			}
		}
	}()

	bom := transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
	csvWriter := csv.NewWriter(bom)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	if err := bom.Close(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}

	logger.Debug("Successfully wrote CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile})
	return nil
}

// ReadCSVFile reads a table written by WriteCSV back into structs. A leading
// byte-order mark is skipped.
func ReadCSVFile[T any](csvFile string, delimiter rune) ([]T, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	file, err := os.Open(csvFile) // #nosec G304 -- path supplied by caller
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	decoded := transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	csvReader := csv.NewReader(decoded)
	csvReader.Comma = delimiter

	var rows []T
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}
