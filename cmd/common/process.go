// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/giften-csv/internal/container"
	"fjacquet/giften-csv/internal/fileutils"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/parser"
	"fjacquet/giften-csv/internal/report"
	"fjacquet/giften-csv/internal/sheet"
	"fjacquet/giften-csv/internal/validation"
)

// RunAnalysis parses every configured year, prints the report to out and
// writes the three output tables. Years that cannot be read are skipped; a
// failure to write a table is returned.
func RunAnalysis(c *container.Container, out io.Writer, format string) error {
	if c == nil {
		return fmt.Errorf("container is not initialized")
	}
	if format == "" {
		format = c.GetConfig().Report.Format
	}
	text := format != report.FormatJSON
	reporter := c.NewReporter(out)

	if text {
		fmt.Fprintln(out, "Parsing donation data...")
	}
	results, records := c.GetCollector().Collect(c.Sources())
	if text {
		reporter.PrintYearCounts(results, len(records))
	}

	result := c.GetAggregator().Run(records)
	if err := reporter.GenerateReport(result, format); err != nil {
		return fmt.Errorf("error generating report: %w", err)
	}

	files := c.OutputFiles()
	if err := reporter.WriteTables(result, files); err != nil {
		return fmt.Errorf("error writing output tables: %w", err)
	}
	if text {
		reporter.PrintSavedFiles(files)
	}
	return nil
}

// ProcessFile parses a single disclosure spreadsheet with p and writes its
// donation records to outputFile. It returns the number of records written.
func ProcessFile(p parser.FullParser, reader sheet.Reader, inputFile, outputFile string, delimiter rune, log logging.Logger) (int, error) {
	p.SetLogger(log)

	if err := validation.IsValidSpreadsheet(inputFile); err != nil {
		return 0, err
	}
	if err := validation.IsValidOutputPath(outputFile); err != nil {
		return 0, err
	}

	grid, err := reader.Read(inputFile)
	if err != nil {
		return 0, fmt.Errorf("error reading spreadsheet: %w", err)
	}
	p.SetSource(inputFile)
	records := p.Parse(grid)

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(outputFile)); err != nil {
		return 0, err
	}
	if err := p.WriteToCSV(records, outputFile, delimiter); err != nil {
		return 0, fmt.Errorf("error writing CSV: %w", err)
	}

	log.Info("Conversion completed successfully!",
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return len(records), nil
}
