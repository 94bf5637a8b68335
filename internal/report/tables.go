package report

import (
	"fmt"
	"path/filepath"

	"fjacquet/giften-csv/internal/aggregate"
	"fjacquet/giften-csv/internal/common"
	"fjacquet/giften-csv/internal/fileutils"
	"fjacquet/giften-csv/internal/logging"
)

// Files names the three output tables.
type Files struct {
	Donations string
	Summary   string
	Recurring string
}

// Paths lists the files in write order.
func (f Files) Paths() []string {
	return []string{f.Donations, f.Summary, f.Recurring}
}

// WriteTables writes all individual donations, the donor-year summary and
// the recurring donors. The first failure aborts and is returned.
func (r *Reporter) WriteTables(result aggregate.Result, files Files) error {
	for _, path := range files.Paths() {
		if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
			return err
		}
	}

	if err := common.WriteCSV(result.Records, files.Donations, r.delimiter, r.logger); err != nil {
		return fmt.Errorf("failed to write donations table: %w", err)
	}
	if err := common.WriteCSV(result.DonorYears, files.Summary, r.delimiter, r.logger); err != nil {
		return fmt.Errorf("failed to write donor-year summary: %w", err)
	}
	if err := common.WriteCSV(result.RecurringRows(), files.Recurring, r.delimiter, r.logger); err != nil {
		return fmt.Errorf("failed to write recurring donors: %w", err)
	}

	r.logger.Info("Wrote output tables",
		logging.Field{Key: logging.FieldCount, Value: len(files.Paths())})
	return nil
}

// PrintSavedFiles lists the written tables on the console.
func (r *Reporter) PrintSavedFiles(files Files) {
	fmt.Fprintln(r.out, "\n\nFiles saved:")
	for _, path := range files.Paths() {
		fmt.Fprintf(r.out, "  - %s\n", path)
	}
}
