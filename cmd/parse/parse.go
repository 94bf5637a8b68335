// Package parse converts a single disclosure spreadsheet to CSV.
package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/giften-csv/cmd/common"
	"fjacquet/giften-csv/cmd/root"
	"fjacquet/giften-csv/internal/fileutils"
	"fjacquet/giften-csv/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Input is the spreadsheet to parse
	Input string
	// Output is the CSV to write; defaults to the input name with .csv
	Output string
	// Year selects the layout; inferred from the input name when zero
	Year int
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert one disclosure spreadsheet to a CSV of donation records",
	Long: `Parse a single yearly disclosure spreadsheet (.ods or .xlsx) and write its
donation records to CSV. The year selects the column layout and is taken
from the file name unless --year is given.`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Input, "input", "i", "", "Input spreadsheet")
	Cmd.Flags().StringVarP(&Output, "output", "o", "", "Output CSV file")
	Cmd.Flags().IntVarP(&Year, "year", "y", 0, "Disclosure year (default: from the file name)")
	_ = Cmd.MarkFlagRequired("input")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	c := root.AppContainer
	if c == nil {
		return fmt.Errorf("container is not initialized")
	}

	year, err := ResolveYear(Input, Year)
	if err != nil {
		return err
	}
	p, err := c.GetParser(year)
	if err != nil {
		return err
	}

	output := Output
	if output == "" {
		output = DefaultOutput(Input)
	}

	root.Log.Info("Parse command called",
		logging.Field{Key: logging.FieldInputFile, Value: Input},
		logging.Field{Key: logging.FieldOutputFile, Value: output},
		logging.Field{Key: logging.FieldYear, Value: year})

	count, err := common.ProcessFile(p, c.GetReader(), Input, output, c.GetConfig().DelimiterRune(), root.Log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d: %d individual donation records\nSaved to %s\n", year, count, output)
	return nil
}

// ResolveYear returns year when set, otherwise the year in the input name.
func ResolveYear(input string, year int) (int, error) {
	if year != 0 {
		return year, nil
	}
	if y, ok := fileutils.YearFromFilename(input); ok {
		return y, nil
	}
	return 0, fmt.Errorf("cannot infer the year from %s, use --year", filepath.Base(input))
}

// DefaultOutput replaces the input extension with .csv.
func DefaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
}
