// Package analyze runs the full donation analysis over all configured years.
package analyze

import (
	"fjacquet/giften-csv/cmd/common"
	"fjacquet/giften-csv/cmd/root"

	"github.com/spf13/cobra"
)

// Format overrides report.format for a single run.
var Format string

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Parse all configured years and report on donors",
	Long: `Parse the disclosure spreadsheet of every configured year, print totals per
party and year, the largest, recurring and multi-party donors, and write
the donation, donor-year summary and recurring donor tables.`,
	RunE: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", "", "report format (text, json)")
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Analyze command called")
	if err := common.RunAnalysis(root.AppContainer, cmd.OutOrStdout(), Format); err != nil {
		return err
	}
	root.Log.Info("Analysis completed successfully!")
	return nil
}
