// Package report renders the aggregated donation views: a human-readable
// console report and the output tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/giften-csv/internal/aggregate"
	"fjacquet/giften-csv/internal/batch"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ruleWidth = 80

// Reporter writes the console report to out and the tables to disk.
type Reporter struct {
	out       io.Writer
	delimiter rune
	topN      int
	printer   *message.Printer
	logger    logging.Logger
}

// NewReporter creates a Reporter. topN is only used for the section title.
func NewReporter(out io.Writer, delimiter rune, topN int, logger logging.Logger) *Reporter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if topN < 1 {
		topN = aggregate.DefaultTopN
	}
	return &Reporter{
		out:       out,
		delimiter: delimiter,
		topN:      topN,
		printer:   message.NewPrinter(language.English),
		logger:    logger,
	}
}

// Euro renders an amount as "EUR 12,345", rounded to whole euros.
func (r *Reporter) Euro(amount decimal.Decimal) string {
	return r.printer.Sprintf("EUR %d", amount.RoundBank(0).IntPart())
}

func (r *Reporter) number(value decimal.Decimal) string {
	return r.printer.Sprintf("%d", value.RoundBank(0).IntPart())
}

// PrintYearCounts lists how many records each source contributed.
func (r *Reporter) PrintYearCounts(results []batch.YearResult, total int) {
	for _, res := range results {
		fmt.Fprintf(r.out, "%d: %d individual donation records\n", res.Year, res.Count())
	}
	fmt.Fprintf(r.out, "\nTotal combined: %d individual donation records\n", total)
}

// PrintReport writes every section of the console report.
func (r *Reporter) PrintReport(result aggregate.Result) error {
	fmt.Fprintf(r.out, "\nUnique donor-party-year combinations: %d\n", len(result.DonorYears))

	r.section("ANALYSIS: DONATIONS PER PARTY PER YEAR")
	fmt.Fprintln(r.out, "\nTotal donation amounts per party per year (EUR):")
	if err := r.printPivot(result.AmountPivot); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "\n\nNumber of donors per party per year:")
	if err := r.printPivot(result.DonorPivot); err != nil {
		return err
	}

	r.section(fmt.Sprintf("TOP %d LARGEST INDIVIDUAL DONORS (ACROSS ALL YEARS)", r.topN))
	for _, p := range result.TopDonors {
		r.printTopDonor(p)
	}

	r.section("RECURRING DONORS (DONATED IN MULTIPLE YEARS)")
	fmt.Fprintf(r.out, "\n%d donors donated in multiple years:\n\n", len(result.Recurring))
	for _, p := range result.Recurring {
		fmt.Fprintf(r.out, "  %s: %s over %d years (%s)\n", p.DonorName, r.Euro(p.Total), p.YearCount(), p.YearsLabel())
		fmt.Fprintf(r.out, "    Partij(en): %s, Adres: %s\n", p.PartiesLabel(), p.Address)
	}

	r.section("DONORS WHO GAVE TO MULTIPLE PARTIES")
	if len(result.MultiParty) == 0 {
		fmt.Fprintln(r.out, "\nNo donors found who gave to multiple parties.")
		return nil
	}
	fmt.Fprintf(r.out, "\n%d donors gave to multiple parties:\n\n", len(result.MultiParty))
	for _, p := range result.MultiParty {
		fmt.Fprintf(r.out, "  %s: %s\n", p.DonorName, r.Euro(p.Total))
		fmt.Fprintf(r.out, "    Partijen: %s\n", p.PartiesLabel())
		fmt.Fprintf(r.out, "    Jaren: %s\n", p.YearsLabel())
	}
	return nil
}

func (r *Reporter) section(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n", rule, title, rule)
}

func (r *Reporter) printTopDonor(p models.DonorProfile) {
	owner := ""
	if p.BeneficialOwner != "" {
		owner = fmt.Sprintf(" (UBO: %s)", p.BeneficialOwner)
	}
	fmt.Fprintf(r.out, "\n  %s: %s\n", p.DonorName, r.Euro(p.Total))
	fmt.Fprintf(r.out, "    Partij(en): %s\n", p.PartiesLabel())
	fmt.Fprintf(r.out, "    Jaren: %s\n", p.YearsLabel())
	fmt.Fprintf(r.out, "    Adres: %s%s\n", p.Address, owner)
}

func (r *Reporter) printPivot(pivot aggregate.Pivot) error {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)

	header := []string{"partij"}
	for _, y := range pivot.Years {
		header = append(header, fmt.Sprint(y))
	}
	header = append(header, "Totaal")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range pivot.Rows {
		cells := []string{row.Party}
		for _, y := range pivot.Years {
			cells = append(cells, r.number(row.Value(y)))
		}
		cells = append(cells, r.number(row.Total))
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write pivot table: %w", err)
	}
	return nil
}
