package report

import (
	"encoding/json"
	"fmt"

	"fjacquet/giften-csv/internal/aggregate"
	"fjacquet/giften-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Summary is the machine-readable form of the console report.
type Summary struct {
	Records          int                     `json:"records"`
	DonorYearGroups  int                     `json:"donor_year_groups"`
	PartyYears       []models.PartyYearTotal `json:"party_years"`
	TopDonors        []DonorSummary          `json:"top_donors"`
	RecurringDonors  []DonorSummary          `json:"recurring_donors"`
	MultiPartyDonors []DonorSummary          `json:"multi_party_donors"`
}

// DonorSummary is a donor profile as it appears in the JSON report.
type DonorSummary struct {
	DonorName       string          `json:"donor_name"`
	Total           decimal.Decimal `json:"total"`
	DonationCount   int             `json:"donation_count"`
	Parties         []string        `json:"parties"`
	Years           []int           `json:"years"`
	Address         string          `json:"address"`
	BeneficialOwner string          `json:"beneficial_owner,omitempty"`
}

// NewSummary builds the JSON report from an aggregation result.
func NewSummary(result aggregate.Result) Summary {
	return Summary{
		Records:          len(result.Records),
		DonorYearGroups:  len(result.DonorYears),
		PartyYears:       result.PartyYears,
		TopDonors:        donorSummaries(result.TopDonors),
		RecurringDonors:  donorSummaries(result.Recurring),
		MultiPartyDonors: donorSummaries(result.MultiParty),
	}
}

func donorSummaries(profiles []models.DonorProfile) []DonorSummary {
	out := make([]DonorSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, DonorSummary{
			DonorName:       p.DonorName,
			Total:           p.Total,
			DonationCount:   p.DonationCount,
			Parties:         p.Parties,
			Years:           p.Years,
			Address:         p.Address,
			BeneficialOwner: p.BeneficialOwner,
		})
	}
	return out
}

// GenerateReport writes the report in the given format ("text" or "json").
func (r *Reporter) GenerateReport(result aggregate.Result, format string) error {
	switch format {
	case "", FormatText:
		return r.PrintReport(result)
	case FormatJSON:
		return r.generateJSONReport(result)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (r *Reporter) generateJSONReport(result aggregate.Result) error {
	data, err := json.MarshalIndent(NewSummary(result), "", "  ")
	if err != nil {
		r.logger.WithError(err).Error("Failed to marshal JSON report")
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	if _, err := fmt.Fprintln(r.out, string(data)); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
