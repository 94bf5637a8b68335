package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DonorYearSummary aggregates the records of one donor for one party and
// year. It is derived on every run and never persisted on its own.
type DonorYearSummary struct {
	Year                int             `csv:"year"`
	Party               string          `csv:"party"`
	DonorName           string          `csv:"donor_name"`
	TotalAmount         decimal.Decimal `csv:"total_amount"`
	DonationCount       int             `csv:"donation_count"`
	Address             string          `csv:"address"`
	BeneficialOwnerName string          `csv:"beneficial_owner_name"`
	SubEntity           string          `csv:"sub_entity"`
}

// PartyYearTotal is the sum of donations to one party in one year.
type PartyYearTotal struct {
	Year       int             `json:"year"`
	Party      string          `json:"party"`
	Total      decimal.Decimal `json:"total"`
	DonorCount int             `json:"donor_count"`
}

// DonorProfile groups every record of a donor name across years and parties.
type DonorProfile struct {
	DonorName       string
	Total           decimal.Decimal
	DonationCount   int
	Parties         []string // sorted, unique
	Years           []int    // sorted, unique
	Address         string
	BeneficialOwner string
}

// YearCount returns the number of distinct years the donor gave in.
func (p DonorProfile) YearCount() int { return len(p.Years) }

// PartyCount returns the number of distinct parties the donor gave to.
func (p DonorProfile) PartyCount() int { return len(p.Parties) }

// PartiesLabel renders the parties as "A, B".
func (p DonorProfile) PartiesLabel() string {
	return strings.Join(p.Parties, ", ")
}

// YearsLabel renders the years as "2023, 2024".
func (p DonorProfile) YearsLabel() string {
	labels := make([]string, len(p.Years))
	for i, y := range p.Years {
		labels[i] = strconv.Itoa(y)
	}
	return strings.Join(labels, ", ")
}

// RecurringDonorRow is the CSV shape of a donor that gave in several years.
type RecurringDonorRow struct {
	DonorName string          `csv:"donor_name"`
	Years     string          `csv:"years"`
	YearCount int             `csv:"year_count"`
	Total     decimal.Decimal `csv:"total"`
	Parties   string          `csv:"parties"`
	Address   string          `csv:"address"`
}

// NewRecurringDonorRow flattens a profile for CSV output.
func NewRecurringDonorRow(p DonorProfile) RecurringDonorRow {
	return RecurringDonorRow{
		DonorName: p.DonorName,
		Years:     p.YearsLabel(),
		YearCount: p.YearCount(),
		Total:     p.Total,
		Parties:   p.PartiesLabel(),
		Address:   p.Address,
	}
}
