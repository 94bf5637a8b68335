// Package models holds the normalized donation records and the derived
// summaries built from them.
package models

import "github.com/shopspring/decimal"

// DonationRecord is one itemized donation line of a disclosure year. Records
// are created by the year parsers and never modified afterwards.
type DonationRecord struct {
	Year                int             `csv:"year"`
	Party               string          `csv:"party"`
	SubEntity           string          `csv:"sub_entity"`
	DonorName           string          `csv:"donor_name"`
	DonorAddress        string          `csv:"donor_address"`
	BeneficialOwnerName string          `csv:"beneficial_owner_name"`
	BeneficialOwnerCity string          `csv:"beneficial_owner_city"`
	Amount              decimal.Decimal `csv:"amount"`
	DeclaredTotal       OptionalAmount  `csv:"declared_total_for_donor"`
	Date                string          `csv:"date"` // YYYY-MM-DD or empty
	Note                string          `csv:"note"`
}

// DonorYearKey identifies a donor within one party and year.
type DonorYearKey struct {
	Year      int
	Party     string
	DonorName string
}

// Key returns the (year, party, donor) grouping key of the record.
func (r DonationRecord) Key() DonorYearKey {
	return DonorYearKey{Year: r.Year, Party: r.Party, DonorName: r.DonorName}
}
