package aggregate

import (
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/models"
)

// Result holds every view derived from one batch of records.
type Result struct {
	Records     []models.DonationRecord
	DonorYears  []models.DonorYearSummary
	PartyYears  []models.PartyYearTotal
	AmountPivot Pivot
	DonorPivot  Pivot
	TopDonors   []models.DonorProfile
	Recurring   []models.DonorProfile
	MultiParty  []models.DonorProfile
}

// RecurringRows flattens the recurring donors for CSV output.
func (r Result) RecurringRows() []models.RecurringDonorRow {
	rows := make([]models.RecurringDonorRow, 0, len(r.Recurring))
	for _, p := range r.Recurring {
		rows = append(rows, models.NewRecurringDonorRow(p))
	}
	return rows
}

// Aggregator runs all aggregations over a record stream.
type Aggregator struct {
	topN   int
	logger logging.Logger
}

// NewAggregator creates an Aggregator. topN below 1 falls back to
// DefaultTopN; a nil logger falls back to the default logger.
func NewAggregator(topN int, logger logging.Logger) *Aggregator {
	if topN < 1 {
		topN = DefaultTopN
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{topN: topN, logger: logger}
}

// TopN returns the configured length of the top-donor list.
func (a *Aggregator) TopN() int {
	return a.topN
}

// Run derives every view from records. records is not modified.
func (a *Aggregator) Run(records []models.DonationRecord) Result {
	donorYears := DonorYear(records)
	partyYears := PartyYear(donorYears)

	result := Result{
		Records:     records,
		DonorYears:  donorYears,
		PartyYears:  partyYears,
		AmountPivot: PartyPivot(partyYears, MetricAmount),
		DonorPivot:  PartyPivot(partyYears, MetricDonorCount),
		TopDonors:   TopDonors(records, a.topN),
		Recurring:   RecurringDonors(records),
		MultiParty:  MultiPartyDonors(records),
	}

	a.logger.Info("Aggregated donation records",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "donor_year_groups", Value: len(donorYears)},
		logging.Field{Key: "recurring_donors", Value: len(result.Recurring)},
		logging.Field{Key: "multi_party_donors", Value: len(result.MultiParty)})

	return result
}
