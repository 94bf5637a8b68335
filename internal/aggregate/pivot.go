package aggregate

import (
	"sort"

	"fjacquet/giften-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Metric selects the value a party pivot shows.
type Metric int

const (
	// MetricAmount pivots the summed donation amounts.
	MetricAmount Metric = iota
	// MetricDonorCount pivots the number of distinct donors.
	MetricDonorCount
)

func (m Metric) String() string {
	if m == MetricDonorCount {
		return "donors"
	}
	return "amount"
}

// PivotRow is one party across all years.
type PivotRow struct {
	Party  string
	Values map[int]decimal.Decimal
	Total  decimal.Decimal
}

// Value returns the cell for year, zero when the party had nothing that year.
func (r PivotRow) Value(year int) decimal.Decimal {
	if v, ok := r.Values[year]; ok {
		return v
	}
	return decimal.Zero
}

// Pivot is a party × year table with a grand-total column.
type Pivot struct {
	Metric Metric
	Years  []int
	Rows   []PivotRow
}

// PartyPivot lays party-year totals out with one row per party and one
// column per year. Rows are ordered by grand total, highest first; equal
// totals are ordered by party name.
func PartyPivot(totals []models.PartyYearTotal, metric Metric) Pivot {
	index := make(map[string]int)
	yearSet := make(map[int]struct{})
	rows := []PivotRow{}

	for _, t := range totals {
		i, ok := index[t.Party]
		if !ok {
			i = len(rows)
			index[t.Party] = i
			rows = append(rows, PivotRow{
				Party:  t.Party,
				Values: make(map[int]decimal.Decimal),
				Total:  decimal.Zero,
			})
		}
		value := t.Total
		if metric == MetricDonorCount {
			value = decimal.NewFromInt(int64(t.DonorCount))
		}
		rows[i].Values[t.Year] = rows[i].Value(t.Year).Add(value)
		rows[i].Total = rows[i].Total.Add(value)
		yearSet[t.Year] = struct{}{}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if cmp := rows[i].Total.Cmp(rows[j].Total); cmp != 0 {
			return cmp > 0
		}
		return rows[i].Party < rows[j].Party
	})

	return Pivot{Metric: metric, Years: sortedInts(yearSet), Rows: rows}
}

// YearTotal sums one year column.
func (p Pivot) YearTotal(year int) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range p.Rows {
		sum = sum.Add(r.Value(year))
	}
	return sum
}

// GrandTotal sums the grand-total column.
func (p Pivot) GrandTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range p.Rows {
		sum = sum.Add(r.Total)
	}
	return sum
}
