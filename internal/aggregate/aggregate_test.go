package aggregate

import (
	"testing"

	"fjacquet/giften-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(year int, party, donor string, amount int64) models.DonationRecord {
	return models.DonationRecord{
		Year:      year,
		Party:     party,
		DonorName: donor,
		Amount:    decimal.NewFromInt(amount),
	}
}

func amountOf(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDonorYear_SumsAndCounts(t *testing.T) {
	records := []models.DonationRecord{
		rec(2024, "B", "Donor 1", 1000),
		rec(2024, "A", "Donor 2", 1500),
		rec(2024, "B", "Donor 1", 2500),
		rec(2023, "B", "Donor 1", 12000),
	}

	summaries := DonorYear(records)
	require.Len(t, summaries, 3)

	assert.Equal(t, 2023, summaries[0].Year)
	assert.Equal(t, "A", summaries[1].Party)
	assert.Equal(t, "B", summaries[2].Party)
	assert.True(t, amountOf(3500).Equal(summaries[2].TotalAmount))
	assert.Equal(t, 2, summaries[2].DonationCount)
}

func TestDonorYear_TotalEqualsSumOfMembers(t *testing.T) {
	records := []models.DonationRecord{
		rec(2024, "X", "Y", 1500),
		rec(2024, "X", "Y", 1250),
		rec(2024, "X", "Z", 4000),
		rec(2025, "X", "Y", 10000),
	}
	records[1].Amount = decimal.RequireFromString("1250.25")

	for _, s := range DonorYear(records) {
		sum := decimal.Zero
		for _, r := range records {
			if r.Key() == (models.DonorYearKey{Year: s.Year, Party: s.Party, DonorName: s.DonorName}) {
				sum = sum.Add(r.Amount)
			}
		}
		assert.True(t, sum.Equal(s.TotalAmount), "%d/%s/%s: %s != %s", s.Year, s.Party, s.DonorName, sum, s.TotalAmount)
	}
}

func TestDonorYear_FirstNonEmptyFields(t *testing.T) {
	first := rec(2024, "X", "Y", 1000)
	second := rec(2024, "X", "Y", 1000)
	second.DonorAddress = "Utrecht"
	second.BeneficialOwnerName = "UBO"
	second.SubEntity = "Stichting"
	third := rec(2024, "X", "Y", 1000)
	third.DonorAddress = "Leiden"
	third.SubEntity = "Bureau"

	summaries := DonorYear([]models.DonationRecord{first, second, third})
	require.Len(t, summaries, 1)
	assert.Equal(t, "Utrecht", summaries[0].Address)
	assert.Equal(t, "UBO", summaries[0].BeneficialOwnerName)
	assert.Equal(t, "Stichting", summaries[0].SubEntity)
}

func TestPartyYear_DistinctDonors(t *testing.T) {
	summaries := DonorYear([]models.DonationRecord{
		rec(2024, "X", "Y", 1000),
		rec(2024, "X", "Y", 2000),
		rec(2024, "X", "Z", 500),
		rec(2025, "X", "Y", 10000),
	})

	totals := PartyYear(summaries)
	require.Len(t, totals, 2)
	assert.Equal(t, 2024, totals[0].Year)
	assert.True(t, amountOf(3500).Equal(totals[0].Total))
	assert.Equal(t, 2, totals[0].DonorCount)
	assert.Equal(t, 1, totals[1].DonorCount)
}

func TestProfiles_FirstSeenAddressAndSortedSets(t *testing.T) {
	a := rec(2025, "B", "Y", 1000)
	b := rec(2023, "A", "Y", 1000)
	b.DonorAddress = "Later"
	b.BeneficialOwnerName = "Later UBO"

	profiles := Profiles([]models.DonationRecord{a, b})
	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "", p.Address, "first seen, even when empty")
	assert.Equal(t, "", p.BeneficialOwner)
	assert.Equal(t, []string{"A", "B"}, p.Parties)
	assert.Equal(t, []int{2023, 2025}, p.Years)
	assert.Equal(t, 2, p.DonationCount)
	assert.Equal(t, "A, B", p.PartiesLabel())
	assert.Equal(t, "2023, 2025", p.YearsLabel())
}

func TestTopDonors_OrderAndLimit(t *testing.T) {
	records := []models.DonationRecord{
		rec(2024, "X", "Small", 1000),
		rec(2024, "X", "TieFirst", 5000),
		rec(2024, "X", "Big", 9000),
		rec(2024, "X", "TieSecond", 5000),
	}

	top := TopDonors(records, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "Big", top[0].DonorName)
	assert.Equal(t, "TieFirst", top[1].DonorName, "equal totals keep first-seen order")
	assert.Equal(t, "TieSecond", top[2].DonorName)

	assert.Len(t, TopDonors(records, DefaultTopN), 4)
}

func TestRecurringDonors(t *testing.T) {
	records := []models.DonationRecord{
		rec(2023, "A", "Twice", 10000),
		rec(2024, "A", "Twice", 2000),
		rec(2024, "A", "Once", 50000),
		rec(2024, "B", "Once", 1000),
	}

	recurring := RecurringDonors(records)
	require.Len(t, recurring, 1)
	assert.Equal(t, "Twice", recurring[0].DonorName)
	assert.Equal(t, 2, recurring[0].YearCount())
	assert.Equal(t, []int{2023, 2024}, recurring[0].Years)

	for _, p := range recurring {
		assert.NotEqual(t, 1, p.YearCount())
	}
}

func TestMultiPartyDonors(t *testing.T) {
	records := []models.DonationRecord{
		rec(2023, "A", "Loyal", 90000),
		rec(2024, "A", "Loyal", 10000),
		rec(2024, "A", "Spread", 1000),
		rec(2025, "B", "Spread", 10000),
		rec(2025, "C", "Wide", 30000),
		rec(2025, "A", "Wide", 30000),
	}

	multi := MultiPartyDonors(records)
	require.Len(t, multi, 2)
	assert.Equal(t, "Wide", multi[0].DonorName)
	assert.Equal(t, "Spread", multi[1].DonorName)
	for _, p := range multi {
		assert.NotEqual(t, "Loyal", p.DonorName)
	}
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, DonorYear(nil))
	assert.Empty(t, PartyYear(nil))
	assert.Empty(t, TopDonors(nil, DefaultTopN))
	assert.Empty(t, RecurringDonors(nil))
	assert.Empty(t, MultiPartyDonors(nil))
	assert.Empty(t, PartyPivot(nil, MetricAmount).Rows)
}

func TestDeterministic(t *testing.T) {
	records := []models.DonationRecord{
		rec(2023, "A", "D1", 10000),
		rec(2024, "B", "D2", 10000),
		rec(2025, "A", "D2", 10000),
		rec(2026, "C", "D3", 10000),
	}
	assert.Equal(t, TopDonors(records, 30), TopDonors(records, 30))
	assert.Equal(t, DonorYear(records), DonorYear(records))
}
