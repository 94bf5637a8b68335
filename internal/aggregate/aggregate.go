// Package aggregate derives the summary views from the normalized donation
// stream. Every function is pure and keeps the input order wherever an
// order-dependent rule ("first address seen", stable tie-breaks) applies.
package aggregate

import (
	"sort"

	"fjacquet/giften-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopN is the length of the top-donor list.
const DefaultTopN = 30

// DonorYear groups records by (year, party, donor). Address, beneficial
// owner and sub-entity are the first non-empty values in record order. The
// result is sorted by year, party and donor name.
func DonorYear(records []models.DonationRecord) []models.DonorYearSummary {
	index := make(map[models.DonorYearKey]int)
	summaries := []models.DonorYearSummary{}

	for _, r := range records {
		key := r.Key()
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, models.DonorYearSummary{
				Year:        r.Year,
				Party:       r.Party,
				DonorName:   r.DonorName,
				TotalAmount: decimal.Zero,
			})
		}
		s := &summaries[i]
		s.TotalAmount = s.TotalAmount.Add(r.Amount)
		s.DonationCount++
		if s.Address == "" {
			s.Address = r.DonorAddress
		}
		if s.BeneficialOwnerName == "" {
			s.BeneficialOwnerName = r.BeneficialOwnerName
		}
		if s.SubEntity == "" {
			s.SubEntity = r.SubEntity
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Party != b.Party {
			return a.Party < b.Party
		}
		return a.DonorName < b.DonorName
	})
	return summaries
}

// PartyYear sums donor-year summaries per (year, party) and counts the
// distinct donors. The result is sorted by year, then party.
func PartyYear(summaries []models.DonorYearSummary) []models.PartyYearTotal {
	type partyKey struct {
		year  int
		party string
	}

	index := make(map[partyKey]int)
	donors := make(map[partyKey]map[string]struct{})
	totals := []models.PartyYearTotal{}

	for _, s := range summaries {
		key := partyKey{year: s.Year, party: s.Party}
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			donors[key] = make(map[string]struct{})
			totals = append(totals, models.PartyYearTotal{Year: s.Year, Party: s.Party, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(s.TotalAmount)
		donors[key][s.DonorName] = struct{}{}
		totals[i].DonorCount = len(donors[key])
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Year != totals[j].Year {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Party < totals[j].Party
	})
	return totals
}

// Profiles groups records by donor name alone, in first-seen order. Name
// equality is the only notion of donor identity.
func Profiles(records []models.DonationRecord) []models.DonorProfile {
	index := make(map[string]int)
	profiles := []models.DonorProfile{}
	parties := []map[string]struct{}{}
	years := []map[int]struct{}{}

	for _, r := range records {
		i, ok := index[r.DonorName]
		if !ok {
			i = len(profiles)
			index[r.DonorName] = i
			profiles = append(profiles, models.DonorProfile{
				DonorName:       r.DonorName,
				Total:           decimal.Zero,
				Address:         r.DonorAddress,
				BeneficialOwner: r.BeneficialOwnerName,
			})
			parties = append(parties, make(map[string]struct{}))
			years = append(years, make(map[int]struct{}))
		}
		p := &profiles[i]
		p.Total = p.Total.Add(r.Amount)
		p.DonationCount++
		parties[i][r.Party] = struct{}{}
		years[i][r.Year] = struct{}{}
	}

	for i := range profiles {
		profiles[i].Parties = sortedStrings(parties[i])
		profiles[i].Years = sortedInts(years[i])
	}
	return profiles
}

// TopDonors returns the n donors with the highest total across all years and
// parties. Equal totals keep first-seen order.
func TopDonors(records []models.DonationRecord, n int) []models.DonorProfile {
	profiles := byTotalDesc(Profiles(records))
	if n >= 0 && len(profiles) > n {
		profiles = profiles[:n]
	}
	return profiles
}

// RecurringDonors returns donors that gave in more than one year, highest
// total first.
func RecurringDonors(records []models.DonationRecord) []models.DonorProfile {
	return byTotalDesc(filterProfiles(Profiles(records), func(p models.DonorProfile) bool {
		return p.YearCount() > 1
	}))
}

// MultiPartyDonors returns donors that gave to more than one party, highest
// total first.
func MultiPartyDonors(records []models.DonationRecord) []models.DonorProfile {
	return byTotalDesc(filterProfiles(Profiles(records), func(p models.DonorProfile) bool {
		return p.PartyCount() > 1
	}))
}

func filterProfiles(profiles []models.DonorProfile, keep func(models.DonorProfile) bool) []models.DonorProfile {
	out := []models.DonorProfile{}
	for _, p := range profiles {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func byTotalDesc(profiles []models.DonorProfile) []models.DonorProfile {
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Total.GreaterThan(profiles[j].Total)
	})
	return profiles
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
