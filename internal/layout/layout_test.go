package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024, 2025, 2026}, set.Years())

	tests := []struct {
		year      int
		variant   Variant
		threshold int64
		hasOwner  bool
		amount    int
		date      int
	}{
		{year: 2023, variant: VariantThreshold, threshold: 10000, hasOwner: false, amount: 5, date: 6},
		{year: 2024, variant: VariantDetail, threshold: 1000, hasOwner: true, amount: 7, date: 8},
		{year: 2025, variant: VariantThreshold, threshold: 10000, hasOwner: true, amount: 6, date: 7},
		{year: 2026, variant: VariantThreshold, threshold: 10000, hasOwner: true, amount: 6, date: 7},
	}
	for _, tt := range tests {
		l, ok := set.Lookup(tt.year)
		require.True(t, ok, "layout %d", tt.year)
		assert.Equal(t, tt.variant, l.Variant)
		assert.Equal(t, tt.threshold, l.Threshold)
		assert.True(t, l.ThresholdAmount().Equal(decimal.NewFromInt(tt.threshold)))
		assert.Equal(t, tt.hasOwner, l.HasBeneficialOwner())
		assert.Equal(t, tt.amount, l.Columns.Amount)
		assert.Equal(t, tt.date, l.Columns.Date)
		assert.Contains(t, l.HeaderLabels, "Naam gever")
		assert.Contains(t, l.HeaderLabels, "Naam donateur")
	}

	_, ok := set.Lookup(2022)
	assert.False(t, ok)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	content := `
layouts:
  - year: 2027
    variant: threshold
    threshold: 10000
    header_labels: ["Naam donateur"]
    columns: {party: 0, sub_entity: 1, declared_total: 2, donor_name: 3, donor_address: 4,
              beneficial_owner_name: -1, beneficial_owner_city: -1, amount: 5, date: 6, note: -1}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	set, err := Load(path)
	require.NoError(t, err)
	l, ok := set.Lookup(2027)
	require.True(t, ok)
	assert.False(t, l.HasBeneficialOwner())
	assert.Equal(t, 5, l.Columns.Amount)
}

func TestParse_OmittedColumnsAreAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Columns
	}{
		{
			name: "partial column map",
			content: `layouts: [{year: 2027, variant: threshold, header_labels: [x],
  columns: {party: 0, sub_entity: 1, donor_name: 3, amount: 5}}]`,
			want: Columns{
				Party: 0, SubEntity: 1, DeclaredTotal: Absent, DonorName: 3, DonorAddress: Absent,
				OwnerName: Absent, OwnerCity: Absent, Amount: 5, Date: Absent, Note: Absent,
			},
		},
		{
			name:    "explicit zero is kept",
			content: `layouts: [{year: 2027, variant: threshold, header_labels: [x], columns: {party: 1, sub_entity: 2, donor_name: 3, amount: 4, note: 0}}]`,
			want: Columns{
				Party: 1, SubEntity: 2, DeclaredTotal: Absent, DonorName: 3, DonorAddress: Absent,
				OwnerName: Absent, OwnerCity: Absent, Amount: 4, Date: Absent, Note: 0,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			l, ok := set.Lookup(2027)
			require.True(t, ok)
			assert.Equal(t, tt.want, l.Columns)
			assert.False(t, l.HasBeneficialOwner())
		})
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	set, err := Load("")
	require.NoError(t, err)
	assert.Len(t, set.Years(), 4)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "unknown variant",
			content: `layouts: [{year: 2024, variant: fancy, header_labels: [x], columns: {party: 0, sub_entity: 1, donor_name: 3, amount: 7}}]`,
			errText: "unknown variant",
		},
		{
			name:    "missing amount column",
			content: `layouts: [{year: 2024, variant: detail, header_labels: [x], columns: {party: 0, sub_entity: 1, donor_name: 3, amount: -1}}]`,
			errText: "column amount is required",
		},
		{
			name: "duplicate year",
			content: `layouts:
  - {year: 2024, variant: detail, header_labels: [x], columns: {party: 0, sub_entity: 1, donor_name: 3, amount: 7}}
  - {year: 2024, variant: detail, header_labels: [x], columns: {party: 0, sub_entity: 1, donor_name: 3, amount: 7}}`,
			errText: "duplicate layout",
		},
		{
			name:    "no columns",
			content: `layouts: [{year: 2024, variant: detail, header_labels: [x]}]`,
			errText: "is required",
		},
		{
			name:    "no labels",
			content: `layouts: [{year: 2024, variant: detail, columns: {party: 0, sub_entity: 1, donor_name: 3, amount: 7}}]`,
			errText: "no header labels",
		},
		{
			name:    "malformed yaml",
			content: "layouts: [",
			errText: "failed to unmarshal layouts",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read layout file")
}
