// Package layout describes where each disclosure year keeps its columns.
// A Layout is selected once per file; the row walkers only ever read
// columns through it.
package layout

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var defaultLayouts []byte

// Variant selects the row walker for a year.
type Variant string

const (
	// VariantDetail is the itemized 2024 export (threshold 1000 EUR).
	VariantDetail Variant = "detail"
	// VariantThreshold is the 10000 EUR export used for 2023, 2025 and 2026.
	VariantThreshold Variant = "threshold"
)

// Absent marks a column a year does not publish.
const Absent = -1

// Columns maps logical fields to zero-based column indexes.
type Columns struct {
	Party         int `yaml:"party"`
	SubEntity     int `yaml:"sub_entity"`
	DeclaredTotal int `yaml:"declared_total"`
	DonorName     int `yaml:"donor_name"`
	DonorAddress  int `yaml:"donor_address"`
	OwnerName     int `yaml:"beneficial_owner_name"`
	OwnerCity     int `yaml:"beneficial_owner_city"`
	Amount        int `yaml:"amount"`
	Date          int `yaml:"date"`
	Note          int `yaml:"note"`
}

// AbsentColumns returns a Columns value with every field set to Absent.
func AbsentColumns() Columns {
	return Columns{
		Party:         Absent,
		SubEntity:     Absent,
		DeclaredTotal: Absent,
		DonorName:     Absent,
		DonorAddress:  Absent,
		OwnerName:     Absent,
		OwnerCity:     Absent,
		Amount:        Absent,
		Date:          Absent,
		Note:          Absent,
	}
}

// Layout is the configuration record for one disclosure year.
type Layout struct {
	Year         int      `yaml:"year"`
	Variant      Variant  `yaml:"variant"`
	Threshold    int64    `yaml:"threshold"`
	HeaderLabels []string `yaml:"header_labels"`
	Columns      Columns  `yaml:"columns"`
}

// UnmarshalYAML decodes a layout whose omitted column keys stay Absent
// rather than pointing at column 0.
func (l *Layout) UnmarshalYAML(value *yaml.Node) error {
	type plain Layout
	p := plain{Columns: AbsentColumns()}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*l = Layout(p)
	return nil
}

// HasBeneficialOwner reports whether the year publishes a UBO column.
func (l Layout) HasBeneficialOwner() bool {
	return l.Columns.OwnerName != Absent
}

// ThresholdAmount is the disclosure threshold in euros. It is informational:
// the walkers never filter on it.
func (l Layout) ThresholdAmount() decimal.Decimal {
	return decimal.NewFromInt(l.Threshold)
}

// Validate checks the layout for structural mistakes.
func (l Layout) Validate() error {
	if l.Year <= 0 {
		return fmt.Errorf("layout has invalid year %d", l.Year)
	}
	if l.Variant != VariantDetail && l.Variant != VariantThreshold {
		return fmt.Errorf("layout %d: unknown variant %q", l.Year, l.Variant)
	}
	if len(l.HeaderLabels) == 0 {
		return fmt.Errorf("layout %d: no header labels", l.Year)
	}
	required := map[string]int{
		"party":      l.Columns.Party,
		"sub_entity": l.Columns.SubEntity,
		"donor_name": l.Columns.DonorName,
		"amount":     l.Columns.Amount,
	}
	for name, idx := range required {
		if idx < 0 {
			return fmt.Errorf("layout %d: column %s is required", l.Year, name)
		}
	}
	return nil
}

// Set is a collection of layouts keyed by year.
type Set struct {
	byYear map[int]Layout
}

type layoutFile struct {
	Layouts []Layout `yaml:"layouts"`
}

// Default returns the layouts embedded in the binary.
func Default() (*Set, error) {
	return Parse(defaultLayouts)
}

// Load reads layouts from path. An empty path returns the embedded defaults.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) // #nosec G304 -- layout override is user supplied
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML layout document.
func Parse(data []byte) (*Set, error) {
	var file layoutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layouts: %w", err)
	}
	set := &Set{byYear: make(map[int]Layout, len(file.Layouts))}
	for _, l := range file.Layouts {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := set.byYear[l.Year]; dup {
			return nil, fmt.Errorf("duplicate layout for year %d", l.Year)
		}
		set.byYear[l.Year] = l
	}
	return set, nil
}

// Lookup returns the layout for year.
func (s *Set) Lookup(year int) (Layout, bool) {
	l, ok := s.byYear[year]
	return l, ok
}

// Years returns the configured years in ascending order.
func (s *Set) Years() []int {
	years := make([]int, 0, len(s.byYear))
	for y := range s.byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
