package common

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fjacquet/giften-csv/internal/sheet"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCell is returned when a numeric value is requested from an empty cell.
	ErrEmptyCell = errors.New("cell is empty")
	// ErrNotFinite is returned for NaN and infinite numeric cells.
	ErrNotFinite = errors.New("number is not finite")
)

// TextValue returns the trimmed text of a text-typed cell. Numeric and empty
// cells report false.
func TextValue(cell sheet.Cell) (string, bool) {
	if !cell.IsText() {
		return "", false
	}
	text := strings.TrimSpace(cell.Text)
	return text, text != ""
}

// StringValue renders any cell as trimmed text; empty cells yield "".
func StringValue(cell sheet.Cell) string {
	return strings.TrimSpace(cell.String())
}

// DecimalValue reads a euro amount. Numeric cells convert directly; text
// cells must hold a plain decimal number such as "1500" or "1500.50".
// NaN and infinities are rejected with ErrNotFinite.
func DecimalValue(cell sheet.Cell) (decimal.Decimal, error) {
	switch cell.Kind {
	case sheet.CellNumber:
		if math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrNotFinite, cell.Number)
		}
		return decimal.NewFromFloat(cell.Number), nil
	case sheet.CellText:
		return decimal.NewFromString(strings.TrimSpace(cell.Text))
	default:
		return decimal.Zero, ErrEmptyCell
	}
}
