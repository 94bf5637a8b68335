// Package dateutils normalizes the date cells of disclosure spreadsheets.
package dateutils

import (
	"strings"

	"fjacquet/giften-csv/internal/sheet"

	"github.com/xuri/excelize/v2"
)

// DateLayoutISO is the output layout of every normalized date.
const DateLayoutISO = "2006-01-02"

// NormalizeText keeps the date portion of a textual date cell: everything
// before the first space, which drops a trailing time of day such as in
// "2024-03-01 00:00:00".
func NormalizeText(value string) string {
	value = strings.TrimSpace(value)
	if date, _, found := strings.Cut(value, " "); found {
		return date
	}
	return value
}

// NormalizeCell returns the normalized date of a cell. Text is cut at the
// first space; numbers are spreadsheet serial dates. Anything that cannot be
// read as a date yields "".
func NormalizeCell(cell sheet.Cell) string {
	switch cell.Kind {
	case sheet.CellText:
		return NormalizeText(cell.Text)
	case sheet.CellNumber:
		return fromSerial(cell.Number)
	default:
		return ""
	}
}

func fromSerial(serial float64) string {
	if serial <= 0 {
		return ""
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return ""
	}
	return t.Format(DateLayoutISO)
}
