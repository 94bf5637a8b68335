package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads Office Open XML workbooks with excelize.
type XLSXReader struct{}

// NewXLSXReader returns an XLSXReader.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read returns the first worksheet of the workbook at path. Cell values are
// read raw so numbers keep full precision and date cells stay serial numbers.
func (r *XLSXReader) Read(path string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, value := range row {
			if strings.TrimSpace(value) == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			cellType, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", axis, err)
			}
			cells[j] = classifyXLSX(cellType, value)
		}
		grid[i] = cells
	}
	return grid, nil
}

// classifyXLSX maps an excelize cell type and raw value to a Cell. Numeric
// cells usually carry no explicit type, so untyped values are numbers when
// they parse as one.
func classifyXLSX(cellType excelize.CellType, value string) Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		return Text(value)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Number(n)
	}
	return Text(value)
}
