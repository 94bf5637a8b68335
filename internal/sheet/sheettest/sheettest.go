// Package sheettest writes spreadsheet fixtures for tests.
package sheettest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes rows to the first sheet of a new workbook at path. Nil
// values leave the cell empty.
func WriteXLSX(t testing.TB, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			if value == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, value))
		}
	}
	require.NoError(t, f.SaveAs(path))
}
