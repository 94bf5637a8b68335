package sheet

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/giften-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const odsContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:spreadsheet>
<table:table table:name="Giften">
<table:table-row><table:table-cell office:value-type="string"><text:p>Overzicht giften</text:p></table:table-cell></table:table-row>
<table:table-row table:number-rows-repeated="3"><table:table-cell table:number-columns-repeated="5"/></table:table-row>
<table:table-row><table:table-cell office:value-type="string"><text:p>Politieke partij</text:p></table:table-cell><table:table-cell table:number-columns-repeated="2"/><table:table-cell office:value-type="string"><text:p>Naam gever</text:p></table:table-cell></table:table-row>
<table:table-row><table:table-cell office:value-type="string"><text:p>X</text:p></table:table-cell><table:table-cell/><table:table-cell office:value-type="float" office:value="2500"><text:p>2.500</text:p></table:table-cell><table:table-cell office:value-type="string"><text:p>Y</text:p></table:table-cell><table:table-cell office:value-type="date" office:date-value="2024-03-01"><text:p>01-03-24</text:p></table:table-cell><table:table-cell table:number-columns-repeated="1000"/></table:table-row>
</table:table>
<table:table table:name="Other"><table:table-row><table:table-cell office:value-type="string"><text:p>ignored</text:p></table:table-cell></table:table-row></table:table>
</office:spreadsheet></office:body></office:document-content>`

// odsDocument wraps table rows in a single-table content.xml.
func odsDocument(rows string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<office:body><office:spreadsheet><table:table table:name="Giften">` + rows + `</table:table></office:spreadsheet></office:body></office:document-content>`
}

func writeODS(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "giften.ods")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/vnd.oasis.opendocument.spreadsheet"))
	require.NoError(t, err)
	w, err = zw.Create("content.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestODSReader_Read(t *testing.T) {
	path := writeODS(t, odsContent)

	grid, err := NewODSReader().Read(path)
	require.NoError(t, err)
	require.Equal(t, 4, grid.Rows())

	assert.Equal(t, Text("Overzicht giften"), grid.Cell(0, 0))
	assert.True(t, grid.IsBlankRow(1), "repeated blank rows collapse to one")
	assert.Equal(t, Text("Naam gever"), grid.Cell(2, 3))
	assert.True(t, grid.Cell(2, 1).IsEmpty())

	assert.Equal(t, Text("X"), grid.Cell(3, 0))
	assert.Equal(t, Number(2500), grid.Cell(3, 2))
	assert.Equal(t, Text("Y"), grid.Cell(3, 3))
	assert.Equal(t, Text("2024-03-01 00:00:00"), grid.Cell(3, 4))
	assert.Len(t, grid[3], 5, "trailing empty cells are dropped")
}

func TestODSReader_CellText(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want Cell
	}{
		{
			name: "annotation is not part of the value",
			cell: `<table:table-cell office:value-type="string"><office:annotation><dc:creator>Ed</dc:creator><text:p>check spelling</text:p></office:annotation><text:p>Y</text:p></table:table-cell>`,
			want: Text("Y"),
		},
		{
			name: "annotation only",
			cell: `<table:table-cell><office:annotation><text:p>leeg</text:p></office:annotation></table:table-cell>`,
			want: Empty(),
		},
		{
			name: "repeated spaces",
			cell: `<table:table-cell office:value-type="string"><text:p>De<text:s text:c="2"/>Vries</text:p></table:table-cell>`,
			want: Text("De  Vries"),
		},
		{
			name: "single space",
			cell: `<table:table-cell office:value-type="string"><text:p>Van<text:s/>Dam</text:p></table:table-cell>`,
			want: Text("Van Dam"),
		},
		{
			name: "paragraphs joined by newline",
			cell: `<table:table-cell office:value-type="string"><text:p>Stationsweg 1</text:p><text:p>Utrecht</text:p></table:table-cell>`,
			want: Text("Stationsweg 1\nUtrecht"),
		},
		{
			name: "span and link content",
			cell: `<table:table-cell office:value-type="string"><text:p><text:span>Stichting</text:span> <text:a>Vrienden</text:a></text:p></table:table-cell>`,
			want: Text("Stichting Vrienden"),
		},
		{
			name: "nan float falls back to display text",
			cell: `<table:table-cell office:value-type="float" office:value="NaN"><text:p>#WAARDE!</text:p></table:table-cell>`,
			want: Text("#WAARDE!"),
		},
		{
			name: "infinite float falls back to display text",
			cell: `<table:table-cell office:value-type="currency" office:value="+Inf"><text:p>Inf</text:p></table:table-cell>`,
			want: Text("Inf"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeODS(t, odsDocument(`<table:table-row>`+tt.cell+`<table:table-cell office:value-type="string"><text:p>next</text:p></table:table-cell></table:table-row>`))

			grid, err := NewODSReader().Read(path)
			require.NoError(t, err)
			require.Equal(t, 1, grid.Rows())
			assert.Equal(t, tt.want, grid.Cell(0, 0))
			assert.Equal(t, Text("next"), grid.Cell(0, 1))
		})
	}
}

func TestODSReader_MissingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ods")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("mimetype")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = NewODSReader().Read(path)
	assert.ErrorContains(t, err, "content.xml not found")
}

func TestODSDateText(t *testing.T) {
	assert.Equal(t, "2024-03-01 00:00:00", odsDateText("2024-03-01"))
	assert.Equal(t, "2024-03-01 13:45:00", odsDateText("2024-03-01T13:45:00"))
}

func TestXLSXReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "giften.xlsx")
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Giften 2024"))
	require.NoError(t, f.SetCellValue(sheetName, "A3", "Politieke partij"))
	require.NoError(t, f.SetCellValue(sheetName, "D3", "Naam gever"))
	require.NoError(t, f.SetCellValue(sheetName, "A4", "X"))
	require.NoError(t, f.SetCellValue(sheetName, "C4", 2500))
	require.NoError(t, f.SetCellValue(sheetName, "D4", "1500"))
	require.NoError(t, f.SetCellValue(sheetName, "H4", 1234.5))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	grid, err := NewXLSXReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, Text("Giften 2024"), grid.Cell(0, 0))
	assert.True(t, grid.IsBlankRow(1))
	assert.Equal(t, Text("Naam gever"), grid.Cell(2, 3))
	assert.Equal(t, Text("X"), grid.Cell(3, 0))
	assert.Equal(t, Number(2500), grid.Cell(3, 2))
	assert.Equal(t, Text("1500"), grid.Cell(3, 3), "string cells stay text even when numeric-looking")
	assert.Equal(t, Number(1234.5), grid.Cell(3, 7))
}

func TestClassifyXLSX(t *testing.T) {
	tests := []struct {
		name     string
		cellType excelize.CellType
		value    string
		want     Cell
	}{
		{name: "number", cellType: excelize.CellTypeNumber, value: "2500", want: Number(2500)},
		{name: "untyped number", cellType: excelize.CellTypeUnset, value: " 12.5 ", want: Number(12.5)},
		{name: "nan stays text", cellType: excelize.CellTypeUnset, value: "NaN", want: Text("NaN")},
		{name: "infinity stays text", cellType: excelize.CellTypeNumber, value: "+Inf", want: Text("+Inf")},
		{name: "shared string", cellType: excelize.CellTypeSharedString, value: "1500", want: Text("1500")},
		{name: "blank", cellType: excelize.CellTypeUnset, value: "  ", want: Empty()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyXLSX(tt.cellType, tt.value))
		})
	}
}

func TestAutoReader(t *testing.T) {
	var seen []string
	fake := ReaderFunc(func(path string) (Grid, error) {
		seen = append(seen, path)
		return Grid{{Text("ok")}}, nil
	})
	reader := &AutoReader{XLSX: fake, ODS: fake}

	_, err := reader.Read("data/giften_2024.ODS")
	require.NoError(t, err)
	_, err = reader.Read("data/giften_2024.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"data/giften_2024.ODS", "data/giften_2024.xlsx"}, seen)

	_, err = reader.Read("data/giften_2024.csv")
	var formatErr *parsererror.InvalidFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestAutoReader_MissingFile(t *testing.T) {
	_, err := NewAutoReader().Read(filepath.Join(t.TempDir(), "giften_2026.ods"))
	assert.Error(t, err)
}
