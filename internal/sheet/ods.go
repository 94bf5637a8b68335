package sheet

import (
	"archive/zip"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/xmlpath.v2"
)

// maxRepeat bounds number-columns-repeated / number-rows-repeated expansion
// for non-empty cells and rows.
const maxRepeat = 1024

var (
	odsTablePath  = xmlpath.MustCompile("/document-content/body/spreadsheet/table")
	odsRowPath    = xmlpath.MustCompile("/document-content/body/spreadsheet/table[1]//table-row")
	odsCellPath   = xmlpath.MustCompile("*")
	odsValueType  = xmlpath.MustCompile("@value-type")
	odsValue      = xmlpath.MustCompile("@value")
	odsDateValue  = xmlpath.MustCompile("@date-value")
	odsColsRepeat = xmlpath.MustCompile("@number-columns-repeated")
	odsRowsRepeat = xmlpath.MustCompile("@number-rows-repeated")

	// Cell text is read from the direct text:p children only, so a cell
	// comment (office:annotation) never leaks into the value.
	odsParagraphs = xmlpath.MustCompile("p")
	odsInline     = xmlpath.MustCompile("node()")
	odsIsText     = xmlpath.MustCompile("self::text()")
	odsIsComment  = xmlpath.MustCompile("self::comment()")
	odsIsSpace    = xmlpath.MustCompile("self::s")
	odsIsTab      = xmlpath.MustCompile("self::tab")
	odsIsBreak    = xmlpath.MustCompile("self::line-break")
	odsIsNote     = xmlpath.MustCompile("self::annotation")
	odsSpaceCount = xmlpath.MustCompile("@c")
)

// ODSReader reads OpenDocument spreadsheets. The disclosures are published
// as .ods, which excelize does not open, so content.xml is walked with
// xmlpath.
type ODSReader struct{}

// NewODSReader returns an ODSReader.
func NewODSReader() *ODSReader {
	return &ODSReader{}
}

// Read returns the first table of the document at path.
func (r *ODSReader) Read(path string) (Grid, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ods archive: %w", err)
	}
	defer archive.Close()

	var content *zip.File
	for _, f := range archive.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("content.xml not found in %s", path)
	}

	rc, err := content.Open()
	if err != nil {
		return nil, fmt.Errorf("opening content.xml: %w", err)
	}
	defer rc.Close()

	root, err := xmlpath.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing content.xml: %w", err)
	}

	if !odsTablePath.Exists(root) {
		return nil, fmt.Errorf("no table found in %s", path)
	}
	return readODSTable(root), nil
}

// readODSTable walks the rows of the first table, including rows nested in
// header-row and row-group elements.
func readODSTable(root *xmlpath.Node) Grid {
	var grid Grid
	rows := odsRowPath.Iter(root)
	for rows.Next() {
		rowNode := rows.Node()
		cells := readODSRow(rowNode)
		repeat := repeatCount(odsRowsRepeat, rowNode)

		if len(cells) == 0 {
			// Runs of blank rows carry no data for a forward-fill walk.
			grid = append(grid, nil)
			continue
		}
		for i := 0; i < repeat && i < maxRepeat; i++ {
			row := make([]Cell, len(cells))
			copy(row, cells)
			grid = append(grid, row)
		}
	}
	return grid
}

func readODSRow(rowNode *xmlpath.Node) []Cell {
	var (
		cells   []Cell
		pending int
	)
	iter := odsCellPath.Iter(rowNode)
	for iter.Next() {
		node := iter.Node()
		cell := readODSCell(node)
		repeat := repeatCount(odsColsRepeat, node)

		if cell.IsEmpty() {
			pending += repeat
			continue
		}
		for ; pending > 0; pending-- {
			cells = append(cells, Cell{})
		}
		for i := 0; i < repeat && i < maxRepeat; i++ {
			cells = append(cells, cell)
		}
	}
	return cells
}

func readODSCell(node *xmlpath.Node) Cell {
	valueType, _ := odsValueType.String(node)
	switch valueType {
	case "float", "currency", "percentage":
		if raw, ok := odsValue.String(node); ok {
			n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				return Number(n)
			}
		}
		return Text(odsCellText(node))
	case "date":
		if raw, ok := odsDateValue.String(node); ok {
			return Text(odsDateText(raw))
		}
		return Text(odsCellText(node))
	default:
		return Text(odsCellText(node))
	}
}

// odsCellText renders the cell's paragraphs as the spreadsheet displays
// them: text:s expands to spaces and paragraphs are joined with newlines.
func odsCellText(cell *xmlpath.Node) string {
	var paragraphs []string
	iter := odsParagraphs.Iter(cell)
	for iter.Next() {
		var b strings.Builder
		writeODSInline(&b, iter.Node())
		paragraphs = append(paragraphs, b.String())
	}
	return strings.Join(paragraphs, "\n")
}

func writeODSInline(b *strings.Builder, node *xmlpath.Node) {
	iter := odsInline.Iter(node)
	for iter.Next() {
		child := iter.Node()
		switch {
		case odsIsText.Exists(child):
			b.WriteString(child.String())
		case odsIsComment.Exists(child), odsIsNote.Exists(child):
		case odsIsSpace.Exists(child):
			b.WriteString(strings.Repeat(" ", min(repeatCount(odsSpaceCount, child), maxRepeat)))
		case odsIsTab.Exists(child):
			b.WriteByte('\t')
		case odsIsBreak.Exists(child):
			b.WriteByte('\n')
		default:
			// text:span, text:a and other inline wrappers
			writeODSInline(b, child)
		}
	}
}

// odsDateText renders an office:date-value as "YYYY-MM-DD hh:mm:ss", the
// textual form a date-with-time cell has in the exports.
func odsDateText(raw string) string {
	raw = strings.TrimSpace(raw)
	if date, clock, ok := strings.Cut(raw, "T"); ok {
		return date + " " + clock
	}
	return raw + " 00:00:00"
}

func repeatCount(path *xmlpath.Path, node *xmlpath.Node) int {
	raw, ok := path.String(node)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
