package sheet

import (
	"path/filepath"
	"strings"

	"fjacquet/giften-csv/internal/parsererror"
)

// Reader loads the first worksheet of a spreadsheet file.
type Reader interface {
	Read(path string) (Grid, error)
}

// AutoReader picks a reader from the file extension.
type AutoReader struct {
	XLSX Reader
	ODS  Reader
}

// NewAutoReader returns an AutoReader backed by the excelize and ODS readers.
func NewAutoReader() *AutoReader {
	return &AutoReader{
		XLSX: NewXLSXReader(),
		ODS:  NewODSReader(),
	}
}

// Read implements Reader.
func (a *AutoReader) Read(path string) (Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return a.XLSX.Read(path)
	case ".ods":
		return a.ODS.Read(path)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".xlsx, .xlsm or .ods",
			Msg:            "unsupported spreadsheet extension",
		}
	}
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(path string) (Grid, error)

func (f ReaderFunc) Read(path string) (Grid, error) {
	return f(path)
}
