// Package validation checks user supplied paths and options before any work
// starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SpreadsheetExtensions are the input formats the readers understand.
var SpreadsheetExtensions = []string{".ods", ".xlsx", ".xlsm"}

// IsValidSpreadsheet checks that path is an existing regular file with a
// supported extension. A missing file wraps os.ErrNotExist.
func IsValidSpreadsheet(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("spreadsheet %s: %w", path, os.ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SpreadsheetExtensions {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported spreadsheet extension %q. Supported extensions are %s",
		ext, strings.Join(SpreadsheetExtensions, ", "))
}

// IsValidOutputPath checks that path does not name a directory.
func IsValidOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("output path is empty")
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'text', 'json'", format)
	}
}
