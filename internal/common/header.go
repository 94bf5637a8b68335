package common

import (
	"strings"

	"fjacquet/giften-csv/internal/sheet"
)

// FindHeaderRow returns the index of the first row holding a text cell equal
// to one of labels. Disclosure exports start with an unpredictable number of
// title and blank rows, so the position is never assumed.
func FindHeaderRow(grid sheet.Grid, labels []string) (int, bool) {
	if len(labels) == 0 {
		return -1, false
	}
	wanted := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		wanted[strings.TrimSpace(l)] = struct{}{}
	}

	for i, row := range grid {
		for _, cell := range row {
			if !cell.IsText() {
				continue
			}
			if _, ok := wanted[strings.TrimSpace(cell.Text)]; ok {
				return i, true
			}
		}
	}
	return -1, false
}
