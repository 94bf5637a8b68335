// Package batch reads every configured disclosure year and collects the
// records into one stream. A year that cannot be read contributes nothing;
// it never stops the other years.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/giften-csv/internal/fileutils"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/models"
	"fjacquet/giften-csv/internal/parser"
	"fjacquet/giften-csv/internal/parsererror"
	"fjacquet/giften-csv/internal/sheet"
)

// Source is one year's input file.
type Source struct {
	Year int
	Path string
}

// YearResult is what one source contributed. Err is set when the source was
// skipped; Records is then empty.
type YearResult struct {
	Year    int
	Path    string
	Records []models.DonationRecord
	Err     error
}

// Count returns the number of records the year contributed.
func (r YearResult) Count() int {
	return len(r.Records)
}

// Collector reads sources with a spreadsheet reader and hands each grid to
// the parser registered for its year.
type Collector struct {
	reader  sheet.Reader
	parsers map[int]parser.YearParser
	logger  logging.Logger
}

// NewCollector creates a Collector. If logger is nil, a default logger is used.
func NewCollector(reader sheet.Reader, parsers []parser.YearParser, logger logging.Logger) *Collector {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	byYear := make(map[int]parser.YearParser, len(parsers))
	for _, p := range parsers {
		byYear[p.Year()] = p
	}
	return &Collector{
		reader:  reader,
		parsers: byYear,
		logger:  logger,
	}
}

// Collect processes sources in order and concatenates their records in the
// same order.
func (c *Collector) Collect(sources []Source) ([]YearResult, []models.DonationRecord) {
	results := make([]YearResult, 0, len(sources))
	all := []models.DonationRecord{}
	var skipped []string

	for _, src := range sources {
		result := c.CollectYear(src)
		results = append(results, result)
		all = append(all, result.Records...)
		if result.Err != nil {
			skipped = append(skipped, filepath.Base(src.Path))
		}
	}

	c.logPotentialDuplicates(all)

	c.logger.Info("Collected donation records",
		logging.Field{Key: logging.FieldCount, Value: len(all)},
		logging.Field{Key: "sources", Value: len(sources)},
		logging.Field{Key: "skipped", Value: strings.Join(skipped, ", ")})

	return results, all
}

// CollectYear reads and parses one source. Failures are logged and reported
// in the result as a *parsererror.SourceError.
func (c *Collector) CollectYear(src Source) YearResult {
	result := YearResult{Year: src.Year, Path: src.Path, Records: []models.DonationRecord{}}
	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldYear, Value: src.Year},
		logging.Field{Key: logging.FieldFile, Value: src.Path})

	p, ok := c.parsers[src.Year]
	if !ok {
		result.Err = c.skip(log, src, fmt.Errorf("no layout configured for year %d", src.Year))
		return result
	}

	if !fileutils.FileExists(src.Path) {
		result.Err = c.skip(log, src, fmt.Errorf("input file missing: %w", os.ErrNotExist))
		return result
	}

	log.Debug("Reading disclosure sheet")
	grid, err := c.reader.Read(src.Path)
	if err != nil {
		result.Err = c.skip(log, src, err)
		return result
	}

	if sp, ok := p.(parser.SourceConfigurable); ok {
		sp.SetSource(src.Path)
	}
	result.Records = p.Parse(grid)
	return result
}

func (c *Collector) skip(log logging.Logger, src Source, cause error) error {
	err := &parsererror.SourceError{Year: src.Year, FilePath: src.Path, Err: cause}
	log.WithError(err).Warn("Skipping source, no records for this year")
	return err
}

// logPotentialDuplicates reports identical donation lines. They are kept:
// a donor may legitimately give the same amount twice on one day.
func (c *Collector) logPotentialDuplicates(records []models.DonationRecord) {
	type lineKey struct {
		key    models.DonorYearKey
		amount string
		date   string
	}

	seen := make(map[lineKey]bool, len(records))
	duplicates := 0
	for _, r := range records {
		k := lineKey{key: r.Key(), amount: r.Amount.String(), date: r.Date}
		if seen[k] {
			duplicates++
			c.logger.Debug("Potential duplicate donation line",
				logging.Field{Key: logging.FieldYear, Value: r.Year},
				logging.Field{Key: logging.FieldParty, Value: r.Party},
				logging.Field{Key: logging.FieldDonor, Value: r.DonorName},
				logging.Field{Key: "amount", Value: r.Amount.String()})
			continue
		}
		seen[k] = true
	}

	if duplicates > 0 {
		c.logger.Info("Found potential duplicate donation lines",
			logging.Field{Key: logging.FieldCount, Value: duplicates})
	}
}
