// Package container provides dependency injection for giften-csv.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"

	"fjacquet/giften-csv/internal/aggregate"
	"fjacquet/giften-csv/internal/batch"
	"fjacquet/giften-csv/internal/config"
	"fjacquet/giften-csv/internal/detailparser"
	"fjacquet/giften-csv/internal/layout"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/parser"
	"fjacquet/giften-csv/internal/report"
	"fjacquet/giften-csv/internal/sheet"
	"fjacquet/giften-csv/internal/thresholdparser"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation; dependencies are only reachable through getters.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	layouts *layout.Set
	reader  sheet.Reader

	// Parser registry keyed by disclosure year
	parsers map[int]parser.FullParser

	collector  *batch.Collector
	aggregator *aggregate.Aggregator
}

// NewContainer creates and wires all application dependencies with a logger
// built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	layouts, err := layout.Load(cfg.Layouts.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load layouts: %w", err)
	}

	parsers := make(map[int]parser.FullParser)
	yearParsers := make([]parser.YearParser, 0, len(layouts.Years()))
	for _, year := range layouts.Years() {
		l, _ := layouts.Lookup(year)
		p, err := NewParser(l, logger)
		if err != nil {
			return nil, err
		}
		parsers[year] = p
		yearParsers = append(yearParsers, p)
	}

	reader := sheet.NewAutoReader()

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "parsers_count", Value: len(parsers)},
		logging.Field{Key: "layouts_file", Value: cfg.Layouts.File})

	return &Container{
		logger:     logger,
		config:     cfg,
		layouts:    layouts,
		reader:     reader,
		parsers:    parsers,
		collector:  batch.NewCollector(reader, yearParsers, logger),
		aggregator: aggregate.NewAggregator(cfg.Report.TopN, logger),
	}, nil
}

// NewParser returns the row walker for a layout's variant.
func NewParser(l layout.Layout, logger logging.Logger) (parser.FullParser, error) {
	switch l.Variant {
	case layout.VariantDetail:
		return detailparser.NewParser(l, logger), nil
	case layout.VariantThreshold:
		return thresholdparser.NewParser(l, logger), nil
	default:
		return nil, fmt.Errorf("unknown layout variant %q for year %d", l.Variant, l.Year)
	}
}

// GetParser returns the parser for a disclosure year.
func (c *Container) GetParser(year int) (parser.FullParser, error) {
	p, ok := c.parsers[year]
	if !ok {
		return nil, fmt.Errorf("no parser for year %d", year)
	}
	return p, nil
}

// GetParsers returns a copy of the parser registry.
func (c *Container) GetParsers() map[int]parser.FullParser {
	result := make(map[int]parser.FullParser, len(c.parsers))
	for k, v := range c.parsers {
		result[k] = v
	}
	return result
}

// Sources returns the configured inputs as batch sources, ordered by year.
func (c *Container) Sources() []batch.Source {
	files := c.config.SourceFiles()
	sources := make([]batch.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, batch.Source{Year: f.Year, Path: f.Path})
	}
	return sources
}

// OutputFiles returns the resolved paths of the three output tables.
func (c *Container) OutputFiles() report.Files {
	return report.Files{
		Donations: c.config.ResolvePath(c.config.Output.DonationsFile),
		Summary:   c.config.ResolvePath(c.config.Output.SummaryFile),
		Recurring: c.config.ResolvePath(c.config.Output.RecurringFile),
	}
}

// NewReporter creates a reporter writing the console report to out.
func (c *Container) NewReporter(out io.Writer) *report.Reporter {
	return report.NewReporter(out, c.config.DelimiterRune(), c.config.Report.TopN, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLayouts returns the loaded year layouts.
func (c *Container) GetLayouts() *layout.Set {
	return c.layouts
}

// GetReader returns the spreadsheet reader.
func (c *Container) GetReader() sheet.Reader {
	return c.reader
}

// GetCollector returns the batch collector.
func (c *Container) GetCollector() *batch.Collector {
	return c.collector
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *aggregate.Aggregator {
	return c.aggregator
}
