// Package config provides Viper-based hierarchical configuration management.
// Every key has a default, so the tool runs without any configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. GIFTEN_LOG_LEVEL.
const EnvPrefix = "GIFTEN"

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig         `mapstructure:"log" yaml:"log"`
	CSV     CSVConfig         `mapstructure:"csv" yaml:"csv"`
	Data    DataConfig        `mapstructure:"data" yaml:"data"`
	Sources map[string]string `mapstructure:"sources" yaml:"sources"`
	Output  OutputConfig      `mapstructure:"output" yaml:"output"`
	Report  ReportConfig      `mapstructure:"report" yaml:"report"`
	Layouts LayoutsConfig     `mapstructure:"layouts" yaml:"layouts"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls the output tables.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DataConfig is the directory relative input and output names resolve against.
type DataConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// OutputConfig names the three output tables.
type OutputConfig struct {
	DonationsFile string `mapstructure:"donations_file" yaml:"donations_file"`
	SummaryFile   string `mapstructure:"summary_file" yaml:"summary_file"`
	RecurringFile string `mapstructure:"recurring_file" yaml:"recurring_file"`
}

// ReportConfig controls the console report.
type ReportConfig struct {
	TopN   int    `mapstructure:"top_n" yaml:"top_n"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LayoutsConfig optionally points at a file replacing the built-in layouts.
type LayoutsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// SourceFile is one configured input, already resolved against the data
// directory.
type SourceFile struct {
	Year int
	Path string
}

// InitializeConfig loads configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig initializes Viper configuration with hierarchical loading:
// defaults, then a config file, then GIFTEN_* environment variables. When
// configFile is empty the file is searched in ".", ".giften-csv" and
// "$HOME/.giften-csv" and may be absent; an explicit file must exist.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(".giften-csv")
		v.AddConfigPath("$HOME/.giften-csv")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configFile != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		case !errors.As(err, &notFound):
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
}

func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		"log.level":  "info",
		"log.format": "text",

		"csv.delimiter": ",",

		"data.directory": "data",
		"sources": map[string]string{
			"2023": "giften_2023.ods",
			"2024": "giften_2024.ods",
			"2025": "giften_2025.ods",
			"2026": "giften_2026.ods",
		},

		"output.donations_file": "all_individual_donations.csv",
		"output.summary_file":   "donor_year_summary.csv",
		"output.recurring_file": "recurring_donors.csv",

		"report.top_n":  30,
		"report.format": "text",

		"layouts.file": "",
	}
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// Validate checks a configuration changed after loading, such as by
// command-line flags.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	return validateConfig(config)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if config.Report.TopN < 1 {
		return fmt.Errorf("report.top_n must be at least 1, got: %d", config.Report.TopN)
	}

	if err := validation.IsValidReportFormat(config.Report.Format); err != nil {
		return fmt.Errorf("invalid report format: %w", err)
	}

	for year, name := range config.Sources {
		if _, err := strconv.Atoi(year); err != nil {
			return fmt.Errorf("sources: key %q is not a year", year)
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("sources: no file configured for %s", year)
		}
	}

	return nil
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// ResolvePath joins relative names with the data directory.
func (c *Config) ResolvePath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.Data.Directory == "" {
		return name
	}
	return filepath.Join(c.Data.Directory, name)
}

// SourceFiles returns the configured inputs ordered by year.
func (c *Config) SourceFiles() []SourceFile {
	files := make([]SourceFile, 0, len(c.Sources))
	for key, name := range c.Sources {
		year, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		files = append(files, SourceFile{Year: year, Path: c.ResolvePath(name)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Year < files[j].Year })
	return files
}

// ConfigureLoggingFromConfig builds the application logger from the config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
