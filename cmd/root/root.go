// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/giften-csv/cmd/common"
	"fjacquet/giften-csv/internal/config"
	"fjacquet/giften-csv/internal/container"
	"fjacquet/giften-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Flags holds the persistent flags shared by all commands.
type Flags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	DataDir    string
	Delimiter  string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any command runs
	AppConfig *config.Config

	// AppContainer wires the parsers, collector, aggregator and reporter
	AppContainer *container.Container

	// SharedFlags holds the values of the persistent flags
	SharedFlags = Flags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "giften-csv",
		Short: "Parse Dutch political party donation disclosures and report on donors.",
		Long: `giften-csv reads the yearly donation disclosure spreadsheets of Dutch
political parties, normalizes every donation line into one table and reports
totals per party and year, the largest donors, recurring donors and donors
who gave to more than one party.

Without a subcommand it runs the full analysis.`,
		PersistentPreRunE: initializeApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.RunAnalysis(AppContainer, cmd.OutOrStdout(), "")
		},
		SilenceUsage: true,
	}
)

// Init initializes the root command and all flags. Calling it again is a no-op.
func Init() {
	flags := Cmd.PersistentFlags()
	if flags.Lookup("config") != nil {
		return
	}
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "config file (default is ./config.yaml or $HOME/.giften-csv/config.yaml)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "log format (text, json)")
	flags.StringVar(&SharedFlags.DataDir, "data-dir", "", "directory holding the spreadsheets and the output tables")
	flags.StringVar(&SharedFlags.Delimiter, "csv-delimiter", "", "delimiter of the output tables")
}

func initializeApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if err := ApplyFlags(cfg, SharedFlags); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Application initialized",
		logging.Field{Key: "command", Value: cmd.Name()},
		logging.Field{Key: "data_directory", Value: cfg.Data.Directory})
	return nil
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags Flags) error {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.DataDir != "" {
		cfg.Data.Directory = flags.DataDir
	}
	if flags.Delimiter != "" {
		cfg.CSV.Delimiter = flags.Delimiter
	}
	return config.Validate(cfg)
}
