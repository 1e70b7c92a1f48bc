// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trading-journal/internal/config"
	"trading-journal/internal/logging"
	"trading-journal/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dbPath := cfg.Journal.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(config.DefaultConfigDir(), "journal.db")
	}
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal data is unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("db", dbPath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal and performance analytics CLI",
		Long: `A personal trading journal with performance analytics.

Import trade history from broker CSV exports, record trades manually,
and analyze performance: win rate, profit factor, expectancy, drawdown,
streaks, breakdowns by symbol, tag, day, and hour, and pattern insights.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			ctx := logging.WithLogger(cmd.Context(), app.Logger)
			cmd.SetContext(WithColorSetting(ctx, cfg.UI.ColorEnabled))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trading-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addImportExportCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addBreakdownCommands(rootCmd, app)
	addInsightsCommands(rootCmd, app)
	addGoalsCommands(rootCmd, app)
	addTagCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Trading Journal v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Journal Configuration")
	output.Printf("  Database:        %s\n", cfg.Journal.DBPath)
	output.Printf("  Tags:            %d configured\n", len(cfg.Journal.Tags))
	output.Println()

	output.Bold("Daily Goals")
	output.Printf("  Max Loss:        %s\n", FormatCurrency(cfg.Goals.MaxLoss))
	output.Printf("  Target Profit:   %s\n", FormatCurrency(cfg.Goals.TargetProfit))
	output.Printf("  Max Trades:      %d\n", cfg.Goals.MaxTrades)
	output.Println()

	output.Bold("UI")
	output.Printf("  Colors:          %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Currency:        %s\n", cfg.UI.Currency)
}
