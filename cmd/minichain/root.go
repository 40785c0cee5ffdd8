package minichain

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/minichain/internal/config"
	"github.com/liftedinit/minichain/internal/ledger"
	"github.com/liftedinit/minichain/internal/session"
)

var (
	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	validLogLevelsStr = strings.Join(slices.Sorted(maps.Keys(validLogLevels)), "|")
)

// ledgerConfig is loaded and validated before any subcommand runs.
var ledgerConfig config.LedgerConfig

var RootCmd = &cobra.Command{
	Use:   "minichain",
	Short: "Proof-of-work transaction ledger",
	Long:  `minichain keeps an append-only proof-of-work ledger of transactions in a local state file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := viper.GetString("logLevel")
		if err := setLogLevel(logLevel); err != nil {
			return err
		}
		slog.Debug("Application started", "version", Version)

		ledgerConfig = config.LoadLedgerConfigFromCLI()
		if err := ledgerConfig.Validate(); err != nil {
			return fmt.Errorf("invalid ledger configuration: %w", err)
		}
		slog.Debug("Ledger configuration", "state", ledgerConfig.StateFile, "difficulty", ledgerConfig.Difficulty, "track-index", ledgerConfig.TrackIndex)
		return nil
	},
	RunE: runInteractive,
}

// setLogLevel sets the log level
func setLogLevel(logLevel string) error {
	level, exists := validLogLevels[logLevel]
	if !exists {
		return fmt.Errorf("invalid log level: %s. Valid log levels are: %s", logLevel, validLogLevelsStr)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openSession opens the configured state file.
func openSession() *session.Session {
	return session.Open(ledgerConfig.StateFile, ledgerConfig.Difficulty, ledger.WithIndexTracking(ledgerConfig.TrackIndex))
}

func init() {
	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", fmt.Sprintf("set log level (%s)", validLogLevelsStr))
	RootCmd.PersistentFlags().String("state", "blockchain.json", "Path of the ledger state file")
	RootCmd.PersistentFlags().Uint("difficulty", 2, "Leading zero hex digits required of every mined block")
	RootCmd.PersistentFlags().Uint("max-difficulty", 6, "Upper bound accepted for --difficulty")
	RootCmd.PersistentFlags().Bool("track-index", true, "Check block indices when validating the chain")
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind rootCmd flags", "error", err)
	}

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.minichain")
	viper.AddConfigPath("/etc/minichain")

	viper.SetEnvPrefix("minichain")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	RootCmd.AddCommand(addTransactionCmd)
	RootCmd.AddCommand(mineCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(pendingCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(interactiveCmd)
	RootCmd.AddCommand(ExportCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := viper.ReadInConfig(); err == nil {
		slog.Info("Using config file", "file", viper.ConfigFileUsed())
	} else {
		slog.Info("No config file found")
	}

	if err := RootCmd.Execute(); err != nil {
		slog.Error("An error occurred", "error", err)
		os.Exit(1)
	}
}
