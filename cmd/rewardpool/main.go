package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"okinoko_rewards/internal/config"
)

const (
	programName = "rewardpool"
)

var (
	globalFlags = struct {
		debug  bool
		sender string
		at     int64
	}{}
	configFile string
)

func commonRun(cfg *config.Config) *slog.Logger {
	// Configure logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	addSource := false
	if globalFlags.debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	// stdout carries the command output
	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Run reward pool calls against a local state database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		StringVarP(&globalFlags.sender, "sender", "s", "", "address the call is sent from")
	rootCmd.PersistentFlags().
		Int64Var(&globalFlags.at, "at", 0, "unix time of the call, defaults to now")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// Override config with command line flags
		if globalFlags.sender != "" {
			cfg.Sender = globalFlags.sender
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	// Subcommands
	rootCmd.AddCommand(initCommand())
	rootCmd.AddCommand(infoCommand())
	rootCmd.AddCommand(tokenCommand())
	rootCmd.AddCommand(depositCommand())
	rootCmd.AddCommand(memberCommand())
	rootCmd.AddCommand(durationCommand())
	rootCmd.AddCommand(ruleCommand())
	rootCmd.AddCommand(rewardCommand())
	rootCmd.AddCommand(voteCommand())
	rootCmd.AddCommand(pollCommand())
	rootCmd.AddCommand(finalizeCommand())
	rootCmd.AddCommand(withdrawCommand())
	return rootCmd
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		slog.Error(err.Error(), "component", programName)
		os.Exit(1)
	}
}
