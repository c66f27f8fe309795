package main

import (
	"context"
	"fmt"
	"os"

	"github.com/futig/question-generator/internal/builder"
	"github.com/futig/question-generator/internal/config"
	pkgLogger "github.com/futig/question-generator/internal/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	environment string
	logLevel    string

	logger *zap.Logger
	core   *builder.Core
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qgen",
	Short: "Survey question generator",
	Long: `qgen builds survey questionnaires from the question table without the
HTTP server or the Telegram bot.

It reads the same .env.<environment> file and variables as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(environment)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		logger, err = pkgLogger.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		core, err = builder.BuildCore(context.Background(), cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&environment, "env", "local", "Environment to load (local, prod, or custom)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level override")

	rootCmd.AddCommand(optionsCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
