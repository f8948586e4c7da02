package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sfd-intake/pkg/config"
)

var (
	configPath string
	debug      bool

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sfd-intake",
	Short: "Form intake service for the School for the Daring site",
	Long: `sfd-intake receives the participation, scholarship/grant and volunteer
forms and appends each submission as a row in Google Sheets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error loading .env file: %w", err)
		}

		zc := zap.NewProductionConfig()
		if debug {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if configPath == "" {
			configPath = os.Getenv("CONFIG")
		}
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults to $CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
