package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinmanjk/msos/pkg/telemetry"
	"github.com/tinmanjk/msos/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logger     utils.Logger

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "msos",
	Short: "Diagnostic report tool for captured process images",
	Long: `msos generates diagnostic reports from a captured process image.

Given a process dump it produces a JSON report covering the unhandled
exception chain, loaded modules, unified thread stacks, blocked threads,
virtual memory usage and the heap types consuming the most memory, plus
tuning recommendations derived from those findings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		shutdown, err := telemetry.Init(cmd.Context(), telemetry.WithService(BinName(), Version))
		if err != nil {
			logger.Warn("Failed to initialize telemetry: %v", err)
			return nil
		}
		telemetryShutdown = shutdown
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetryShutdown(ctx); err != nil {
				logger.Warn("Failed to shut down telemetry: %v", err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	binName := BinName()
	rootCmd.Example = `  # Generate a report from a process dump
  ` + binName + ` report -i ./app.dmp -o ./report.json

  # Gzipped output with a larger heap type ranking
  ` + binName + ` report -i ./app.dmp -o ./report.json --gzip --top 250

  # List previously recorded runs
  ` + binName + ` history -n 10`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
