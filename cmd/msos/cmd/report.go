package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinmanjk/msos/internal/service"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/config"
)

var (
	// Report command flags
	dumpFile   string
	outputFile string
	topN       int
	gzipOut    bool
	archive    bool
	history    bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a diagnostic report from a process dump",
	Long: `Generate a diagnostic report from a captured process image.

The report command opens the dump through the linked snapshot provider,
runs every analysis component over it and writes the assembled report as
JSON. Components that cannot contribute on this dump are omitted;
components that fail are recorded in the report without aborting the run.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	binName := BinName()
	reportCmd.Example = `  # Generate a report
  ` + binName + ` report -i ./app.dmp -o ./report.json

  # Gzip the output and archive it to the configured store
  ` + binName + ` report -i ./app.dmp -o ./report.json --gzip --archive

  # Record the run in the history database
  ` + binName + ` report -i ./app.dmp -o ./report.json --history`

	reportCmd.Flags().StringVarP(&dumpFile, "input", "i", "", "Process dump file (required)")
	reportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output report file (required)")
	reportCmd.MarkFlagRequired("input")
	reportCmd.MarkFlagRequired("output")

	reportCmd.Flags().IntVarP(&topN, "top", "n", 0, "Heap type groups to retain in the ranking (0 uses config)")
	reportCmd.Flags().BoolVar(&gzipOut, "gzip", false, "Gzip the output file")
	reportCmd.Flags().BoolVar(&archive, "archive", false, "Upload the report to the configured archive store")
	reportCmd.Flags().BoolVar(&history, "history", false, "Record the run in the history database")
}

func runReport(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	if _, err := os.Stat(dumpFile); os.IsNotExist(err) {
		return fmt.Errorf("dump file not found: %s", dumpFile)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if topN > 0 {
		cfg.Report.TopConsumers = topN
	}
	if gzipOut {
		cfg.Report.Gzip = true
	}
	if archive {
		cfg.Report.Archive = true
	}
	if history {
		cfg.Report.History = true
	}

	opener, ok := snapshot.DefaultOpener()
	if !ok {
		return fmt.Errorf("no snapshot provider is linked into this build")
	}

	svc, err := service.New(cfg, opener, log)
	if err != nil {
		return err
	}
	if err := svc.Initialize(cmd.Context()); err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), dumpFile, outputFile)
	if err != nil {
		return err
	}

	log.Info("Report complete: %s (%d sections, result %s)",
		result.OutputFile, len(result.Document.Sections), result.Document.Result)
	return nil
}
