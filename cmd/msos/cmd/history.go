package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tinmanjk/msos/internal/repository"
	"github.com/tinmanjk/msos/pkg/config"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded report runs",
	Long:  `List the most recent report runs recorded in the history database, newest first.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	repo, err := repository.NewRunRepository(&cfg.Database)
	if err != nil {
		return err
	}

	runs, err := repo.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		log.Info("No recorded runs")
		return nil
	}

	for _, run := range runs {
		log.Info("#%d %s %s -> %s (%d sections, %s)",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"),
			run.DumpPath, run.Result, run.SectionCount, run.Duration())
		for _, name := range run.FailedComponents {
			log.Warn("  failed component: %s", name)
		}
	}
	return nil
}
