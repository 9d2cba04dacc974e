package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/check"
	"github.com/codegate/codegate/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past analysis runs",
	Long: `List recorded analysis runs, newest first, with the status each
check reported.

Runs are recorded in a SQLite database next to the report files, so
history survives across runs and machines sharing the report
directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		store, err := history.Open(ctx, cfg.HistoryPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		runs, err := store.ListRuns(ctx, historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		if len(runs) == 0 {
			fmt.Printf("%s\n", gray("No runs recorded yet."))
			return
		}

		for _, run := range runs {
			fmt.Printf("%s  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), gray(run.ID))
			for _, c := range run.Checks {
				var status string
				switch check.Status(c.Status) {
				case check.StatusClean:
					status = green(c.Status)
				case check.StatusAttention:
					status = yellow(c.Status)
				default:
					status = red(c.Status)
				}
				fmt.Printf("  %-16s %s\n", c.Name, status)
			}
			fmt.Println()
		}
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of runs to show (0 = all)")
	rootCmd.AddCommand(historyCmd)
}
