// Command codegate runs a fixed battery of code-health checks against
// a source tree, persists each check's raw output as a report
// artifact, and prints a consolidated summary.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/config"
	"github.com/codegate/codegate/internal/gate"
	"github.com/codegate/codegate/internal/pipeline"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "codegate",
	Short: "One command to gate code health before review or release",
	Long: `Codegate runs a fixed battery of independent source-code checks
(style, complexity/duplication, dead code, security, secret scanning,
obsolete-marker scanning, formatting) against a source tree.

Each check's raw output is saved as a report file under the report
directory, and a consolidated attention/clean summary is printed at
the end. No check's findings stop the run; only a missing analyzer
environment does.

Run with no arguments to execute the full pipeline.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		p := pipeline.New(cfg, &gate.TerminalConfirmer{In: os.Stdin, Out: os.Stdout})
		if err := p.Run(context.Background()); err != nil {
			red := color.New(color.FgRed).SprintFunc()
			if errors.Is(err, gate.ErrEnvironmentNotReady) {
				fmt.Fprintf(os.Stderr, "%s Please install the required dependencies and run again.\n", red("✗"))
			} else {
				fmt.Fprintf(os.Stderr, "%s %v\n", red("✗"), err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .codegate.yaml in the current directory, if present)")
}

// loadConfig builds the run configuration: defaults rooted at the
// current directory, overlaid from --config or .codegate.yaml when
// one exists.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	path := cfgFile
	if path == "" {
		candidate := filepath.Join(cwd, ".codegate.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path == "" {
		return config.DefaultConfig(cwd), nil
	}
	return config.Load(path, cwd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
