package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .codegate.yaml in the current directory",
	Long: `Write the built-in configuration to .codegate.yaml so it can be
edited: source and report directories, obsolete-marker list, scanner
extension allow-list, and run-history settings.

The pipeline works without a config file; init only exists to give
you a template.`,
	Run: func(cmd *cobra.Command, args []string) {
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		path := filepath.Join(cwd, ".codegate.yaml")
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("%s %s already exists, not overwriting.\n", yellow("⚠"), path)
			os.Exit(1)
		}

		if err := config.SaveDefault(path, cwd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Wrote %s\n", green("✓"), path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
