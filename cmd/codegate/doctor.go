package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/gate"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the analyzer environment without running the pipeline",
	Long: `Run read-only environment checks to diagnose setup issues.

This command checks for:
- Python interpreter availability
- Each required analyzer package
- Report directory writability

Unlike the pipeline's environment gate, doctor never prompts and never
installs anything.

Exit codes:
  0 - All checks passed
  1 - One or more requirements missing
  2 - Critical failures (no Python interpreter)`,
	Run: func(cmd *cobra.Command, args []string) {
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running environment checks...\n\n")

		ctx := context.Background()
		var failures []string

		// Check 1: Python interpreter
		fmt.Printf("%s Python interpreter\n", cyan("→"))
		if path, err := exec.LookPath("python3"); err != nil {
			fmt.Printf("  %s python3 not found in PATH\n", red("✗"))
			fmt.Printf("\n%s Nothing can run without a Python interpreter.\n", red("✗"))
			os.Exit(2)
		} else {
			fmt.Printf("  %s Found %s\n", green("✓"), path)
		}

		// Check 2: Required analyzer packages
		fmt.Printf("%s Required analyzer packages\n", cyan("→"))
		g := gate.New(nil)
		missing := make(map[string]bool)
		for _, pkg := range g.Missing(ctx) {
			missing[pkg] = true
		}
		for _, pkg := range g.Requirements {
			if missing[pkg] {
				failures = append(failures, fmt.Sprintf("%s is not installed", pkg))
				fmt.Printf("  %s %s\n", red("✗"), pkg)
			} else {
				fmt.Printf("  %s %s\n", green("✓"), pkg)
			}
		}

		// Check 3: Report directory writability
		fmt.Printf("%s Report directory\n", cyan("→"))
		cfg, err := loadConfig()
		if err != nil {
			failures = append(failures, fmt.Sprintf("invalid config: %v", err))
			fmt.Printf("  %s Cannot load config: %v\n", red("✗"), err)
		} else {
			dir := cfg.ReportPath()
			if err := os.MkdirAll(dir, 0755); err != nil {
				failures = append(failures, fmt.Sprintf("report directory not writable: %v", err))
				fmt.Printf("  %s Cannot create %s\n", red("✗"), dir)
			} else {
				probe := filepath.Join(dir, ".doctor-probe")
				if err := os.WriteFile(probe, nil, 0644); err != nil {
					failures = append(failures, fmt.Sprintf("report directory not writable: %v", err))
					fmt.Printf("  %s Cannot write into %s\n", red("✗"), dir)
				} else {
					os.Remove(probe)
					fmt.Printf("  %s %s is writable\n", green("✓"), dir)
				}
			}
		}

		if len(failures) == 0 {
			fmt.Printf("\n%s All checks passed! The analysis environment is ready.\n", green("✓"))
			return
		}

		fmt.Printf("\n%s Problems found (%d):\n", yellow("⚠"), len(failures))
		for _, f := range failures {
			fmt.Printf("  • %s\n", f)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
