// Package gate verifies the analyzer environment before any check
// runs. It is fail-closed: a missing requirement with installation
// declined (or no confirmer at all) blocks the whole pipeline.
package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
)

// ErrEnvironmentNotReady signals that required analyzer tools are
// missing and the run must abort before any check executes.
var ErrEnvironmentNotReady = errors.New("environment not ready")

// DefaultRequirements is the pip packages the check battery depends
// on. The list is declared once at startup and never derived.
var DefaultRequirements = []string{
	"flake8", "black", "radon", "vulture", "bandit",
	"mypy", "pylint", "detect-secrets",
}

// Confirmer answers the one yes/no question the gate may ask. It is a
// port so the gate is testable without a real terminal.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Gate checks requirement presence and offers a bulk install.
type Gate struct {
	// Requirements is the immutable tool list to verify.
	Requirements []string

	// Confirmer authorizes the install attempt. Nil means never
	// install (non-interactive contexts).
	Confirmer Confirmer

	// Out receives gate diagnostics. Defaults to os.Stdout.
	Out io.Writer

	// Probe and Install may be injected; they default to pip
	// queries against the host.
	Probe   func(ctx context.Context, pkg string) bool
	Install func(ctx context.Context, pkgs []string) error
}

// New returns a gate over the default requirements.
func New(confirmer Confirmer) *Gate {
	return &Gate{
		Requirements: DefaultRequirements,
		Confirmer:    confirmer,
		Probe:        pipShow,
		Install:      pipInstall,
	}
}

// Missing queries the host for each requirement and returns the subset
// not installed, in declaration order.
func (g *Gate) Missing(ctx context.Context) []string {
	probe := g.Probe
	if probe == nil {
		probe = pipShow
	}

	var missing []string
	for _, pkg := range g.Requirements {
		if !probe(ctx, pkg) {
			missing = append(missing, pkg)
		}
	}
	return missing
}

// Ensure blocks the pipeline unless every requirement is met. When
// tools are missing it lists them, asks for one confirmation, and on
// an affirmative answer attempts a bulk install. The install attempt
// is not re-verified.
func (g *Gate) Ensure(ctx context.Context) error {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}

	missing := g.Missing(ctx)
	if len(missing) == 0 {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(out, "%s All required analyzer tools are installed.\n", green("✓"))
		return nil
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s The following required tools were not found:\n", yellow("⚠"))
	for _, pkg := range missing {
		fmt.Fprintf(out, "  - %s\n", pkg)
	}

	if g.Confirmer == nil {
		return fmt.Errorf("%w: missing %s", ErrEnvironmentNotReady, strings.Join(missing, ", "))
	}

	ok, err := g.Confirmer.Confirm("\nInstall the missing dependencies? (y/n): ")
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrEnvironmentNotReady, strings.Join(missing, ", "))
	}

	installFn := g.Install
	if installFn == nil {
		installFn = pipInstall
	}
	if err := installFn(ctx, missing); err != nil {
		return fmt.Errorf("%w: install failed: %v", ErrEnvironmentNotReady, err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s Dependencies installed.\n", green("✓"))
	return nil
}

// pipShow reports whether the package is installed, by whether
// `pip show` prints anything about it.
func pipShow(ctx context.Context, pkg string) bool {
	cmd := exec.CommandContext(ctx, "python3", "-m", "pip", "show", pkg)
	out, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) != ""
}

// pipInstall bulk-installs the given packages.
func pipInstall(ctx context.Context, pkgs []string) error {
	args := append([]string{"-m", "pip", "install"}, pkgs...)
	cmd := exec.CommandContext(ctx, "python3", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
