package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mkvscan/internal/deps"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external tools mkvscan relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(cmd.Context(), []deps.Requirement{
				deps.FFprobe(cfg.Probe.Binary),
			})

			if jsonOut {
				if err := writeJSON(cmd, statuses); err != nil {
					return err
				}
			} else {
				colorize := isatty.IsTerminal(os.Stdout.Fd())
				out := cmd.OutOrStdout()
				for _, status := range statuses {
					fmt.Fprintln(out, renderDepLine(status, colorize))
				}
			}

			for _, status := range statuses {
				if !status.Available {
					return fmt.Errorf("missing required tool: %s", status.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

func renderDepLine(status deps.Status, colorize bool) string {
	label := "[MISSING]"
	color := ansiRed
	if status.Available {
		label = "[OK]"
		color = ansiGreen
	}
	label = fmt.Sprintf("%-9s", label)
	if colorize {
		label = color + label + ansiReset
	}

	detail := status.Detail
	if status.Available && status.Version != "" {
		detail = status.Version
	}
	if detail != "" {
		return fmt.Sprintf("%s %s (%s): %s", label, status.Name, status.Command, detail)
	}
	return fmt.Sprintf("%s %s (%s)", label, status.Name, status.Command)
}
