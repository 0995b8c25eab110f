package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mkvscan/internal/media/info"
	"mkvscan/internal/scan"
)

type scanReport struct {
	SessionID string        `json:"session_id"`
	Scanned   int           `json:"scanned"`
	Failed    int           `json:"failed"`
	Records   []info.Record `json:"records"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Probe video files and report resolution, codec, and track languages",
		Long: `Probe each file with ffprobe and print one row per file. Directory
arguments are expanded to the video files they contain. Files that cannot be
probed are reported as rows with an error instead of aborting the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}

			files, err := scan.ExpandPaths(args, cfg.Scan.Extensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no video files found")
			}

			var bar *progressbar.ProgressBar
			if !jsonOut && !noProgress && isatty.IsTerminal(os.Stderr.Fd()) {
				bar = progressbar.NewOptions(len(files),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("probing"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}

			session := scan.NewSession(scan.Options{
				Prober: ctx.proberFor(cfg),
				Logger: logger,
				Observer: func(info.Record) {
					if bar != nil {
						_ = bar.Add(1)
					}
				},
			})

			summary, err := session.AddFiles(cmd.Context(), files)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			records := session.Records()
			if jsonOut {
				report := scanReport{
					SessionID: summary.BatchID,
					Scanned:   summary.Scanned,
					Failed:    summary.Failed,
					Records:   records,
				}
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderScanTable(records, cfg.Output.LanguageNames))
			}

			if summary.MissingBinary {
				return fmt.Errorf("ffprobe binary %q not found; install FFmpeg or set probe.binary in the configuration", cfg.Probe.Binary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}
