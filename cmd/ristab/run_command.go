package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"ristab/internal/convert"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Convert, merge, and re-export every RIS file in the source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			report, err := convert.New(cfg, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(report.Files) == 0 {
				fmt.Fprintf(out, "No RIS files found in %s\n", cfg.Paths.SourceDir)
				return nil
			}

			rows := make([][]string, 0, len(report.Files))
			for _, f := range report.Files {
				status := "ok"
				if f.Err != nil {
					status = "failed: " + f.Err.Error()
				}
				rows = append(rows, []string{
					filepath.Base(f.Source),
					strconv.Itoa(f.Records),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Records", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))

			if report.Merge != nil {
				fmt.Fprintf(out, "Merged %d CSV files (%d skipped) into %s: %d unique rows\n",
					report.Merge.Scanned, report.Merge.Skipped, report.MergedCSV, report.Merge.Unique())
				fmt.Fprintf(out, "Exported %d records to %s\n", report.Exported, report.MergedRIS)
			}
			if failed := report.Failed(); failed > 0 {
				fmt.Fprintf(out, "%d of %d files failed; see log for details\n", failed, len(report.Files))
			}
			return nil
		},
	}
}
