package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ristab/internal/convert"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge the per-file CSVs into one deduplicated table",
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
			s, err := ctx.loadSchema()
			if err != nil {
				return err
			}

			result, err := convert.New(cfg, logger).MergeOutputs(s, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d CSV files (%d skipped) into %s: %d unique rows\n",
				result.Scanned, result.Skipped, cfg.MergedCSVPath(), result.Unique())
			return nil
		},
	}
}
