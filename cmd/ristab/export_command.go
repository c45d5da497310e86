package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ristab/internal/config"
	"ristab/internal/convert"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export [csv]",
		Short: "Serialize a merged CSV table back into a RIS file",
		Long: "Serialize the given CSV (default: the configured merged CSV) into a\n" +
			"single RIS file. The CSV header must match the schema's sorted tag list.",
		Args: cobra.MaximumNArgs(1),
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

			csvPath := cfg.MergedCSVPath()
			if len(args) == 1 {
				csvPath, err = config.ExpandPath(args[0])
				if err != nil {
					return err
				}
			}
			risPath := cfg.MergedRISPath()
			if outputPath != "" {
				risPath, err = config.ExpandPath(outputPath)
				if err != nil {
					return err
				}
			}

			count, err := convert.New(cfg, logger).Export(s, csvPath, risPath, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records from %s to %s\n", count, csvPath, risPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination RIS file")
	return cmd
}
