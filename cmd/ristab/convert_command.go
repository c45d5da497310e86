package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ristab/internal/convert"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [file...]",
		Short: "Convert RIS files to per-file CSV projections",
		Long: "Convert the named RIS files (or every *.ris in the configured source\n" +
			"directory) into CSVs under <output_dir>/csv, one per input.",
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

			inputs := args
			if len(inputs) == 0 {
				inputs, err = filepath.Glob(filepath.Join(cfg.Paths.SourceDir, "*.ris"))
				if err != nil {
					return fmt.Errorf("enumerate ris files: %w", err)
				}
				sort.Strings(inputs)
			}
			if len(inputs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No RIS files found in %s\n", cfg.Paths.SourceDir)
				return nil
			}

			pipeline := convert.New(cfg, logger)
			out := cmd.OutOrStdout()
			failed := 0
			for _, input := range inputs {
				base := filepath.Base(input)
				output := filepath.Join(cfg.CSVDir(), strings.TrimSuffix(base, filepath.Ext(base))+".csv")
				count, err := pipeline.ConvertFile(s, input, output)
				if err != nil {
					failed++
					logger.Error("conversion failed", "file", input, "error", err)
					continue
				}
				fmt.Fprintf(out, "Converted %s to %s (%d records)\n", input, output, count)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(inputs))
			}
			return nil
		},
	}
}
