package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Load and display the configured tag schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s, err := ctx.loadSchema()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, s.Len())
			for _, tag := range s.Columns() {
				field, _ := s.Field(tag)
				rows = append(rows, []string{tag, field.Description, yesNo(field.MultiValue)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tag", "Description", "Multi-value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d tags loaded from %s\n", s.Len(), cfg.Paths.SchemaPath)
			return nil
		},
	}
}
