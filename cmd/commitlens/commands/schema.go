package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/render"
)

// NewSchemaCommand creates the schema subcommand, which prints the JSON schema
// of the geometry document written by analyze --geometry.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the geometry output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := render.GeometrySchema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}
