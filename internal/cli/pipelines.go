package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bindgen/internal/pipeline"
)

// NewPipelinesCommand creates the pipelines command.
func NewPipelinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pipelines",
		Short: "List the registered pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range pipeline.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
