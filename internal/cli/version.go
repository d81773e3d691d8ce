package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bindgen/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "bindgen %s\n", version.String())
			if version.BuildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", version.BuildDate)
			}
			return nil
		},
	}
}
