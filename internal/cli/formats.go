package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontokit/owlq/internal/query"
)

// NewFormatsCommand creates the formats command, which lists the
// registered result formats.
func NewFormatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List recognized result formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := query.NewRegistry()
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
