package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the owlq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "owlq",
		Short: "owlq - SPARQL queries and updates over OWL ontologies",
		Long: `owlq loads an RDF/OWL ontology and runs SPARQL against it.

SELECT, ASK, CONSTRUCT, and DESCRIBE queries produce one result file per
query; SPARQL UPDATE operations produce a modified ontology.`,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewFormatsCommand(opts))

	return cmd
}
