package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/query"
	"github.com/ontokit/owlq/internal/rdf"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Input      string
	Format     string
	Output     string
	OutputDir  string
	UseGraphs  bool
	Updates    []string
	Queries    []string
	Selects    []string
	Constructs []string
	Verify     []string
	Catalog    []string
	Prefixes   string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run SPARQL queries or updates against an ontology",
		Long: `Run SPARQL queries or updates against an ontology.

Query specs take the form PATH[=OUTPUT]. When OUTPUT is omitted the
result path is synthesized from the query file's base name and the
resolved format, under --output-dir. When --update is given, updates run
exclusively and produce a modified ontology instead of result files.

Example:
  owlq query -i ont.ttl -q labels.rq=labels.csv
  owlq query -i ont.ttl --queries checks/*.rq --output-dir results
  owlq query -i ont.ttl -u fix.ru -o fixed.ttl`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "load ontology from a file (required)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "the query result format: csv, tsv, ttl, nt, jsonld")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "save the updated ontology to a file")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "O", "", "directory for synthesized result paths")
	cmd.Flags().BoolVarP(&opts.UseGraphs, "use-graphs", "g", false, "load imports as named graphs")
	cmd.Flags().StringArrayVarP(&opts.Updates, "update", "u", nil, "run a SPARQL UPDATE file")
	cmd.Flags().StringArrayVarP(&opts.Queries, "query", "q", nil, "run a SPARQL query: PATH[=OUTPUT]")
	cmd.Flags().StringArrayVarP(&opts.Selects, "select", "s", nil, "run a SPARQL SELECT query (deprecated, use --query)")
	cmd.Flags().StringArrayVarP(&opts.Constructs, "construct", "c", nil, "run a SPARQL CONSTRUCT query (deprecated, use --query)")
	cmd.Flags().StringArrayVarP(&opts.Verify, "queries", "Q", nil, "verify one or more SPARQL queries")
	cmd.Flags().StringArrayVar(&opts.Catalog, "catalog", nil, "map an import IRI to a file: IRI=PATH")
	cmd.Flags().StringVar(&opts.Prefixes, "prefixes", "", "YAML file of extra prefix declarations")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	prefixes := rdf.DefaultPrefixes()
	if opts.Prefixes != "" {
		var err error
		prefixes, err = rdf.LoadPrefixes(opts.Prefixes)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load prefixes", err)
		}
	}

	catalog, err := parseCatalog(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid catalog entry", err)
	}

	slog.Debug("loading ontology", "path", opts.Input)
	loader := ontology.NewLoader(catalog, prefixes)
	ont, err := loader.Load(opts.Input)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load ontology", err)
	}

	// Updates run exclusively: queries and updates do not mix in one
	// invocation.
	if len(opts.Updates) > 0 {
		return runUpdates(opts, cmd, ont, prefixes)
	}

	inputs := query.Inputs{
		Queries:    parsePairs(opts.Queries),
		Selects:    parsePairs(opts.Selects),
		Constructs: parsePairs(opts.Constructs),
		Verify:     opts.Verify,
	}
	runOpts := query.Options{
		Format:    opts.Format,
		OutputDir: opts.OutputDir,
		UseGraphs: opts.UseGraphs,
		Prefixes:  prefixes,
	}
	if err := query.Run(ont, inputs, runOpts); err != nil {
		if query.IsUsageError(err) {
			return WrapExitError(ExitCommandError, "query invocation error", err)
		}
		return WrapExitError(ExitFailure, "query batch failed", err)
	}
	return nil
}

func runUpdates(opts *QueryOptions, cmd *cobra.Command, ont *ontology.Ontology, prefixes rdf.PrefixMap) error {
	jobs, err := query.LoadUpdateJobs(opts.Updates)
	if err != nil {
		return WrapExitError(ExitCommandError, "update invocation error", err)
	}
	updated, err := query.ApplyUpdates(ont, jobs, prefixes)
	if err != nil {
		if query.IsUsageError(err) {
			return WrapExitError(ExitCommandError, "update invocation error", err)
		}
		return WrapExitError(ExitFailure, "update batch failed", err)
	}
	if opts.Output == "" {
		slog.Debug("no output path; updated ontology not saved")
		return nil
	}
	if err := updated.Save(opts.Output, prefixes); err != nil {
		return WrapExitError(ExitFailure, "failed to save ontology", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved updated ontology to %s\n", opts.Output)
	return nil
}

// parsePairs splits PATH[=OUTPUT] specs into pairs.
func parsePairs(specs []string) []query.Pair {
	pairs := make([]query.Pair, 0, len(specs))
	for _, spec := range specs {
		source, output, _ := strings.Cut(spec, "=")
		pairs = append(pairs, query.Pair{Source: source, Output: output})
	}
	return pairs
}

// parseCatalog splits IRI=PATH entries into a catalog map.
func parseCatalog(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	catalog := make(map[string]string, len(entries))
	for _, entry := range entries {
		iri, path, ok := strings.Cut(entry, "=")
		if !ok || iri == "" || path == "" {
			return nil, fmt.Errorf("expected IRI=PATH, got %q", entry)
		}
		catalog[iri] = path
	}
	return catalog, nil
}
