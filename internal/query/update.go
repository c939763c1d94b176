package query

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/rdf"
	"github.com/ontokit/owlq/internal/sparql"
)

// UpdateJob is one SPARQL UPDATE request: an identifying label (the file
// path it came from) and the update text.
type UpdateJob struct {
	Label string
	Text  string
}

// LoadUpdateJobs reads update files into jobs, preserving argument
// order. Every path is checked before any file is read, so a missing
// file fails the invocation before any graph work starts.
func LoadUpdateJobs(paths []string) ([]UpdateJob, error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, newError(CodeMissingFile, fmt.Sprintf("update file %q does not exist", path))
		}
	}
	jobs := make([]UpdateJob, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, UpdateJob{Label: path, Text: string(data)})
	}
	return jobs, nil
}

// ApplyUpdates runs an update batch against the ontology and returns a
// new Ontology; the input is not modified.
//
// The whole import closure is flattened into one graph first: updates
// are triple-level operations with no notion of named graphs or OWL
// imports. Each job applies in insertion order, and the first parse or
// execution error fails the batch with nothing produced - there are no
// partial-update commits.
//
// The returned ontology is rebuilt from the updated graph and carries
// the original's IRI, version IRI, and import declarations unchanged:
// zero imports in means zero imports out, and N declarations roundtrip
// identically. Stray owl:imports or header triples an update may have
// inserted are folded out of the axiom set so the declaration list stays
// the single source of truth.
func ApplyUpdates(ont *ontology.Ontology, jobs []UpdateJob, prefixes rdf.PrefixMap) (*ontology.Ontology, error) {
	if len(jobs) == 0 {
		return nil, newError(CodeMissingQuery, "at least one update must be provided")
	}
	if prefixes == nil {
		prefixes = rdf.DefaultPrefixes()
	}

	ds, err := Build(ont, false)
	if err != nil {
		return nil, err
	}
	graph := ds.Default

	for _, job := range jobs {
		slog.Debug("running update", "source", job.Label)
		ops, err := sparql.ParseUpdate(job.Text, prefixes)
		if err != nil {
			return nil, wrapError(CodeUpdateExecution, "update failed", job.Label, err)
		}
		for _, op := range ops {
			if err := sparql.Apply(graph, op); err != nil {
				return nil, wrapError(CodeUpdateExecution, "update failed", job.Label, err)
			}
		}
	}

	return convertGraph(graph, ont), nil
}

// convertGraph rebuilds an ontology from an updated graph, reattaching
// the original's identity and import declarations.
func convertGraph(graph *rdf.Graph, original *ontology.Ontology) *ontology.Ontology {
	out := ontology.New(original.IRI)
	out.VersionIRI = original.VersionIRI

	header := original.HeaderGraph()
	for _, t := range graph.Triples() {
		if t.P.Value == rdf.OWLImports {
			continue
		}
		if header.Has(t) {
			continue
		}
		out.Axioms.Add(t)
	}

	for _, imp := range original.Imports {
		out.Imports = append(out.Imports, ontology.Import{IRI: imp.IRI, Resolved: imp.Resolved})
	}
	return out
}
