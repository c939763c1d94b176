package harness

import (
	"bytes"
	"fmt"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/query"
	"github.com/ontokit/owlq/internal/rdf"
)

// Scenario is one end-to-end query case: an inline Turtle ontology, a
// query, and the format to serialize the result in.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string

	// Ontology is the Turtle source of the ontology under query.
	Ontology string

	// Imports maps import IRIs to the Turtle source of the imported
	// ontology. Every declaration in Ontology must have an entry.
	Imports map[string]string

	// Query is the SPARQL query text.
	Query string

	// Format names the result writer. Empty means "infer from the
	// query form", exactly as the format resolver would.
	Format string

	// UseGraphs loads imports as named graphs.
	UseGraphs bool
}

// Run executes the scenario and returns the serialized result bytes.
func Run(s *Scenario) ([]byte, error) {
	ont, err := parseOntology(s.Ontology)
	if err != nil {
		return nil, err
	}
	for i := range ont.Imports {
		src, ok := s.Imports[ont.Imports[i].IRI]
		if !ok {
			return nil, fmt.Errorf("scenario %s: no source for import <%s>", s.Name, ont.Imports[i].IRI)
		}
		imported, err := parseOntology(src)
		if err != nil {
			return nil, err
		}
		ont.Imports[i].Resolved = imported
	}

	ds, err := query.Build(ont, s.UseGraphs)
	if err != nil {
		return nil, err
	}

	registry := query.NewRegistry()
	writer, err := registry.Resolve(s.Query, query.Job{}, s.Format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := query.Dispatch(ds, s.Query, writer, &buf, rdf.DefaultPrefixes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseOntology(src string) (*ontology.Ontology, error) {
	triples, err := rdf.ParseTurtle(src, rdf.DefaultPrefixes())
	if err != nil {
		return nil, err
	}
	return ontology.FromTriples(triples), nil
}
