package testutil

import (
	"testing"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/rdf"
)

// MustParseGraph parses Turtle source into a graph, failing the test on
// a syntax error. Default prefixes are in scope.
func MustParseGraph(t *testing.T, src string) *rdf.Graph {
	t.Helper()
	triples, err := rdf.ParseTurtle(src, rdf.DefaultPrefixes())
	if err != nil {
		t.Fatalf("parse turtle fixture: %v", err)
	}
	g := rdf.NewGraph()
	for _, tr := range triples {
		g.Add(tr)
	}
	return g
}

// MustOntology parses Turtle source into an Ontology, failing the test
// on a syntax error. Import declarations are left unresolved; tests that
// need a closure attach resolved imports themselves.
func MustOntology(t *testing.T, src string) *ontology.Ontology {
	t.Helper()
	triples, err := rdf.ParseTurtle(src, rdf.DefaultPrefixes())
	if err != nil {
		t.Fatalf("parse ontology fixture: %v", err)
	}
	return ontology.FromTriples(triples)
}

// Resolve attaches an ontology as the resolved target of the import
// declaration with the given IRI, failing the test if no such
// declaration exists.
func Resolve(t *testing.T, ont *ontology.Ontology, iri string, imported *ontology.Ontology) {
	t.Helper()
	for i := range ont.Imports {
		if ont.Imports[i].IRI == iri {
			ont.Imports[i].Resolved = imported
			return
		}
	}
	t.Fatalf("no import declaration for <%s>", iri)
}
