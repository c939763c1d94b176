package query

import (
	"fmt"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/rdf"
)

// Build converts an ontology into the dataset queries execute against.
// The ontology is only read.
//
// With useGraphs false, the whole import closure is flattened into the
// default graph: queries see one graph and per-import boundaries are
// deliberately lost. With useGraphs true, the root ontology's own axioms
// form the default graph and every directly or transitively imported
// ontology becomes a named graph keyed by its IRI, so queries can target
// an import with GRAPH <iri> { ... }.
//
// Build fails when any import declaration in the closure is unresolved:
// resolution is the loader's job, and a dataset built over a partial
// closure would silently answer queries on incomplete data.
func Build(ont *ontology.Ontology, useGraphs bool) (*rdf.Dataset, error) {
	if missing := ont.UnresolvedImports(); len(missing) > 0 {
		return nil, wrapError(CodeGraphConstruction,
			fmt.Sprintf("cannot build dataset: unresolved import <%s>", missing[0]), "", nil)
	}

	ds := rdf.NewDataset()
	closure := ont.Closure()
	if !useGraphs {
		for _, member := range closure {
			ds.Default.AddAll(member.Axioms)
		}
		return ds, nil
	}

	ds.Default.AddAll(ont.Axioms)
	for _, member := range closure[1:] {
		name := member.IRI
		if name == "" {
			// An anonymous import has no IRI to key its graph by.
			return nil, newError(CodeGraphConstruction,
				"cannot build named graphs: imported ontology has no IRI")
		}
		graph := rdf.NewGraph()
		graph.AddAll(member.Axioms)
		ds.SetNamed(name, graph)
	}
	return ds, nil
}
