package ontology

import (
	"io"
	"os"

	"github.com/ontokit/owlq/internal/rdf"
)

// HeaderGraph returns the bookkeeping triples the ontology model keeps
// out of the axiom graph: the header type statement, the version IRI, and
// one owl:imports statement per declaration.
//
// An anonymous ontology (empty IRI) has no header triples: there is no
// subject to hang them on.
func (o *Ontology) HeaderGraph() *rdf.Graph {
	g := rdf.NewGraph()
	if o.IRI == "" {
		return g
	}
	subject := rdf.IRI{Value: o.IRI}
	g.Add(rdf.Triple{S: subject, P: rdf.IRI{Value: rdf.RDFType}, O: rdf.IRI{Value: rdf.OWLOntology}})
	if o.VersionIRI != "" {
		g.Add(rdf.Triple{S: subject, P: rdf.IRI{Value: rdf.OWLVersionIRI}, O: rdf.IRI{Value: o.VersionIRI}})
	}
	for _, imp := range o.Imports {
		g.Add(rdf.Triple{S: subject, P: rdf.IRI{Value: rdf.OWLImports}, O: rdf.IRI{Value: imp.IRI}})
	}
	return g
}

// Write serializes the ontology as Turtle: header triples followed by the
// axiom graph, all in one document.
func (o *Ontology) Write(w io.Writer, prefixes rdf.PrefixMap) error {
	if prefixes == nil {
		prefixes = rdf.DefaultPrefixes()
	}
	doc := o.HeaderGraph()
	doc.AddAll(o.Axioms)
	return rdf.WriteTurtle(w, doc, prefixes)
}

// Save writes the ontology to a file, replacing any existing content.
func (o *Ontology) Save(path string, prefixes rdf.PrefixMap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := o.Write(f, prefixes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
