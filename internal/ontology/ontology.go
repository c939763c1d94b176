package ontology

import "github.com/ontokit/owlq/internal/rdf"

// Import is a single owl:imports declaration. Resolved is nil when the
// imported ontology could not be located; consumers that need the full
// closure treat that as an error.
type Import struct {
	IRI      string
	Resolved *Ontology
}

// Ontology is an in-memory ontology: its IRI, its own axioms (excluding
// the ontology header and import declarations, which are modeled
// explicitly), and its import declarations in document order.
//
// The axiom graph and the import list are owned by the Ontology; the
// query core only reads them.
type Ontology struct {
	// IRI is the ontology IRI. Empty for an anonymous ontology.
	IRI string

	// VersionIRI is the owl:versionIRI, if declared.
	VersionIRI string

	// Axioms holds the ontology's own triples. Header bookkeeping
	// (rdf:type owl:Ontology, owl:versionIRI, owl:imports) is kept out
	// of this graph and re-emitted on save.
	Axioms *rdf.Graph

	// Imports lists the import declarations in declaration order.
	Imports []Import
}

// New returns an empty ontology with the given IRI.
func New(iri string) *Ontology {
	return &Ontology{IRI: iri, Axioms: rdf.NewGraph()}
}

// FromTriples builds an Ontology from document-order triples: the first
// rdf:type owl:Ontology subject becomes the header, and its
// owl:versionIRI and owl:imports statements are lifted out of the axiom
// graph into the model. Import declarations keep document order and are
// returned unresolved; resolution is the loader's job.
func FromTriples(triples []rdf.Triple) *Ontology {
	ont := New("")
	var header rdf.Term
	for _, t := range triples {
		if t.P.Value == rdf.RDFType && t.O == (rdf.IRI{Value: rdf.OWLOntology}) {
			header = t.S
			break
		}
	}
	if iri, ok := header.(rdf.IRI); ok {
		ont.IRI = iri.Value
	}
	for _, t := range triples {
		if header != nil && t.S == header {
			switch {
			case t.P.Value == rdf.RDFType && t.O == (rdf.IRI{Value: rdf.OWLOntology}):
				continue
			case t.P.Value == rdf.OWLImports:
				if o, ok := t.O.(rdf.IRI); ok {
					ont.Imports = append(ont.Imports, Import{IRI: o.Value})
					continue
				}
			case t.P.Value == rdf.OWLVersionIRI:
				if o, ok := t.O.(rdf.IRI); ok {
					ont.VersionIRI = o.Value
					continue
				}
			}
		}
		ont.Axioms.Add(t)
	}
	return ont
}

// ImportIRIs returns the declared import IRIs in declaration order.
func (o *Ontology) ImportIRIs() []string {
	iris := make([]string, len(o.Imports))
	for i, imp := range o.Imports {
		iris[i] = imp.IRI
	}
	return iris
}

// Closure returns the ontology followed by every resolved ontology in its
// transitive import closure, in declaration-order depth-first traversal,
// each ontology appearing once. Unresolved imports are skipped; callers
// that require a complete closure must check for them separately (see
// UnresolvedImports).
func (o *Ontology) Closure() []*Ontology {
	var out []*Ontology
	seen := map[*Ontology]bool{}
	var walk func(*Ontology)
	walk = func(ont *Ontology) {
		if ont == nil || seen[ont] {
			return
		}
		seen[ont] = true
		out = append(out, ont)
		for _, imp := range ont.Imports {
			walk(imp.Resolved)
		}
	}
	walk(o)
	return out
}

// UnresolvedImports returns the IRIs of declarations anywhere in the
// transitive closure that have no resolved ontology, in traversal order.
func (o *Ontology) UnresolvedImports() []string {
	var missing []string
	for _, ont := range o.Closure() {
		for _, imp := range ont.Imports {
			if imp.Resolved == nil {
				missing = append(missing, imp.IRI)
			}
		}
	}
	return missing
}
