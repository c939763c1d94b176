// Package ontology models an OWL ontology at the level owlq needs: an
// ontology IRI, a set of axiom triples, and an ordered list of import
// declarations, each optionally resolved to another in-memory Ontology.
//
// The package also owns file I/O for ontologies (loading Turtle documents
// and resolving their import closures through a catalog) and the
// deterministic closure traversal the dataset builder consumes. Loading is
// a collaborator concern: the query core only ever sees already-loaded
// Ontology values.
package ontology
