// Package rdf implements the triple-level data model the rest of owlq is
// built on.
//
// The model is deliberately small: a sealed Term interface (IRI, BlankNode,
// Literal), a Triple of terms, a mutable Graph (a set of triples), and a
// Dataset (a default graph plus zero or more named graphs).
//
// DETERMINISM:
//
// Graphs are sets, but every enumeration surface returns triples in
// canonical order (see canonical.go). Query evaluation, serialization, and
// tests all depend on this: the same graph always enumerates the same way,
// so result files are byte-stable across runs.
//
// Canonical term rendering follows N-Triples syntax with NFC-normalized
// literal forms. This rendering doubles as the sort key and as the wire
// form fed to the JSON-LD processor.
//
// Turtle input is decoded through github.com/geoknoesis/rdf-go, with the
// caller's prefix map injected ahead of the document so undeclared
// prefixes like owl: still resolve. The Turtle/N-Triples writers are
// local: output is canonical (sorted, NFC-normalized, prefix-shrunk), a
// guarantee the general-purpose encoder does not make.
package rdf
