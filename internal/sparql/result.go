package sparql

import "github.com/ontokit/owlq/internal/rdf"

// ResultKind tags the variant a Result carries.
type ResultKind int

const (
	// KindBindings is a solution table (SELECT).
	KindBindings ResultKind = iota
	// KindBoolean is a yes/no answer (ASK).
	KindBoolean
	// KindGraph is a result graph (CONSTRUCT, DESCRIBE).
	KindGraph
)

// String returns the kind's name for diagnostics.
func (k ResultKind) String() string {
	switch k {
	case KindBindings:
		return "bindings"
	case KindBoolean:
		return "boolean"
	case KindGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// Result is the tagged union a query evaluates to. Exactly one of the
// payload fields is meaningful, selected by Kind:
//
//   - KindBindings: Vars and Rows
//   - KindBoolean:  Bool
//   - KindGraph:    Graph
//
// Rows are aligned with Vars column-for-column; a nil cell is an unbound
// variable. Rows are in canonical order and Graph enumerates canonically,
// so serializing a Result is deterministic.
type Result struct {
	Kind  ResultKind
	Vars  []string
	Rows  [][]rdf.Term
	Bool  bool
	Graph *rdf.Graph
}
