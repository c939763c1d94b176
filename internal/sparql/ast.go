package sparql

import "github.com/ontokit/owlq/internal/rdf"

// Query is the parsed form of a SPARQL query.
//
// This is a sealed interface - only SelectQuery, AskQuery,
// ConstructQuery, and DescribeQuery implement it. The marker method
// pattern enables exhaustive type switches in the evaluator.
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// SelectQuery projects variable bindings into a solution table.
type SelectQuery struct {
	Distinct bool
	// Vars is the projection in declaration order; nil means "*"
	// (every variable in the pattern, in first-appearance order).
	Vars  []string
	Where *GroupPattern
	// Limit caps the number of rows; 0 means no limit.
	Limit int
}

func (*SelectQuery) queryNode() {}

// AskQuery tests whether the pattern has any solution.
type AskQuery struct {
	Where *GroupPattern
}

func (*AskQuery) queryNode() {}

// ConstructQuery instantiates a triple template once per solution.
type ConstructQuery struct {
	Template []TriplePattern
	Where    *GroupPattern
}

func (*ConstructQuery) queryNode() {}

// DescribeQuery collects every statement about its target resources.
// Targets may be IRIs or variables bound by the optional pattern.
type DescribeQuery struct {
	Targets []PatternTerm
	Where   *GroupPattern
}

func (*DescribeQuery) queryNode() {}

// PatternTerm is a position in a triple pattern: either a variable or a
// concrete RDF term. Sealed like Query.
type PatternTerm interface {
	patternTerm()
}

// Var is a SPARQL variable (?name or $name).
type Var struct {
	Name string
}

func (Var) patternTerm() {}

// TermPattern wraps a concrete term appearing in a pattern.
type TermPattern struct {
	Term rdf.Term
}

func (TermPattern) patternTerm() {}

// TriplePattern is one subject-predicate-object pattern.
type TriplePattern struct {
	S, P, O PatternTerm
}

func (TriplePattern) groupElement() {}

// GraphGroup scopes a nested group to a named graph. Name is an IRI or a
// variable; an unbound variable ranges over every named graph.
type GraphGroup struct {
	Name  PatternTerm
	Group *GroupPattern
}

func (*GraphGroup) groupElement() {}

// GroupElement is a single entry of a group pattern: a TriplePattern or
// a *GraphGroup. Sealed.
type GroupElement interface {
	groupElement()
}

// GroupPattern is an ordered conjunction of group elements. Order does
// not affect the solution set, only the join order the evaluator uses.
type GroupPattern struct {
	Elements []GroupElement
}

// Vars returns the variables of the group in first-appearance order,
// including graph-name variables.
func (g *GroupPattern) Vars() []string {
	var out []string
	seen := map[string]bool{}
	add := func(pt PatternTerm) {
		if v, ok := pt.(Var); ok && !seen[v.Name] {
			seen[v.Name] = true
			out = append(out, v.Name)
		}
	}
	var walk func(*GroupPattern)
	walk = func(gp *GroupPattern) {
		for _, el := range gp.Elements {
			switch e := el.(type) {
			case TriplePattern:
				add(e.S)
				add(e.P)
				add(e.O)
			case *GraphGroup:
				add(e.Name)
				walk(e.Group)
			}
		}
	}
	walk(g)
	return out
}
