package sparql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ontokit/owlq/internal/rdf"
)

// binding maps variable names to the terms they are bound to.
type binding map[string]rdf.Term

func (b binding) extend(name string, t rdf.Term) binding {
	out := make(binding, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	out[name] = t
	return out
}

// Eval runs a parsed query against a dataset and returns its Result.
// The dataset is only read; evaluation is deterministic for a given
// dataset (see package doc).
func Eval(ds *rdf.Dataset, q Query) (*Result, error) {
	switch query := q.(type) {
	case *SelectQuery:
		return evalSelect(ds, query)
	case *AskQuery:
		sols, err := solutions(ds, query.Where)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindBoolean, Bool: len(sols) > 0}, nil
	case *ConstructQuery:
		return evalConstruct(ds, query)
	case *DescribeQuery:
		return evalDescribe(ds, query)
	default:
		return nil, fmt.Errorf("sparql: unsupported query type %T", q)
	}
}

func evalSelect(ds *rdf.Dataset, q *SelectQuery) (*Result, error) {
	sols, err := solutions(ds, q.Where)
	if err != nil {
		return nil, err
	}
	vars := q.Vars
	if vars == nil {
		vars = q.Where.Vars()
	}
	rows := make([][]rdf.Term, 0, len(sols))
	for _, sol := range sols {
		row := make([]rdf.Term, len(vars))
		for i, name := range vars {
			row[i] = sol[name]
		}
		rows = append(rows, row)
	}
	sortRows(rows)
	if q.Distinct {
		rows = dedupeRows(rows)
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return &Result{Kind: KindBindings, Vars: vars, Rows: rows}, nil
}

func evalConstruct(ds *rdf.Dataset, q *ConstructQuery) (*Result, error) {
	sols, err := solutions(ds, q.Where)
	if err != nil {
		return nil, err
	}
	g := rdf.NewGraph()
	for _, sol := range sols {
		// Blank nodes in the template mint a fresh node per solution.
		fresh := map[string]rdf.BlankNode{}
		for _, tp := range q.Template {
			t, ok := instantiate(tp, sol, fresh)
			if ok {
				g.Add(t)
			}
		}
	}
	return &Result{Kind: KindGraph, Graph: g}, nil
}

func evalDescribe(ds *rdf.Dataset, q *DescribeQuery) (*Result, error) {
	var sols []binding
	if q.Where != nil {
		var err error
		sols, err = solutions(ds, q.Where)
		if err != nil {
			return nil, err
		}
	}
	var subjects []rdf.Term
	for _, target := range q.Targets {
		switch t := target.(type) {
		case TermPattern:
			subjects = append(subjects, t.Term)
		case Var:
			for _, sol := range sols {
				if bound, ok := sol[t.Name]; ok {
					subjects = append(subjects, bound)
				}
			}
		}
	}
	source := ds.Union()
	g := rdf.NewGraph()
	for _, s := range subjects {
		for _, t := range source.Match(s, nil, nil) {
			g.Add(t)
		}
	}
	return &Result{Kind: KindGraph, Graph: g}, nil
}

// solutions computes every binding satisfying the group against the
// dataset's default graph, in a deterministic order.
func solutions(ds *rdf.Dataset, group *GroupPattern) ([]binding, error) {
	var out []binding
	err := solveGroup(ds, ds.Default, group.Elements, binding{}, func(b binding) {
		out = append(out, b)
	})
	return out, err
}

func solveGroup(ds *rdf.Dataset, g *rdf.Graph, elems []GroupElement, b binding, emit func(binding)) error {
	if len(elems) == 0 {
		emit(b)
		return nil
	}
	head, tail := elems[0], elems[1:]
	switch el := head.(type) {
	case TriplePattern:
		for _, t := range candidates(g, el, b) {
			next, ok := unify(el, t, b)
			if !ok {
				continue
			}
			if err := solveGroup(ds, g, tail, next, emit); err != nil {
				return err
			}
		}
		return nil
	case *GraphGroup:
		return solveGraphGroup(ds, el, tail, b, emit)
	default:
		return fmt.Errorf("sparql: unsupported group element %T", head)
	}
}

func solveGraphGroup(ds *rdf.Dataset, gg *GraphGroup, tail []GroupElement, b binding, emit func(binding)) error {
	// Resolve the graph name: a constant IRI, a bound variable, or an
	// unbound variable ranging over every named graph.
	var names []string
	var bindVar string
	switch name := gg.Name.(type) {
	case TermPattern:
		iri, ok := name.Term.(rdf.IRI)
		if !ok {
			return fmt.Errorf("sparql: GRAPH name must be an IRI or variable")
		}
		names = []string{iri.Value}
	case Var:
		if bound, ok := b[name.Name]; ok {
			iri, isIRI := bound.(rdf.IRI)
			if !isIRI {
				return nil // bound to a non-IRI: no solutions
			}
			names = []string{iri.Value}
		} else {
			names = ds.GraphNames()
			bindVar = name.Name
		}
	}
	for _, graphName := range names {
		target := ds.Named(graphName)
		if target == nil {
			continue
		}
		scoped := b
		if bindVar != "" {
			scoped = b.extend(bindVar, rdf.IRI{Value: graphName})
		}
		var innerSols []binding
		err := solveGroup(ds, target, gg.Group.Elements, scoped, func(inner binding) {
			innerSols = append(innerSols, inner)
		})
		if err != nil {
			return err
		}
		// Inner solutions continue with the remaining elements against
		// the original default graph.
		for _, inner := range innerSols {
			if err := solveGroup(ds, ds.Default, tail, inner, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

// candidates narrows the graph to triples that can match the pattern
// under the current binding, using ground positions as an index probe.
func candidates(g *rdf.Graph, tp TriplePattern, b binding) []rdf.Triple {
	s := groundTerm(tp.S, b)
	o := groundTerm(tp.O, b)
	var p *rdf.IRI
	if pt := groundTerm(tp.P, b); pt != nil {
		if iri, ok := pt.(rdf.IRI); ok {
			p = &iri
		} else {
			return nil // predicate bound to a non-IRI can never match
		}
	}
	return g.Match(s, p, o)
}

// groundTerm returns the concrete term a pattern position is fixed to
// under the binding, or nil when it is still free.
func groundTerm(pt PatternTerm, b binding) rdf.Term {
	switch v := pt.(type) {
	case TermPattern:
		return v.Term
	case Var:
		if bound, ok := b[v.Name]; ok {
			return bound
		}
	}
	return nil
}

// unify extends the binding so the pattern matches the triple, or
// reports that it cannot.
func unify(tp TriplePattern, t rdf.Triple, b binding) (binding, bool) {
	next := b
	var ok bool
	if next, ok = unifyTerm(tp.S, t.S, next); !ok {
		return nil, false
	}
	if next, ok = unifyTerm(tp.P, t.P, next); !ok {
		return nil, false
	}
	if next, ok = unifyTerm(tp.O, t.O, next); !ok {
		return nil, false
	}
	return next, true
}

func unifyTerm(pt PatternTerm, actual rdf.Term, b binding) (binding, bool) {
	switch v := pt.(type) {
	case TermPattern:
		return b, v.Term == actual
	case Var:
		if bound, ok := b[v.Name]; ok {
			return b, bound == actual
		}
		return b.extend(v.Name, actual), true
	default:
		return nil, false
	}
}

// instantiate grounds a template pattern with a solution. Template blank
// nodes map to solution-scoped fresh nodes. Patterns left non-ground, or
// ground to an ill-formed triple (literal subject, non-IRI predicate),
// are skipped per CONSTRUCT semantics.
func instantiate(tp TriplePattern, sol binding, fresh map[string]rdf.BlankNode) (rdf.Triple, bool) {
	resolve := func(pt PatternTerm) rdf.Term {
		switch v := pt.(type) {
		case TermPattern:
			if bn, ok := v.Term.(rdf.BlankNode); ok {
				minted, seen := fresh[bn.ID]
				if !seen {
					minted = rdf.BlankNode{ID: "b" + strings.ReplaceAll(uuid.NewString(), "-", "")}
					fresh[bn.ID] = minted
				}
				return minted
			}
			return v.Term
		case Var:
			return sol[v.Name]
		}
		return nil
	}
	s := resolve(tp.S)
	p := resolve(tp.P)
	o := resolve(tp.O)
	if s == nil || p == nil || o == nil {
		return rdf.Triple{}, false
	}
	if _, isLit := s.(rdf.Literal); isLit {
		return rdf.Triple{}, false
	}
	pred, ok := p.(rdf.IRI)
	if !ok {
		return rdf.Triple{}, false
	}
	return rdf.Triple{S: s, P: pred, O: o}, true
}

// sortRows orders rows canonically, comparing columns left to right by
// rendered term. Unbound cells sort first.
func sortRows(rows [][]rdf.Term) {
	sort.Slice(rows, func(i, j int) bool {
		return compareRows(rows[i], rows[j]) < 0
	})
}

func compareRows(a, b []rdf.Term) int {
	for i := range a {
		if i >= len(b) {
			return 1
		}
		av, bv := renderCell(a[i]), renderCell(b[i])
		if c := strings.Compare(av, bv); c != 0 {
			return c
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}

func renderCell(t rdf.Term) string {
	if t == nil {
		return ""
	}
	return rdf.RenderTerm(t)
}

// dedupeRows drops adjacent duplicates from an already-sorted row slice.
func dedupeRows(rows [][]rdf.Term) [][]rdf.Term {
	var out [][]rdf.Term
	for _, row := range rows {
		if len(out) > 0 && compareRows(out[len(out)-1], row) == 0 {
			continue
		}
		out = append(out, row)
	}
	return out
}
