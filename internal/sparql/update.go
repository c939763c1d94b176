package sparql

import (
	"fmt"

	"github.com/ontokit/owlq/internal/rdf"
)

// Update is the parsed form of a single SPARQL UPDATE operation.
//
// Sealed like Query: InsertData, DeleteData, DeleteWhere, and Modify are
// the only implementations.
type Update interface {
	updateNode()
}

// InsertData adds ground triples to the graph.
type InsertData struct {
	Triples []rdf.Triple
}

func (*InsertData) updateNode() {}

// DeleteData removes ground triples from the graph. Removing an absent
// triple is a no-op per SPARQL semantics.
type DeleteData struct {
	Triples []rdf.Triple
}

func (*DeleteData) updateNode() {}

// DeleteWhere removes every instantiation of its pattern: the pattern
// doubles as the delete template.
type DeleteWhere struct {
	Where *GroupPattern
}

func (*DeleteWhere) updateNode() {}

// Modify is the general DELETE/INSERT ... WHERE form. Either template may
// be empty. Both templates are instantiated against the solutions of
// Where computed over the unmodified graph; deletions apply before
// insertions.
type Modify struct {
	Delete []TriplePattern
	Insert []TriplePattern
	Where  *GroupPattern
}

func (*Modify) updateNode() {}

// ParseUpdate parses a SPARQL UPDATE request: one or more operations
// separated by ';'. The prefix map seeds prefixed-name resolution exactly
// as in Parse.
func ParseUpdate(text string, prefixes rdf.PrefixMap) ([]Update, error) {
	p, err := newParser(text, prefixes)
	if err != nil {
		return nil, err
	}
	var ops []Update
	for {
		if err := p.prologue(); err != nil {
			return nil, err
		}
		if p.cur().kind == tokEOF {
			break
		}
		op, err := p.updateOperation()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		if p.cur().isPunct(";") {
			p.pos++
			continue
		}
		if p.cur().kind != tokEOF {
			return nil, p.errf("unexpected trailing %s", p.cur().describe())
		}
	}
	if len(ops) == 0 {
		return nil, &ParseError{Line: 1, Message: "empty update request"}
	}
	return ops, nil
}

func (p *parser) updateOperation() (Update, error) {
	switch {
	case p.cur().isKeyword("INSERT"):
		p.pos++
		if p.cur().isKeyword("DATA") {
			p.pos++
			triples, err := p.groundTriples()
			if err != nil {
				return nil, err
			}
			return &InsertData{Triples: triples}, nil
		}
		insert, err := p.bracedTemplate()
		if err != nil {
			return nil, err
		}
		where, err := p.whereClause()
		if err != nil {
			return nil, err
		}
		return &Modify{Insert: insert, Where: where}, nil
	case p.cur().isKeyword("DELETE"):
		p.pos++
		switch {
		case p.cur().isKeyword("DATA"):
			p.pos++
			triples, err := p.groundTriples()
			if err != nil {
				return nil, err
			}
			return &DeleteData{Triples: triples}, nil
		case p.cur().isKeyword("WHERE"):
			p.pos++
			group, err := p.groupPattern()
			if err != nil {
				return nil, err
			}
			return &DeleteWhere{Where: group}, nil
		default:
			del, err := p.bracedTemplate()
			if err != nil {
				return nil, err
			}
			var insert []TriplePattern
			if p.cur().isKeyword("INSERT") {
				p.pos++
				insert, err = p.bracedTemplate()
				if err != nil {
					return nil, err
				}
			}
			where, err := p.whereClause()
			if err != nil {
				return nil, err
			}
			return &Modify{Delete: del, Insert: insert, Where: where}, nil
		}
	default:
		return nil, p.errf("expected INSERT or DELETE, got %s", p.cur().describe())
	}
}

func (p *parser) bracedTemplate() ([]TriplePattern, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	template, err := p.triplesBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return template, nil
}

func (p *parser) whereClause() (*GroupPattern, error) {
	if !p.cur().isKeyword("WHERE") {
		return nil, p.errf("expected WHERE, got %s", p.cur().describe())
	}
	p.pos++
	return p.groupPattern()
}

// groundTriples parses a braced template and requires every pattern to be
// ground (no variables). Used by the DATA forms.
func (p *parser) groundTriples() ([]rdf.Triple, error) {
	line := p.cur().line
	template, err := p.bracedTemplate()
	if err != nil {
		return nil, err
	}
	triples := make([]rdf.Triple, 0, len(template))
	for _, tp := range template {
		t, ok := groundPattern(tp)
		if !ok {
			return nil, &ParseError{Line: line, Message: "variables are not allowed in DATA blocks"}
		}
		triples = append(triples, t)
	}
	return triples, nil
}

func groundPattern(tp TriplePattern) (rdf.Triple, bool) {
	s, okS := tp.S.(TermPattern)
	pr, okP := tp.P.(TermPattern)
	o, okO := tp.O.(TermPattern)
	if !okS || !okP || !okO {
		return rdf.Triple{}, false
	}
	pred, ok := pr.Term.(rdf.IRI)
	if !ok {
		return rdf.Triple{}, false
	}
	if _, isLit := s.Term.(rdf.Literal); isLit {
		return rdf.Triple{}, false
	}
	return rdf.Triple{S: s.Term, P: pred, O: o.Term}, true
}

// Apply executes one update operation against the graph, mutating it in
// place. The caller owns sequencing and atomicity across operations.
func Apply(g *rdf.Graph, u Update) error {
	switch op := u.(type) {
	case *InsertData:
		for _, t := range op.Triples {
			g.Add(t)
		}
		return nil
	case *DeleteData:
		for _, t := range op.Triples {
			g.Remove(t)
		}
		return nil
	case *DeleteWhere:
		template := patternsOf(op.Where)
		return applyModify(g, template, nil, op.Where)
	case *Modify:
		return applyModify(g, op.Delete, op.Insert, op.Where)
	default:
		return fmt.Errorf("sparql: unsupported update type %T", u)
	}
}

// applyModify computes the solutions of where over the unmodified graph,
// then applies deletions followed by insertions.
func applyModify(g *rdf.Graph, del, insert []TriplePattern, where *GroupPattern) error {
	ds := rdf.NewDataset()
	ds.Default = g
	sols, err := solutions(ds, where)
	if err != nil {
		return err
	}
	var toDelete, toInsert []rdf.Triple
	for _, sol := range sols {
		fresh := map[string]rdf.BlankNode{}
		for _, tp := range del {
			// Blank nodes are not allowed in delete templates; patterns
			// that would mint one are skipped rather than deleting an
			// arbitrary node.
			if t, ok := instantiateGroundOnly(tp, sol); ok {
				toDelete = append(toDelete, t)
			}
		}
		for _, tp := range insert {
			if t, ok := instantiate(tp, sol, fresh); ok {
				toInsert = append(toInsert, t)
			}
		}
	}
	for _, t := range toDelete {
		g.Remove(t)
	}
	for _, t := range toInsert {
		g.Add(t)
	}
	return nil
}

// instantiateGroundOnly grounds a delete-template pattern: variables come
// from the solution, blank nodes disqualify the pattern.
func instantiateGroundOnly(tp TriplePattern, sol binding) (rdf.Triple, bool) {
	resolve := func(pt PatternTerm) (rdf.Term, bool) {
		switch v := pt.(type) {
		case TermPattern:
			if _, isBlank := v.Term.(rdf.BlankNode); isBlank {
				return nil, false
			}
			return v.Term, true
		case Var:
			t, ok := sol[v.Name]
			return t, ok
		}
		return nil, false
	}
	s, okS := resolve(tp.S)
	p, okP := resolve(tp.P)
	o, okO := resolve(tp.O)
	if !okS || !okP || !okO {
		return rdf.Triple{}, false
	}
	pred, ok := p.(rdf.IRI)
	if !ok {
		return rdf.Triple{}, false
	}
	return rdf.Triple{S: s, P: pred, O: o}, true
}

// patternsOf flattens a group into its triple patterns. DELETE WHERE does
// not support GRAPH blocks; they contribute no delete template.
func patternsOf(group *GroupPattern) []TriplePattern {
	var out []TriplePattern
	for _, el := range group.Elements {
		if tp, ok := el.(TriplePattern); ok {
			out = append(out, tp)
		}
	}
	return out
}
