package rdf

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	rdfgo "github.com/geoknoesis/rdf-go/rdf"
)

// ParseError reports a Turtle syntax error with its source position.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("turtle: line %d: %s", e.Line, e.Message)
}

// ParseTurtle parses a Turtle document and returns its triples in
// document order. Document order matters to the ontology loader, which
// derives the order of import declarations from it; callers that only
// need set semantics can pour the slice into a Graph.
//
// The given prefix map seeds prefixed-name resolution. The underlying
// decoder only knows prefixes declared in the document, so the seeds are
// injected as a directive preamble; directives in the document shadow
// them, and error lines are shifted back into the caller's coordinates.
func ParseTurtle(src string, prefixes PrefixMap) ([]Triple, error) {
	preamble, seeded := prefixPreamble(prefixes)
	var quads []rdfgo.Statement
	err := rdfgo.Parse(context.Background(),
		strings.NewReader(preamble+src), rdfgo.FormatTurtle,
		func(st rdfgo.Statement) error {
			quads = append(quads, st)
			return nil
		})
	if err != nil {
		return nil, turtleError(err, seeded)
	}
	triples := make([]Triple, 0, len(quads))
	for _, q := range quads {
		t, err := importTriple(q)
		if err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// prefixPreamble renders the seed prefixes as @prefix directives, one per
// line in sorted label order. The line count feeds error translation.
func prefixPreamble(prefixes PrefixMap) (string, int) {
	if len(prefixes) == 0 {
		return "", 0
	}
	labels := make([]string, 0, len(prefixes))
	for label := range prefixes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	var b strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&b, "@prefix %s: <%s> .\n", label, prefixes[label])
	}
	return b.String(), len(labels)
}

// turtleError converts a decoder error into a ParseError whose line
// number refers to the caller's document, not the preamble-extended one.
func turtleError(err error, seeded int) error {
	line := 1
	message := err.Error()
	var perr *rdfgo.ParseError
	if errors.As(err, &perr) {
		if perr.Line > seeded {
			line = perr.Line - seeded
		}
		if perr.Err != nil {
			message = perr.Err.Error()
		}
	}
	return &ParseError{Line: line, Message: message}
}

func importTriple(q rdfgo.Statement) (Triple, error) {
	s, err := importTerm(q.S)
	if err != nil {
		return Triple{}, err
	}
	o, err := importTerm(q.O)
	if err != nil {
		return Triple{}, err
	}
	return Triple{S: s, P: IRI{Value: q.P.Value}, O: o}, nil
}

// importTerm maps a decoder term onto the sealed Term model. Plain
// literals arrive with an empty datatype and are normalized to
// xsd:string, matching NewString.
func importTerm(t rdfgo.Term) (Term, error) {
	switch t := t.(type) {
	case rdfgo.IRI:
		return IRI{Value: t.Value}, nil
	case rdfgo.BlankNode:
		return BlankNode{ID: t.ID}, nil
	case rdfgo.Literal:
		switch {
		case t.Lang != "":
			return NewLang(t.Lexical, t.Lang), nil
		case t.Datatype.Value == "" || t.Datatype.Value == XSDString:
			return NewString(t.Lexical), nil
		default:
			return NewTyped(t.Lexical, t.Datatype.Value), nil
		}
	default:
		return nil, fmt.Errorf("turtle: unsupported term %s", t.String())
	}
}
