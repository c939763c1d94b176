package rdf

import "fmt"

// Term is a value that can appear in a triple.
//
// This is a sealed interface - only IRI, BlankNode, and Literal implement
// it. The marker method pattern prevents external implementations and
// enables exhaustive type switches in the serializers and the query
// evaluator.
//
// All three implementations are comparable value types, so Terms (and
// Triples of Terms) can be used directly as map keys.
type Term interface {
	termNode() // Marker method - seals interface to this package

	// String returns a human-readable rendering. For the canonical
	// N-Triples rendering used for ordering and hashing, use RenderTerm.
	String() string
}

// IRI is an RDF IRI reference.
type IRI struct {
	Value string
}

func (IRI) termNode() {}

// String returns the IRI in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// BlankNode is a graph-scoped anonymous node.
type BlankNode struct {
	ID string
}

func (BlankNode) termNode() {}

// String returns the blank node label prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal is an RDF literal: a lexical form with either a language tag or
// a datatype IRI. A literal never carries both; a plain literal has
// Datatype xsd:string and no language tag.
type Literal struct {
	Lexical  string
	Datatype string
	Lang     string
}

func (Literal) termNode() {}

// String returns a Turtle-style rendering of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype != "" && l.Datatype != XSDString {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// NewString returns a plain string literal.
func NewString(lexical string) Literal {
	return Literal{Lexical: lexical, Datatype: XSDString}
}

// NewLang returns a language-tagged literal.
func NewLang(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Lang: lang}
}

// NewTyped returns a literal with an explicit datatype IRI.
func NewTyped(lexical, datatype string) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// Triple is a single RDF statement. The predicate is constrained to an IRI
// by RDF semantics; subject and object are any Term.
type Triple struct {
	S Term
	P IRI
	O Term
}

// String returns a Turtle-style rendering of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.S, t.P, t.O)
}
