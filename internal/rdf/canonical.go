package rdf

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RenderTerm produces the canonical N-Triples rendering of a term.
// CRITICAL: This is the ONLY rendering that should be used for ordering
// and for the N-Quads text handed to the JSON-LD processor.
//
// Literal lexical forms are NFC normalized so that visually identical
// literals sort and compare identically regardless of the Unicode
// composition of their source file.
func RenderTerm(t Term) string {
	switch v := t.(type) {
	case IRI:
		return "<" + v.Value + ">"
	case BlankNode:
		return "_:" + v.ID
	case Literal:
		var b strings.Builder
		b.WriteByte('"')
		b.WriteString(escapeLiteral(norm.NFC.String(v.Lexical)))
		b.WriteByte('"')
		if v.Lang != "" {
			b.WriteByte('@')
			b.WriteString(v.Lang)
		} else if v.Datatype != "" && v.Datatype != XSDString {
			b.WriteString("^^<")
			b.WriteString(v.Datatype)
			b.WriteByte('>')
		}
		return b.String()
	default:
		// Unreachable: Term is sealed.
		return ""
	}
}

// RenderTriple produces the canonical N-Triples line for a triple,
// without a trailing newline.
func RenderTriple(t Triple) string {
	return RenderTerm(t.S) + " " + RenderTerm(t.P) + " " + RenderTerm(t.O) + " ."
}

// RenderQuad produces an N-Quads line. An empty graph name renders the
// triple into the default graph.
func RenderQuad(t Triple, graph string) string {
	if graph == DefaultGraphName {
		return RenderTriple(t)
	}
	return RenderTerm(t.S) + " " + RenderTerm(t.P) + " " + RenderTerm(t.O) + " <" + graph + "> ."
}

// CompareTerms orders terms by their canonical rendering.
func CompareTerms(a, b Term) int {
	return strings.Compare(RenderTerm(a), RenderTerm(b))
}

// CompareTriples orders triples subject-first, then predicate, then
// object, all by canonical term rendering.
func CompareTriples(a, b Triple) int {
	if c := CompareTerms(a.S, b.S); c != 0 {
		return c
	}
	if c := strings.Compare(a.P.Value, b.P.Value); c != 0 {
		return c
	}
	return CompareTerms(a.O, b.O)
}

// SortTriples sorts a triple slice into canonical order in place.
func SortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool {
		return CompareTriples(ts[i], ts[j]) < 0
	})
}

// escapeLiteral applies N-Triples string escaping.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
