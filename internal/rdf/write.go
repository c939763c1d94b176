package rdf

import (
	"bufio"
	"io"
)

// WriteNTriples serializes the graph as canonical N-Triples, one sorted
// line per triple.
func WriteNTriples(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	for _, t := range g.Triples() {
		if _, err := bw.WriteString(RenderTriple(t) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTurtle serializes the graph as Turtle: a sorted @prefix header for
// every prefix actually used, then one sorted line per triple with IRIs
// shrunk to prefixed names where possible.
func WriteTurtle(w io.Writer, g *Graph, prefixes PrefixMap) error {
	triples := g.Triples()
	used := usedPrefixes(triples, prefixes)

	bw := bufio.NewWriter(w)
	for _, label := range used.Labels() {
		if _, err := bw.WriteString("@prefix " + label + ": <" + used[label] + "> .\n"); err != nil {
			return err
		}
	}
	if len(used) > 0 && len(triples) > 0 {
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	for _, t := range triples {
		line := renderTurtleTerm(t.S, prefixes) + " " +
			renderTurtlePredicate(t.P, prefixes) + " " +
			renderTurtleTerm(t.O, prefixes) + " .\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// usedPrefixes filters the prefix map down to the labels the serialized
// triples will actually reference.
func usedPrefixes(triples []Triple, prefixes PrefixMap) PrefixMap {
	used := PrefixMap{}
	note := func(t Term) {
		iri, ok := t.(IRI)
		if !ok {
			if lit, isLit := t.(Literal); isLit && lit.Datatype != "" && lit.Datatype != XSDString {
				iri = IRI{Value: lit.Datatype}
			} else {
				return
			}
		}
		if pname, ok := prefixes.Shrink(iri.Value); ok {
			label, _, _ := cutLabel(pname)
			used[label] = prefixes[label]
		}
	}
	for _, t := range triples {
		note(t.S)
		// rdf:type renders as "a" and needs no prefix.
		if t.P.Value != RDFType {
			note(t.P)
		}
		note(t.O)
	}
	return used
}

func cutLabel(pname string) (label, local string, ok bool) {
	for i := 0; i < len(pname); i++ {
		if pname[i] == ':' {
			return pname[:i], pname[i+1:], true
		}
	}
	return "", "", false
}

func renderTurtleTerm(t Term, prefixes PrefixMap) string {
	switch v := t.(type) {
	case IRI:
		if pname, ok := prefixes.Shrink(v.Value); ok {
			return pname
		}
		return RenderTerm(v)
	case Literal:
		if v.Lang == "" && v.Datatype != "" && v.Datatype != XSDString {
			if pname, ok := prefixes.Shrink(v.Datatype); ok {
				plain := Literal{Lexical: v.Lexical, Datatype: XSDString}
				return RenderTerm(plain) + "^^" + pname
			}
		}
		return RenderTerm(v)
	default:
		return RenderTerm(t)
	}
}

func renderTurtlePredicate(p IRI, prefixes PrefixMap) string {
	if p.Value == RDFType {
		return "a"
	}
	return renderTurtleTerm(p, prefixes)
}
