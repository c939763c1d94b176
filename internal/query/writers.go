package query

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/ontokit/owlq/internal/rdf"
	"github.com/ontokit/owlq/internal/sparql"
)

// tableWriter serializes solution tables and booleans as delimited text.
// CSV cells hold display values (IRI and literal lexical forms); TSV
// cells hold full term syntax, mirroring the conventions of the W3C
// result formats these stand in for.
type tableWriter struct {
	name  string
	comma rune
}

func (t tableWriter) Name() string      { return t.name }
func (t tableWriter) Extension() string { return t.name }

func (t tableWriter) Accepts(kind sparql.ResultKind) bool {
	return kind == sparql.KindBindings || kind == sparql.KindBoolean
}

func (t tableWriter) Write(w io.Writer, res *sparql.Result, _ rdf.PrefixMap) error {
	var records [][]string
	switch res.Kind {
	case sparql.KindBoolean:
		records = [][]string{{fmt.Sprintf("%t", res.Bool)}}
	case sparql.KindBindings:
		header := make([]string, len(res.Vars))
		for i, v := range res.Vars {
			if t.comma == '\t' {
				// SPARQL-TSV headers carry the variable sigil.
				header[i] = "?" + v
			} else {
				header[i] = v
			}
		}
		records = append(records, header)
		for _, row := range res.Rows {
			cells := make([]string, len(row))
			for i, term := range row {
				cells[i] = t.cell(term)
			}
			records = append(records, cells)
		}
	}
	if t.comma == '\t' {
		// Term syntax contains quote characters that csv quoting would
		// mangle; TSV rows are written verbatim.
		for _, record := range records {
			if _, err := io.WriteString(w, strings.Join(record, "\t")+"\n"); err != nil {
				return err
			}
		}
		return nil
	}
	cw := csv.NewWriter(w)
	cw.Comma = t.comma
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func (t tableWriter) cell(term rdf.Term) string {
	if term == nil {
		return ""
	}
	if t.comma == '\t' {
		return rdf.RenderTerm(term)
	}
	switch v := term.(type) {
	case rdf.IRI:
		return v.Value
	case rdf.Literal:
		return v.Lexical
	case rdf.BlankNode:
		return "_:" + v.ID
	}
	return ""
}

// turtleWriter serializes result graphs as Turtle.
type turtleWriter struct{}

func (turtleWriter) Name() string      { return "ttl" }
func (turtleWriter) Extension() string { return "ttl" }

func (turtleWriter) Accepts(kind sparql.ResultKind) bool {
	return kind == sparql.KindGraph
}

func (turtleWriter) Write(w io.Writer, res *sparql.Result, prefixes rdf.PrefixMap) error {
	return rdf.WriteTurtle(w, res.Graph, prefixes)
}

// ntriplesWriter serializes result graphs as canonical N-Triples.
type ntriplesWriter struct{}

func (ntriplesWriter) Name() string      { return "nt" }
func (ntriplesWriter) Extension() string { return "nt" }

func (ntriplesWriter) Accepts(kind sparql.ResultKind) bool {
	return kind == sparql.KindGraph
}

func (ntriplesWriter) Write(w io.Writer, res *sparql.Result, _ rdf.PrefixMap) error {
	return rdf.WriteNTriples(w, res.Graph)
}

// jsonldWriter serializes result graphs as expanded JSON-LD. The graph is
// rendered as N-Quads text and converted by the JSON-LD processor, so
// term escaping stays in one place.
type jsonldWriter struct{}

func (jsonldWriter) Name() string      { return "jsonld" }
func (jsonldWriter) Extension() string { return "jsonld" }

func (jsonldWriter) Accepts(kind sparql.ResultKind) bool {
	return kind == sparql.KindGraph
}

func (jsonldWriter) Write(w io.Writer, res *sparql.Result, _ rdf.PrefixMap) error {
	var nquads strings.Builder
	for _, t := range res.Graph.Triples() {
		nquads.WriteString(rdf.RenderTriple(t))
		nquads.WriteByte('\n')
	}
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	doc, err := proc.FromRDF(nquads.String(), opts)
	if err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
