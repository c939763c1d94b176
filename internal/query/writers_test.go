package query

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontokit/owlq/internal/rdf"
	"github.com/ontokit/owlq/internal/sparql"
)

func bindingsResult() *sparql.Result {
	return &sparql.Result{
		Kind: sparql.KindBindings,
		Vars: []string{"s", "label"},
		Rows: [][]rdf.Term{
			{rdf.IRI{Value: "http://example.com/a"}, rdf.NewLang("thing", "en")},
			{rdf.IRI{Value: "http://example.com/b"}, nil},
		},
	}
}

func graphResult() *sparql.Result {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{
		S: rdf.IRI{Value: "http://example.com/a"},
		P: rdf.IRI{Value: "http://example.com/p"},
		O: rdf.NewString("v"),
	})
	return &sparql.Result{Kind: sparql.KindGraph, Graph: g}
}

func writeWith(t *testing.T, name string, res *sparql.Result) string {
	t.Helper()
	w, ok := NewRegistry().Lookup(name)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, res, rdf.DefaultPrefixes()))
	return buf.String()
}

func TestCSVWriter(t *testing.T) {
	got := writeWith(t, "csv", bindingsResult())
	// CSV cells carry display values; unbound cells are empty.
	assert.Equal(t, "s,label\nhttp://example.com/a,thing\nhttp://example.com/b,\n", got)
}

func TestTSVWriter(t *testing.T) {
	got := writeWith(t, "tsv", bindingsResult())
	// TSV headers carry the ? sigil and cells full term syntax.
	assert.Equal(t,
		"?s\t?label\n<http://example.com/a>\t\"thing\"@en\n<http://example.com/b>\t\n",
		got)
}

func TestTableWriterBoolean(t *testing.T) {
	res := &sparql.Result{Kind: sparql.KindBoolean, Bool: true}
	assert.Equal(t, "true\n", writeWith(t, "csv", res))

	res.Bool = false
	assert.Equal(t, "false\n", writeWith(t, "csv", res))
}

func TestTurtleWriter(t *testing.T) {
	pm := rdf.DefaultPrefixes()
	pm["ex"] = "http://example.com/"
	w, _ := NewRegistry().Lookup("ttl")
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, graphResult(), pm))
	assert.Equal(t, "@prefix ex: <http://example.com/> .\n\nex:a ex:p \"v\" .\n", buf.String())
}

func TestNTriplesWriter(t *testing.T) {
	got := writeWith(t, "nt", graphResult())
	assert.Equal(t, "<http://example.com/a> <http://example.com/p> \"v\" .\n", got)
}

func TestJSONLDWriter(t *testing.T) {
	got := writeWith(t, "jsonld", graphResult())

	var doc []map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "http://example.com/a", doc[0]["@id"])

	values, ok := doc[0]["http://example.com/p"].([]any)
	require.True(t, ok)
	require.Len(t, values, 1)
	assert.Equal(t, map[string]any{"@value": "v"}, values[0])
}

func TestJSONLDWriterEmptyGraph(t *testing.T) {
	res := &sparql.Result{Kind: sparql.KindGraph, Graph: rdf.NewGraph()}
	got := writeWith(t, "jsonld", res)

	var doc []any
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Empty(t, doc)
}
