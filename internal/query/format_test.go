package query

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontokit/owlq/internal/sparql"
)

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"csv", "jsonld", "nt", "tsv", "ttl"}, NewRegistry().Names())
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	w, ok := r.Lookup("csv")
	require.True(t, ok)
	assert.Equal(t, "csv", w.Name())

	// Case and surrounding space are forgiven.
	_, ok = r.Lookup(" TTL ")
	assert.True(t, ok)

	_, ok = r.Lookup("xml")
	assert.False(t, ok)
}

func TestRegistryAccepts(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		format   string
		bindings bool
		boolean  bool
		graph    bool
	}{
		{"csv", true, true, false},
		{"tsv", true, true, false},
		{"ttl", false, false, true},
		{"nt", false, false, true},
		{"jsonld", false, false, true},
	}
	for _, tc := range cases {
		w, ok := r.Lookup(tc.format)
		require.True(t, ok, tc.format)
		assert.Equal(t, tc.bindings, w.Accepts(sparql.KindBindings), tc.format)
		assert.Equal(t, tc.boolean, w.Accepts(sparql.KindBoolean), tc.format)
		assert.Equal(t, tc.graph, w.Accepts(sparql.KindGraph), tc.format)
	}
}

func TestResolvePriority(t *testing.T) {
	r := NewRegistry()
	construct := `CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }`

	// Explicit format beats the output extension and the query form.
	w, err := r.Resolve(construct, Job{Output: "out.csv"}, "nt")
	require.NoError(t, err)
	assert.Equal(t, "nt", w.Name())

	// Output extension beats the query form.
	w, err = r.Resolve(construct, Job{Output: "out.jsonld"}, "")
	require.NoError(t, err)
	assert.Equal(t, "jsonld", w.Name())

	// The query form is the last resort.
	w, err = r.Resolve(construct, Job{}, "")
	require.NoError(t, err)
	assert.Equal(t, "ttl", w.Name())

	w, err = r.Resolve(`SELECT * WHERE { ?s ?p ?o }`, Job{}, "")
	require.NoError(t, err)
	assert.Equal(t, "csv", w.Name())

	w, err = r.Resolve(`DESCRIBE <http://example.com/a>`, Job{}, "")
	require.NoError(t, err)
	assert.Equal(t, "ttl", w.Name())

	w, err = r.Resolve(`ASK { ?s ?p ?o }`, Job{}, "")
	require.NoError(t, err)
	assert.Equal(t, "csv", w.Name())
}

func TestResolveUnknownFormat(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("SELECT * WHERE { ?s ?p ?o }", Job{}, "xml")
	require.Error(t, err)
	assert.Equal(t, CodeUnknownFormat, CodeOf(err))
	assert.True(t, IsUsageError(err))

	_, err = r.Resolve("SELECT * WHERE { ?s ?p ?o }", Job{Output: "out.xml"}, "")
	require.Error(t, err)
	assert.Equal(t, CodeUnknownFormat, CodeOf(err))
}

func TestOutputPath(t *testing.T) {
	r := NewRegistry()
	csvW, _ := r.Lookup("csv")
	ttlW, _ := r.Lookup("ttl")

	// An explicit output is taken verbatim.
	assert.Equal(t, "results/x.csv",
		OutputPath(Job{Path: "q.rq", Output: "results/x.csv"}, csvW, "elsewhere"))

	// Synthesized: query base name + writer extension, under outputDir.
	assert.Equal(t, filepath.Join("out", "classes.csv"),
		OutputPath(Job{Path: "queries/classes.rq"}, csvW, "out"))
	assert.Equal(t, "classes.ttl",
		OutputPath(Job{Path: "queries/classes.rq"}, ttlW, ""))

	// An inline job falls back to a fixed base name.
	assert.Equal(t, "query.csv", OutputPath(Job{Text: "ASK {}"}, csvW, ""))
}
