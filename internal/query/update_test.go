package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontokit/owlq/internal/rdf"
	"github.com/ontokit/owlq/internal/testutil"
)

func TestLoadUpdateJobs(t *testing.T) {
	dir := t.TempDir()
	one := writeQuery(t, dir, "one.ru", `INSERT DATA { <http://e.com/a> <http://e.com/p> <http://e.com/b> }`)
	two := writeQuery(t, dir, "two.ru", `DELETE DATA { <http://e.com/a> <http://e.com/p> <http://e.com/b> }`)

	jobs, err := LoadUpdateJobs([]string{one, two})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, one, jobs[0].Label)
	assert.Contains(t, jobs[0].Text, "INSERT DATA")
	assert.Contains(t, jobs[1].Text, "DELETE DATA")
}

func TestLoadUpdateJobsMissingFileFailsBeforeAnyRead(t *testing.T) {
	dir := t.TempDir()
	one := writeQuery(t, dir, "one.ru", `INSERT DATA { <http://e.com/a> <http://e.com/p> <http://e.com/b> }`)

	_, err := LoadUpdateJobs([]string{one, filepath.Join(dir, "absent.ru")})
	require.Error(t, err)
	assert.Equal(t, CodeMissingFile, CodeOf(err))
	assert.Contains(t, err.Error(), "absent.ru")
}

func TestApplyUpdatesEmptyIsUsageError(t *testing.T) {
	_, err := ApplyUpdates(fixtureOntology(t), nil, nil)
	require.Error(t, err)
	assert.Equal(t, CodeMissingQuery, CodeOf(err))
}

func TestApplyUpdatesInsert(t *testing.T) {
	ont := fixtureOntology(t)
	before := ont.Axioms.Len()

	updated, err := ApplyUpdates(ont, []UpdateJob{{
		Label: "add.ru",
		Text: `
PREFIX ex: <http://example.com/>
INSERT DATA { ex:d a ex:Widget }`,
	}}, nil)
	require.NoError(t, err)

	// The input ontology is untouched; the result carries the change.
	assert.Equal(t, before, ont.Axioms.Len())
	assert.True(t, updated.Axioms.Has(rdf.Triple{
		S: rdf.IRI{Value: "http://example.com/d"},
		P: rdf.IRI{Value: rdf.RDFType},
		O: rdf.IRI{Value: "http://example.com/Widget"},
	}))
}

func TestApplyUpdatesFlattensClosure(t *testing.T) {
	// The update sees imported axioms: deleting a triple that lives in
	// the import must succeed against the flattened graph.
	updated, err := ApplyUpdates(fixtureOntology(t), []UpdateJob{{
		Label: "prune.ru",
		Text: `
PREFIX ex: <http://example.com/>
DELETE WHERE { ?s a ex:Gadget }`,
	}}, nil)
	require.NoError(t, err)

	typePred := rdf.IRI{Value: rdf.RDFType}
	for _, tr := range updated.Axioms.Match(nil, &typePred, nil) {
		assert.NotEqual(t, rdf.IRI{Value: "http://example.com/Gadget"}, tr.O)
	}
}

func TestApplyUpdatesImportDeclarationsRoundTrip(t *testing.T) {
	ont := fixtureOntology(t)
	updated, err := ApplyUpdates(ont, []UpdateJob{{
		Label: "noop.ru",
		Text:  `INSERT DATA { <http://example.com/x> <http://example.com/p> <http://example.com/y> }`,
	}}, nil)
	require.NoError(t, err)

	assert.Equal(t, ont.IRI, updated.IRI)
	assert.Equal(t, []string{"http://example.com/dep"}, updated.ImportIRIs())
	// The header bookkeeping stays out of the axiom set.
	assert.False(t, updated.Axioms.Has(rdf.Triple{
		S: rdf.IRI{Value: ont.IRI},
		P: rdf.IRI{Value: rdf.RDFType},
		O: rdf.IRI{Value: rdf.OWLOntology},
	}))
}

func TestApplyUpdatesNoImportsRoundTrip(t *testing.T) {
	ont := testutil.MustOntology(t, `
@prefix ex: <http://example.com/> .
ex:solo a owl:Ontology .
ex:a ex:p ex:b .
`)
	updated, err := ApplyUpdates(ont, []UpdateJob{{
		Label: "noop.ru",
		Text:  `INSERT DATA { <http://example.com/c> <http://example.com/p> <http://example.com/d> }`,
	}}, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Imports)
	assert.Equal(t, 2, updated.Axioms.Len())
}

func TestApplyUpdatesStripsInsertedImports(t *testing.T) {
	// An update that inserts owl:imports does not grow the declaration
	// list; the declarations are modeled, not stored as triples.
	updated, err := ApplyUpdates(fixtureOntology(t), []UpdateJob{{
		Label: "sneaky.ru",
		Text: `
PREFIX owl: <http://www.w3.org/2002/07/owl#>
INSERT DATA { <http://example.com/root> owl:imports <http://example.com/extra> }`,
	}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://example.com/dep"}, updated.ImportIRIs())
	imports := rdf.IRI{Value: rdf.OWLImports}
	assert.Empty(t, updated.Axioms.Match(nil, &imports, nil))
}

func TestApplyUpdatesJobOrder(t *testing.T) {
	insertThenDelete := []UpdateJob{
		{Label: "a.ru", Text: `INSERT DATA { <http://e.com/a> <http://e.com/p> <http://e.com/b> }`},
		{Label: "b.ru", Text: `DELETE DATA { <http://e.com/a> <http://e.com/p> <http://e.com/b> }`},
	}
	updated, err := ApplyUpdates(fixtureOntology(t), insertThenDelete, nil)
	require.NoError(t, err)
	tracked := rdf.Triple{
		S: rdf.IRI{Value: "http://e.com/a"},
		P: rdf.IRI{Value: "http://e.com/p"},
		O: rdf.IRI{Value: "http://e.com/b"},
	}
	assert.False(t, updated.Axioms.Has(tracked))

	deleteThenInsert := []UpdateJob{insertThenDelete[1], insertThenDelete[0]}
	updated, err = ApplyUpdates(fixtureOntology(t), deleteThenInsert, nil)
	require.NoError(t, err)
	assert.True(t, updated.Axioms.Has(tracked))
}

func TestApplyUpdatesParseErrorFailsBatch(t *testing.T) {
	_, err := ApplyUpdates(fixtureOntology(t), []UpdateJob{
		{Label: "bad.ru", Text: `INSERT GARBAGE`},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, CodeUpdateExecution, CodeOf(err))
	assert.Contains(t, err.Error(), "bad.ru")
	assert.False(t, IsUsageError(err))
}

func TestApplyUpdatesUnresolvedImportFails(t *testing.T) {
	ont := testutil.MustOntology(t, rootSrc) // import left unresolved
	_, err := ApplyUpdates(ont, []UpdateJob{
		{Label: "x.ru", Text: `INSERT DATA { <http://e.com/a> <http://e.com/p> <http://e.com/b> }`},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, CodeGraphConstruction, CodeOf(err))
}

func TestApplyUpdatesResultIsSavable(t *testing.T) {
	updated, err := ApplyUpdates(fixtureOntology(t), []UpdateJob{{
		Label: "add.ru",
		Text:  `INSERT DATA { <http://example.com/x> <http://example.com/p> <http://example.com/y> }`,
	}}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.ttl")
	require.NoError(t, updated.Save(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "owl:imports")
	assert.Contains(t, string(data), "<http://example.com/x>")
}
