package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/testutil"
)

const rootSrc = `
@prefix ex: <http://example.com/> .
ex:root a owl:Ontology ;
    owl:imports ex:dep .
ex:Widget a owl:Class .
ex:a a ex:Widget .
ex:a ex:weight 5 .
`

const depSrc = `
@prefix ex: <http://example.com/> .
ex:dep a owl:Ontology .
ex:Gadget a owl:Class .
ex:b a ex:Gadget .
ex:b ex:weight 7 .
ex:c a ex:Gadget .
ex:c ex:weight 9 .
`

func fixtureOntology(t *testing.T) *ontology.Ontology {
	t.Helper()
	root := testutil.MustOntology(t, rootSrc)
	dep := testutil.MustOntology(t, depSrc)
	testutil.Resolve(t, root, "http://example.com/dep", dep)
	return root
}

func TestBuildMerged(t *testing.T) {
	ds, err := Build(fixtureOntology(t), false)
	require.NoError(t, err)

	// 3 root axioms + 5 imported axioms, one graph.
	assert.Equal(t, 8, ds.Default.Len())
	assert.Empty(t, ds.GraphNames())
}

func TestBuildNamedGraphs(t *testing.T) {
	ds, err := Build(fixtureOntology(t), true)
	require.NoError(t, err)

	// The root's own axioms stay in the default graph; the import
	// becomes a named graph keyed by its IRI.
	assert.Equal(t, 3, ds.Default.Len())
	require.Equal(t, []string{"http://example.com/dep"}, ds.GraphNames())
	assert.Equal(t, 5, ds.Named("http://example.com/dep").Len())
}

func TestBuildUnresolvedImportFails(t *testing.T) {
	root := testutil.MustOntology(t, rootSrc)
	// Import left unresolved.
	_, err := Build(root, false)
	require.Error(t, err)
	assert.Equal(t, CodeGraphConstruction, CodeOf(err))
	assert.Contains(t, err.Error(), "http://example.com/dep")
}

func TestBuildAnonymousImportInGraphsMode(t *testing.T) {
	root := testutil.MustOntology(t, rootSrc)
	anon := testutil.MustOntology(t, `
@prefix ex: <http://example.com/> .
ex:x ex:p ex:y .
`)
	testutil.Resolve(t, root, "http://example.com/dep", anon)

	// Merged mode has no graph to name, so an anonymous import is fine.
	_, err := Build(root, false)
	require.NoError(t, err)

	_, err = Build(root, true)
	require.Error(t, err)
	assert.Equal(t, CodeGraphConstruction, CodeOf(err))
}

func TestBuildDoesNotMutateOntology(t *testing.T) {
	root := fixtureOntology(t)
	before := root.Axioms.Len()

	ds, err := Build(root, false)
	require.NoError(t, err)
	ds.Default.Add(testutil.MustParseGraph(t, `
@prefix ex: <http://example.com/> .
ex:new ex:p ex:q .
`).Triples()[0])

	assert.Equal(t, before, root.Axioms.Len())
}
