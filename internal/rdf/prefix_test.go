package rdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	pm := DefaultPrefixes()

	iri, ok := pm.Expand("owl:imports")
	require.True(t, ok)
	assert.Equal(t, OWLImports, iri)

	_, ok = pm.Expand("unknown:thing")
	assert.False(t, ok)

	_, ok = pm.Expand("nocolon")
	assert.False(t, ok)
}

func TestShrink(t *testing.T) {
	pm := DefaultPrefixes()
	pm["ex"] = "http://example.com/"
	pm["exsub"] = "http://example.com/sub/"

	got, ok := pm.Shrink(RDFType)
	require.True(t, ok)
	assert.Equal(t, "rdf:type", got)

	// Longest namespace wins.
	got, ok = pm.Shrink("http://example.com/sub/thing")
	require.True(t, ok)
	assert.Equal(t, "exsub:thing", got)

	// Local parts with path characters stay as full IRIs.
	_, ok = pm.Shrink("http://example.com/a/b")
	assert.False(t, ok)

	// Bare namespace has no local name.
	_, ok = pm.Shrink("http://example.com/")
	assert.False(t, ok)

	_, ok = pm.Shrink("http://other.org/x")
	assert.False(t, ok)
}

func TestLoadPrefixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefixes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"ex: http://example.com/\nowl: http://example.com/shadowed#\n"), 0o644))

	pm, err := LoadPrefixes(path)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/", pm["ex"])
	// User entries override the defaults.
	assert.Equal(t, "http://example.com/shadowed#", pm["owl"])
	// Untouched defaults survive the merge.
	assert.Equal(t, XSDNS, pm["xsd"])
}

func TestLoadPrefixesErrors(t *testing.T) {
	_, err := LoadPrefixes(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ex: [not, a, string]\n"), 0o644))
	_, err = LoadPrefixes(bad)
	assert.Error(t, err)
}

func TestLabelsSorted(t *testing.T) {
	assert.Equal(t, []string{"owl", "rdf", "rdfs", "xsd"}, DefaultPrefixes().Labels())
}
