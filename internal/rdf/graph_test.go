package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tr(s, p, o string) Triple {
	return Triple{S: IRI{Value: s}, P: IRI{Value: p}, O: IRI{Value: o}}
}

func TestGraphSetSemantics(t *testing.T) {
	g := NewGraph()
	g.Add(tr("s", "p", "o"))
	g.Add(tr("s", "p", "o"))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(tr("s", "p", "o")))

	g.Remove(tr("s", "p", "o"))
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Has(tr("s", "p", "o")))
}

func TestGraphCloneIsIndependent(t *testing.T) {
	g := NewGraph()
	g.Add(tr("s", "p", "o"))

	c := g.Clone()
	c.Add(tr("s", "p", "o2"))

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 2, c.Len())
}

func TestGraphTriplesSorted(t *testing.T) {
	g := NewGraph()
	g.Add(tr("b", "p", "o"))
	g.Add(tr("a", "q", "o"))
	g.Add(tr("a", "p", "o"))

	got := g.Triples()
	require.Len(t, got, 3)
	assert.Equal(t, tr("a", "p", "o"), got[0])
	assert.Equal(t, tr("a", "q", "o"), got[1])
	assert.Equal(t, tr("b", "p", "o"), got[2])
}

func TestGraphMatch(t *testing.T) {
	g := NewGraph()
	g.Add(tr("a", "p", "x"))
	g.Add(tr("a", "q", "y"))
	g.Add(tr("b", "p", "x"))

	p := IRI{Value: "p"}
	assert.Len(t, g.Match(IRI{Value: "a"}, nil, nil), 2)
	assert.Len(t, g.Match(nil, &p, nil), 2)
	assert.Len(t, g.Match(nil, nil, IRI{Value: "x"}), 2)
	assert.Len(t, g.Match(IRI{Value: "a"}, &p, IRI{Value: "x"}), 1)
	assert.Empty(t, g.Match(IRI{Value: "c"}, nil, nil))
}

func TestDatasetUnion(t *testing.T) {
	d := NewDataset()
	d.Default.Add(tr("a", "p", "x"))

	g1 := NewGraph()
	g1.Add(tr("b", "p", "x"))
	g1.Add(tr("a", "p", "x")) // shared with the default graph
	d.SetNamed("http://example.com/g1", g1)

	g2 := NewGraph()
	g2.Add(tr("c", "p", "x"))
	d.SetNamed("http://example.com/g2", g2)

	assert.Equal(t, []string{"http://example.com/g1", "http://example.com/g2"}, d.GraphNames())
	assert.Equal(t, 3, d.Union().Len())
	assert.Nil(t, d.Named("http://example.com/other"))
	require.NotNil(t, d.Named("http://example.com/g1"))
}
