package rdf

import "sort"

// Graph is a mutable set of triples. The zero value is not usable; use
// NewGraph.
//
// A Graph has no identity beyond its triples: two graphs holding the same
// triple set are interchangeable. Enumeration is always in canonical order
// so that evaluation and serialization are deterministic.
type Graph struct {
	triples map[Triple]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{triples: make(map[Triple]struct{})}
}

// Add inserts a triple. Adding a triple that is already present is a no-op.
func (g *Graph) Add(t Triple) {
	g.triples[t] = struct{}{}
}

// AddAll inserts every triple of other into g.
func (g *Graph) AddAll(other *Graph) {
	for t := range other.triples {
		g.triples[t] = struct{}{}
	}
}

// Remove deletes a triple if present.
func (g *Graph) Remove(t Triple) {
	delete(g.triples, t)
}

// Has reports whether the triple is in the graph.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.triples[t]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Clone returns an independent copy of the graph.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	c.AddAll(g)
	return c
}

// Triples returns a snapshot of the graph in canonical order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	SortTriples(out)
	return out
}

// Match returns, in canonical order, every triple matching the given
// pattern. A nil subject, predicate, or object is a wildcard.
func (g *Graph) Match(s Term, p *IRI, o Term) []Triple {
	var out []Triple
	for t := range g.triples {
		if s != nil && t.S != s {
			continue
		}
		if p != nil && t.P != *p {
			continue
		}
		if o != nil && t.O != o {
			continue
		}
		out = append(out, t)
	}
	SortTriples(out)
	return out
}

// DefaultGraphName keys the default graph in a Dataset.
const DefaultGraphName = ""

// Dataset is a collection of graphs: one default graph and zero or more
// named graphs keyed by IRI. It is the unit a query executes against.
type Dataset struct {
	Default *Graph
	named   map[string]*Graph
}

// NewDataset returns a dataset with an empty default graph and no named
// graphs.
func NewDataset() *Dataset {
	return &Dataset{
		Default: NewGraph(),
		named:   make(map[string]*Graph),
	}
}

// SetNamed attaches a graph under the given name, replacing any previous
// graph with that name.
func (d *Dataset) SetNamed(name string, g *Graph) {
	d.named[name] = g
}

// Named returns the graph with the given name, or nil if absent.
func (d *Dataset) Named(name string) *Graph {
	return d.named[name]
}

// GraphNames returns the named-graph names in sorted order. The default
// graph is not included.
func (d *Dataset) GraphNames() []string {
	names := make([]string, 0, len(d.named))
	for name := range d.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Union returns a new graph holding every triple in the dataset, default
// and named graphs alike.
func (d *Dataset) Union() *Graph {
	u := d.Default.Clone()
	for _, name := range d.GraphNames() {
		u.AddAll(d.named[name])
	}
	return u
}
