package ontology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ontokit/owlq/internal/rdf"
)

// Loader reads Turtle ontology documents and resolves their import
// closures.
//
// Import IRIs are mapped to files through the Catalog first; when an IRI
// has no catalog entry, the loader falls back to looking for a file named
// after the IRI's last path segment in the importing document's
// directory. An import that resolves to no readable file is recorded as
// unresolved rather than failing the load: whether that is fatal is the
// consumer's call (the dataset builder treats it as a construction
// error).
type Loader struct {
	// Catalog maps import IRIs to file paths. Relative paths are
	// resolved against the importing document's directory.
	Catalog map[string]string

	// Prefixes seeds prefixed-name resolution for every parsed
	// document.
	Prefixes rdf.PrefixMap

	byPath map[string]*Ontology
	byIRI  map[string]*Ontology
}

// NewLoader returns a loader with the given catalog. A nil prefix map
// falls back to the defaults.
func NewLoader(catalog map[string]string, prefixes rdf.PrefixMap) *Loader {
	if prefixes == nil {
		prefixes = rdf.DefaultPrefixes()
	}
	return &Loader{
		Catalog:  catalog,
		Prefixes: prefixes,
		byPath:   make(map[string]*Ontology),
		byIRI:    make(map[string]*Ontology),
	}
}

// Load reads the ontology at path and resolves its imports recursively.
// Loading the same file twice (directly or through an import cycle)
// yields the same *Ontology.
func (l *Loader) Load(path string) (*Ontology, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if ont, ok := l.byPath[abs]; ok {
		return ont, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("load ontology: %w", err)
	}
	triples, err := rdf.ParseTurtle(string(data), l.Prefixes)
	if err != nil {
		return nil, fmt.Errorf("load ontology %s: %w", path, err)
	}

	ont := FromTriples(triples)
	// Register under the path before resolving imports so that import
	// cycles terminate.
	l.byPath[abs] = ont
	if ont.IRI != "" {
		l.byIRI[ont.IRI] = ont
	}

	for i := range ont.Imports {
		iri := ont.Imports[i].IRI
		if resolved, ok := l.byIRI[iri]; ok {
			ont.Imports[i].Resolved = resolved
			continue
		}
		importPath, ok := l.locate(iri, filepath.Dir(abs))
		if !ok {
			continue
		}
		resolved, err := l.Load(importPath)
		if err != nil {
			return nil, fmt.Errorf("import <%s>: %w", iri, err)
		}
		ont.Imports[i].Resolved = resolved
	}
	return ont, nil
}

// locate maps an import IRI to a readable file path, or reports failure.
func (l *Loader) locate(iri, dir string) (string, bool) {
	if path, ok := l.Catalog[iri]; ok {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if fileExists(path) {
			return path, true
		}
		return "", false
	}
	// Fallback: a file named after the IRI's last segment, next to the
	// importing document.
	seg := iri
	if i := strings.LastIndexAny(seg, "/#"); i >= 0 {
		seg = seg[i+1:]
	}
	if seg == "" {
		return "", false
	}
	candidates := []string{seg}
	if !strings.Contains(seg, ".") {
		candidates = append(candidates, seg+".ttl")
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
