package query

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ontokit/owlq/internal/rdf"
	"github.com/ontokit/owlq/internal/sparql"
)

// Writer serializes one query result to an output sink.
//
// Writers are registered in a Registry by name; dispatch code never
// branches on concrete format names, so adding a format means adding a
// Writer and registering it.
type Writer interface {
	// Name is the format name used on the command line and as the
	// default file extension key (e.g. "csv", "ttl").
	Name() string

	// Extension is the file extension (without dot) used when an output
	// path is synthesized.
	Extension() string

	// Accepts reports whether the writer can serialize results of the
	// given kind.
	Accepts(kind sparql.ResultKind) bool

	// Write serializes the result. The sink is already open; Write must
	// leave it flushed on success.
	Write(w io.Writer, res *sparql.Result, prefixes rdf.PrefixMap) error
}

// Registry is the enumerable format-name → Writer mapping.
type Registry struct {
	byName map[string]Writer
}

// NewRegistry returns a registry with the built-in writers: csv and tsv
// for solution tables and booleans, ttl, nt, and jsonld for result
// graphs.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Writer)}
	r.Register(tableWriter{name: "csv", comma: ','})
	r.Register(tableWriter{name: "tsv", comma: '\t'})
	r.Register(turtleWriter{})
	r.Register(ntriplesWriter{})
	r.Register(jsonldWriter{})
	return r
}

// Register adds a writer, replacing any writer with the same name.
func (r *Registry) Register(w Writer) {
	r.byName[strings.ToLower(w.Name())] = w
}

// Lookup finds a writer by format name, case-insensitively.
func (r *Registry) Lookup(name string) (Writer, bool) {
	w, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return w, ok
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the writer for a job. Priority: an explicitly supplied
// format name always wins; otherwise an explicit output path decides by
// its extension; otherwise the query's syntactic form picks a default
// (CONSTRUCT/DESCRIBE → ttl, everything else → csv).
func (r *Registry) Resolve(queryText string, job Job, explicit string) (Writer, error) {
	name := explicit
	switch {
	case name != "":
	case job.Output != "":
		name = strings.TrimPrefix(filepath.Ext(job.Output), ".")
	default:
		switch sparql.DetectForm(queryText) {
		case sparql.FormConstruct, sparql.FormDescribe:
			name = "ttl"
		default:
			name = "csv"
		}
	}
	w, ok := r.Lookup(name)
	if !ok {
		return nil, newError(CodeUnknownFormat, fmt.Sprintf("unknown format %q", name))
	}
	return w, nil
}

// OutputPath returns the job's output path, synthesizing one from the
// query source's base name and the writer's extension under outputDir
// when the job has no explicit target. An empty outputDir means the
// current directory.
func OutputPath(job Job, w Writer, outputDir string) string {
	if job.Output != "" {
		return job.Output
	}
	base := "query"
	if job.Path != "" {
		name := filepath.Base(job.Path)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return filepath.Join(outputDir, base+"."+w.Extension())
}
