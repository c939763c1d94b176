package query

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ontokit/owlq/internal/ontology"
	"github.com/ontokit/owlq/internal/rdf"
	"github.com/ontokit/owlq/internal/sparql"
)

// Options configures one query invocation. The zero value is usable:
// results land next to their queries in the current directory, formats
// are inferred, imports are merged into one graph.
type Options struct {
	// Format forces a result format for every job. Empty means infer
	// per job.
	Format string

	// OutputDir is where synthesized output paths land. Empty means the
	// current directory.
	OutputDir string

	// UseGraphs loads imports as named graphs instead of merging them
	// into the default graph.
	UseGraphs bool

	// Prefixes seeds query parsing and Turtle output. Nil means the
	// defaults.
	Prefixes rdf.PrefixMap

	// Registry is the format table. Nil means the built-in registry.
	Registry *Registry
}

func (o Options) registry() *Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return NewRegistry()
}

func (o Options) prefixes() rdf.PrefixMap {
	if o.Prefixes != nil {
		return o.Prefixes
	}
	return rdf.DefaultPrefixes()
}

// Dispatch executes one query against the dataset and serializes its
// result to the already-open sink. It dispatches on the evaluator's
// result kind, never by re-parsing the query: the same call serializes a
// solution table, a boolean, or a graph, as long as the writer accepts
// that kind.
//
// The sink is left flushed on success; on failure whatever was written
// must not be treated as a complete result (Run arranges that by writing
// through a temp file).
func Dispatch(ds *rdf.Dataset, queryText string, w Writer, out io.Writer, prefixes rdf.PrefixMap) error {
	q, err := sparql.Parse(queryText, prefixes)
	if err != nil {
		return err
	}
	res, err := sparql.Eval(ds, q)
	if err != nil {
		return err
	}
	if !w.Accepts(res.Kind) {
		return fmt.Errorf("format %q cannot serialize %s results", w.Name(), res.Kind)
	}
	return w.Write(out, res, prefixes)
}

// Run executes a query batch: resolve the jobs, build the dataset once,
// then run each job in resolution order, writing one result file per
// job. The first failing job aborts the batch; files from jobs that
// already completed stay on disk, and the failing job leaves no file
// under its final name.
func Run(ont *ontology.Ontology, in Inputs, opts Options) error {
	jobs, err := ResolveJobs(in)
	if err != nil {
		return err
	}
	ds, err := Build(ont, opts.UseGraphs)
	if err != nil {
		return err
	}
	registry := opts.registry()
	prefixes := opts.prefixes()

	for _, job := range jobs {
		queryText, err := readJob(job)
		if err != nil {
			return err
		}
		w, err := registry.Resolve(queryText, job, opts.Format)
		if err != nil {
			return err
		}
		outputPath := OutputPath(job, w, opts.OutputDir)
		slog.Debug("running query", "source", job.Source(), "format", w.Name(), "output", outputPath)
		if err := runJob(ds, queryText, w, outputPath, prefixes); err != nil {
			return wrapError(CodeQueryExecution, "query failed", job.Source(), err)
		}
	}
	return nil
}

// readJob returns the job's query text, reading its file if the source
// is a path.
func readJob(job Job) (string, error) {
	if job.Path == "" {
		return job.Text, nil
	}
	data, err := os.ReadFile(job.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", newError(CodeMissingFile, fmt.Sprintf("query file %q does not exist", job.Path))
		}
		return "", err
	}
	return string(data), nil
}

// runJob writes one result file. The result goes to a temp file in the
// destination directory and is renamed into place only after a
// successful flush, so a failed job never leaves a partial file under
// the final name.
func runJob(ds *rdf.Dataset, queryText string, w Writer, outputPath string, prefixes rdf.PrefixMap) error {
	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := Dispatch(ds, queryText, w, tmp, prefixes); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, outputPath)
}
