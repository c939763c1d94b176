package query

// Pair is one raw (query source, output target) input as it arrives from
// the command line. Output "" means no explicit target.
type Pair struct {
	Source string
	Output string
}

// Inputs collects the heterogeneous query specifications a caller may
// supply. The field groups mirror the historical flag set: the primary
// query pairs, the deprecated select and construct aliases, and bare
// verification query paths.
type Inputs struct {
	Queries    []Pair
	Selects    []Pair
	Constructs []Pair
	Verify     []string
}

// Job is a normalized unit of query work. Path names a file holding the
// query; command-line inputs always resolve to path jobs. Text holds the
// query verbatim and exists for programmatic callers that already have
// the source in hand; when set, Path is empty. Output "" means
// "synthesize a path from the source and the resolved format, under the
// configured output directory".
type Job struct {
	Path   string
	Text   string
	Output string
}

// Source returns the job's identifying label for logs and errors.
func (j Job) Source() string {
	if j.Path != "" {
		return j.Path
	}
	return "<inline>"
}

// ResolveJobs normalizes raw inputs into an ordered job list: query
// pairs, then select pairs, then construct pairs, then verify paths with
// no output target. The alias names do not survive past this point.
//
// Duplicates are preserved: the same query given twice runs twice, each
// run producing its own output. An empty combined list is a usage error.
func ResolveJobs(in Inputs) ([]Job, error) {
	var jobs []Job
	for _, group := range [][]Pair{in.Queries, in.Selects, in.Constructs} {
		for _, p := range group {
			jobs = append(jobs, Job{Path: p.Source, Output: p.Output})
		}
	}
	for _, path := range in.Verify {
		jobs = append(jobs, Job{Path: path})
	}
	if len(jobs) == 0 {
		return nil, newError(CodeMissingQuery, "at least one query must be provided")
	}
	return jobs, nil
}
