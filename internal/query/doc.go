// Package query is the core of owlq: it turns an ontology into a
// queryable dataset, normalizes heterogeneous query inputs into a uniform
// job list, resolves result formats and output paths, dispatches jobs
// against the evaluator, and runs update batches that roundtrip the graph
// back into an ontology with its import declarations intact.
//
// Control flow for one invocation: if updates are present they run
// exclusively (ApplyUpdates); otherwise Build constructs the dataset once,
// ResolveJobs normalizes the inputs, and Run executes each job in
// resolution order, aborting the batch on the first failure.
//
// The package is strictly sequential. The dataset is read-only once
// built and is shared by every job; each job owns its output sink.
package query
