// Package sparql is the graph-query evaluator owlq delegates to.
//
// It implements the SPARQL fragment the query command needs: SELECT
// (optionally DISTINCT, with a projection or *, and LIMIT), ASK,
// CONSTRUCT with a template, DESCRIBE of IRIs or bound variables, basic
// graph patterns joined by backtracking, and GRAPH clauses over named
// graphs. Updates cover INSERT DATA, DELETE DATA, DELETE WHERE, and
// DELETE/INSERT ... WHERE. FILTER, OPTIONAL, UNION, property paths, and
// aggregates are not supported and fail at parse time.
//
// Query results are a tagged union (Result): a solution table for
// SELECT, a boolean for ASK, a graph for CONSTRUCT and DESCRIBE. Callers
// dispatch on Result.Kind exactly once; nothing downstream re-parses the
// query to learn its form.
//
// DETERMINISM:
//
// Pattern matching iterates canonically sorted triple snapshots and
// sorted graph names, and SELECT rows are emitted in canonical order, so
// a query over a given dataset always produces the same Result.
package sparql
