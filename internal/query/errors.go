package query

import (
	"errors"
	"fmt"
)

// Error represents a failure in the query/update pipeline.
//
// Every failure carries a Code so callers can map it onto exit codes and
// user-facing messages without string matching. The taxonomy:
//
//   - Usage errors (no query given, missing file, unknown format) are
//     reported before any work starts.
//   - Construction errors mean the dataset could not be built.
//   - Execution errors abort the batch at the failing job.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Job identifies the affected query or update source, if any.
	Job string

	// Err is the underlying error, if any.
	Err error
}

// Code categorizes pipeline errors.
type Code string

const (
	// CodeMissingQuery indicates no query or update was specified.
	CodeMissingQuery Code = "MISSING_QUERY"

	// CodeMissingFile indicates a query or update file does not exist.
	CodeMissingFile Code = "MISSING_FILE"

	// CodeUnknownFormat indicates an unrecognized result format name.
	CodeUnknownFormat Code = "UNKNOWN_FORMAT"

	// CodeGraphConstruction indicates the dataset could not be built,
	// typically because an import is unresolved.
	CodeGraphConstruction Code = "GRAPH_CONSTRUCTION"

	// CodeQueryExecution indicates a query failed to parse or evaluate.
	CodeQueryExecution Code = "QUERY_EXECUTION"

	// CodeUpdateExecution indicates an update failed to parse or apply.
	CodeUpdateExecution Code = "UPDATE_EXECUTION"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Job != "" {
		msg = fmt.Sprintf("%s (job=%s)", msg, e.Job)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the error code from an error chain. Returns "" for
// errors that did not originate in this package.
func CodeOf(err error) Code {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

// IsUsageError reports whether the error is a usage error: wrong
// invocation, not bad data.
func IsUsageError(err error) bool {
	switch CodeOf(err) {
	case CodeMissingQuery, CodeMissingFile, CodeUnknownFormat:
		return true
	}
	return false
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func wrapError(code Code, message, job string, err error) *Error {
	return &Error{Code: code, Message: message, Job: job, Err: err}
}
