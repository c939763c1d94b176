// Package harness runs end-to-end query scenarios for tests: an inline
// ontology (plus optional imports), one query, one format, compared
// byte-for-byte against golden files.
//
// Scenarios exercise the same pipeline the CLI uses - dataset build,
// format resolution, dispatch - with the file system taken out, so a
// golden diff always points at pipeline behavior rather than fixture
// plumbing.
package harness
