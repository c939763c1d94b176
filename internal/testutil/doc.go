// Package testutil provides fixture helpers shared by owlq's tests:
// parsing inline Turtle into graphs and ontologies, and wiring resolved
// imports onto declarations.
package testutil
