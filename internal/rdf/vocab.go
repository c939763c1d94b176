package rdf

// Well-known namespace prefixes.
const (
	RDFNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNS  = "http://www.w3.org/2002/07/owl#"
	XSDNS  = "http://www.w3.org/2001/XMLSchema#"
)

// Vocabulary terms the tool itself depends on.
const (
	// RDFType is the rdf:type predicate (the "a" keyword in Turtle and
	// SPARQL).
	RDFType = RDFNS + "type"

	// OWLOntology is the class of ontology headers.
	OWLOntology = OWLNS + "Ontology"

	// OWLImports is the imports-declaration predicate on an ontology
	// header.
	OWLImports = OWLNS + "imports"

	// OWLVersionIRI is the version IRI property on an ontology header.
	OWLVersionIRI = OWLNS + "versionIRI"

	// XSDString is the implicit datatype of plain literals.
	XSDString = XSDNS + "string"

	// XSDInteger is the datatype assigned to bare integer tokens.
	XSDInteger = XSDNS + "integer"

	// XSDDecimal is the datatype assigned to bare decimal tokens.
	XSDDecimal = XSDNS + "decimal"

	// XSDBoolean is the datatype of the true/false keywords.
	XSDBoolean = XSDNS + "boolean"
)
