package ast

// Namespace is a namespace IRI such as "http://xmlns.com/foaf/0.1/".
type Namespace string

// Term returns the IRI formed by appending local to the namespace.
func (ns Namespace) Term(local string) IRI { return IRI{Value: string(ns) + local} }

// Operator returns an extension function operator named by local in this
// namespace, e.g. FN.Operator("ceiling").
func (ns Namespace) Operator(local string) Operator { return Operator{IRI: ns.Term(local)} }

// Well-known namespaces.
const (
	RDF  Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS Namespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  Namespace = "http://www.w3.org/2002/07/owl#"
	XSD  Namespace = "http://www.w3.org/2001/XMLSchema#"
	FN   Namespace = "http://www.w3.org/2005/xpath-functions#"
)

var (
	// IsA is rdf:type. In predicate position it renders as the keyword a.
	IsA = RDF.Term("type")
	// Nil is rdf:nil, the empty RDF list.
	Nil = RDF.Term("nil")
)

// XSD datatypes used by the literal constructors.
var (
	XSDString   = XSD.Term("string")
	XSDInteger  = XSD.Term("integer")
	XSDInt      = XSD.Term("int")
	XSDDecimal  = XSD.Term("decimal")
	XSDFloat    = XSD.Term("float")
	XSDDouble   = XSD.Term("double")
	XSDBoolean  = XSD.Term("boolean")
	XSDDate     = XSD.Term("date")
	XSDDateTime = XSD.Term("dateTime")
)
