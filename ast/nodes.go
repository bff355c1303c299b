// Package ast defines the Abstract Syntax Tree (AST) for SPARQL queries.
//
// It decouples query construction from string formatting: terms,
// expressions and graph patterns are plain values assembled by the
// constructors in this package, and ExpressionCompiler/PatternCompiler turn
// them into query text.
package ast

// QueryNode is the marker interface for all AST nodes.
type QueryNode interface {
	queryNode()
}

// --- Expressions ---

// Expression is the marker interface for nodes usable in FILTER constraints,
// ORDER BY clauses, projections and triple positions. Every Term is an
// Expression.
type Expression interface {
	QueryNode
	expression()
}

// UnaryExpression applies a prefix operator (+, -, !) to one operand.
type UnaryExpression struct {
	// Operator is one of OpPos, OpNeg or OpNot.
	Operator Operator
	// Operand is the expression the operator applies to.
	Operand Expression
}

func (UnaryExpression) queryNode()  {}
func (UnaryExpression) expression() {}

// BinaryExpression is an infix comparison or arithmetic expression.
type BinaryExpression struct {
	// Operator is a comparison (OpEq, OpLt, ...) or arithmetic (OpAdd, ...) operator.
	Operator Operator
	// Left is the left operand.
	Left Expression
	// Right is the right operand.
	Right Expression
}

func (BinaryExpression) queryNode()  {}
func (BinaryExpression) expression() {}

// ConditionalExpression joins one or more operands with a single logical
// operator (OpAnd or OpOr). And and Or never nest a conditional inside one
// with the same operator.
type ConditionalExpression struct {
	// Operator is OpAnd or OpOr.
	Operator Operator
	// Operands are the joined expressions, in order.
	Operands []Expression
}

func (ConditionalExpression) queryNode()  {}
func (ConditionalExpression) expression() {}

// FunctionCall applies a named builtin or an IRI-identified extension
// function to an ordered argument list, e.g. regex(?name, "Smith").
type FunctionCall struct {
	// Operator identifies the function.
	Operator Operator
	// Args are the call arguments, in order.
	Args []Expression
}

func (FunctionCall) queryNode()  {}
func (FunctionCall) expression() {}

// AnnotatedExpression wraps a value with language or datatype metadata.
// The annotation only affects rendering when the value is a literal; it is
// never propagated to enclosing expressions.
type AnnotatedExpression struct {
	// Value is the wrapped expression.
	Value Expression
	// Language is the language tag, if any.
	Language string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
}

func (AnnotatedExpression) queryNode()  {}
func (AnnotatedExpression) expression() {}

// Wildcard is the "all variables" projection, rendered as *.
type Wildcard struct{}

func (Wildcard) queryNode()  {}
func (Wildcard) expression() {}

// All is the projection sentinel selecting every in-scope variable.
var All = Wildcard{}

// CollectionPattern is the RDF list shorthand ( a b c ). Items may
// themselves be collections.
type CollectionPattern struct {
	// Items are the list members, in order.
	Items []Expression
}

func (CollectionPattern) queryNode()  {}
func (CollectionPattern) expression() {}

// --- Filters ---

// Filter wraps one constraint expression. Filters built from several
// constraints hold their conjunction.
type Filter struct {
	// Constraint is the filtering expression.
	Constraint Expression
}

func (Filter) queryNode()  {}
func (Filter) expression() {}

// --- Patterns ---

// Pattern is the marker interface for entries of a graph pattern.
type Pattern interface {
	QueryNode
	pattern()
}

// Triple is a subject predicate object pattern.
type Triple struct {
	// Subject is a term, a CollectionPattern or an expression resolving to a term.
	Subject Expression
	// Predicate is an IRI or a variable.
	Predicate Expression
	// Object is a term, a CollectionPattern or an expression resolving to a term.
	Object Expression
}

func (Triple) queryNode() {}
func (Triple) pattern()   {}

// PredicateObject is one entry of a predicate-object list.
type PredicateObject struct {
	// Predicate is an IRI or a variable.
	Predicate Expression
	// Objects share the predicate and render as a comma separated list.
	Objects []Expression
}

// TriplesWithSharedSubject is a predicate-object list for a single subject:
// ?s p1 o1 ; p2 o2 , o3.
type TriplesWithSharedSubject struct {
	// Subject is shared by every predicate-object entry.
	Subject Expression
	// Predicates are the predicate-object entries, in order.
	Predicates []PredicateObject
}

func (TriplesWithSharedSubject) queryNode() {}
func (TriplesWithSharedSubject) pattern()   {}

// GraphPattern is an ordered list of patterns followed by filters. Nested
// inside another pattern it is rendered inline, without braces.
type GraphPattern struct {
	// Patterns are the sub-patterns, in order.
	Patterns []Pattern
	// Filters are the FILTER entries, in order.
	Filters []Filter
}

func (GraphPattern) queryNode() {}
func (GraphPattern) pattern()   {}

// GroupGraphPattern is a braced graph pattern, optionally marked OPTIONAL.
type GroupGraphPattern struct {
	GraphPattern
	// Optional prefixes the group with the OPTIONAL keyword.
	Optional bool
}

func (GroupGraphPattern) queryNode() {}
func (GroupGraphPattern) pattern()   {}

// UnionGraphPattern matches any of its alternatives: { a } UNION { b }.
type UnionGraphPattern struct {
	// Alternatives holds at least two graph patterns.
	Alternatives []GraphPattern
}

func (UnionGraphPattern) queryNode() {}
func (UnionGraphPattern) pattern()   {}

// GraphGraphPattern scopes a graph pattern to a named graph: GRAPH ?g { ... }.
type GraphGraphPattern struct {
	GraphPattern
	// Name is the graph IRI or variable.
	Name Expression
}

func (GraphGraphPattern) queryNode() {}
func (GraphGraphPattern) pattern()   {}

// FilterGraphPattern is an inline run of FILTER entries without triples.
type FilterGraphPattern struct {
	// Filters are the FILTER entries, in order.
	Filters []Filter
}

func (FilterGraphPattern) queryNode() {}
func (FilterGraphPattern) pattern()   {}
