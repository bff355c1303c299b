package ast

import (
	"iter"
	"slices"
)

// --- Expression combinators ---

// Pos returns +e.
func Pos(e Expression) UnaryExpression { return UnaryExpression{Operator: OpPos, Operand: e} }

// Neg returns -e.
func Neg(e Expression) UnaryExpression { return UnaryExpression{Operator: OpNeg, Operand: e} }

// Not returns !e.
func Not(e Expression) UnaryExpression { return UnaryExpression{Operator: OpNot, Operand: e} }

func binary(op Operator, left, right Expression) BinaryExpression {
	return BinaryExpression{Operator: op, Left: left, Right: right}
}

// Eq returns left = right.
func Eq(left, right Expression) BinaryExpression { return binary(OpEq, left, right) }

// Ne returns left != right.
func Ne(left, right Expression) BinaryExpression { return binary(OpNe, left, right) }

// Lt returns left < right.
func Lt(left, right Expression) BinaryExpression { return binary(OpLt, left, right) }

// Gt returns left > right.
func Gt(left, right Expression) BinaryExpression { return binary(OpGt, left, right) }

// Le returns left <= right.
func Le(left, right Expression) BinaryExpression { return binary(OpLe, left, right) }

// Ge returns left >= right.
func Ge(left, right Expression) BinaryExpression { return binary(OpGe, left, right) }

// Add returns left + right.
func Add(left, right Expression) BinaryExpression { return binary(OpAdd, left, right) }

// Sub returns left - right.
func Sub(left, right Expression) BinaryExpression { return binary(OpSub, left, right) }

// Mul returns left * right.
func Mul(left, right Expression) BinaryExpression { return binary(OpMul, left, right) }

// Div returns left / right.
func Div(left, right Expression) BinaryExpression { return binary(OpDiv, left, right) }

// And joins operands with &&. Operands that are themselves And expressions
// are spliced in rather than nested.
func And(operands ...Expression) ConditionalExpression { return conditional(OpAnd, operands) }

// Or joins operands with ||, flattening nested Or expressions.
func Or(operands ...Expression) ConditionalExpression { return conditional(OpOr, operands) }

func conditional(op Operator, operands []Expression) ConditionalExpression {
	flat := make([]Expression, 0, len(operands))
	for _, e := range operands {
		if c, ok := e.(ConditionalExpression); ok && c.Operator == op {
			flat = append(flat, c.Operands...)
		} else {
			flat = append(flat, e)
		}
	}
	return ConditionalExpression{Operator: op, Operands: flat}
}

// WithLang annotates e with a language tag.
func WithLang(e Expression, lang string) AnnotatedExpression {
	a := annotate(e)
	a.Language = lang
	return a
}

// WithDatatype annotates e with a datatype.
func WithDatatype(e Expression, datatype IRI) AnnotatedExpression {
	a := annotate(e)
	a.Datatype = datatype
	return a
}

func annotate(e Expression) AnnotatedExpression {
	if a, ok := e.(AnnotatedExpression); ok {
		return a
	}
	return AnnotatedExpression{Value: e}
}

// Collection returns the RDF list ( items... ).
func Collection(items ...Expression) CollectionPattern {
	return CollectionPattern{Items: slices.Clone(items)}
}

// NewFilter AND-combines constraints into one Filter. A Filter passed as a
// constraint contributes its own constraint. A single constraint is kept
// as is.
func NewFilter(constraints ...Expression) Filter {
	exprs := make([]Expression, 0, len(constraints))
	for _, c := range constraints {
		if f, ok := c.(Filter); ok {
			c = f.Constraint
		}
		exprs = append(exprs, c)
	}
	if len(exprs) == 1 {
		return Filter{Constraint: exprs[0]}
	}
	return Filter{Constraint: And(exprs...)}
}

// --- Pattern constructors ---

// T returns the triple (s, p, o).
func T(s, p, o Expression) Triple { return Triple{Subject: s, Predicate: p, Object: o} }

// Subject starts a predicate-object list for s.
func Subject(s Expression) TriplesWithSharedSubject {
	return TriplesWithSharedSubject{Subject: s}
}

// Add returns a copy with one more predicate and its objects.
func (t TriplesWithSharedSubject) Add(p Expression, objects ...Expression) TriplesWithSharedSubject {
	return t.AddPairs(PredicateObject{Predicate: p, Objects: objects})
}

// AddPairs returns a copy with the given predicate-object entries appended.
func (t TriplesWithSharedSubject) AddPairs(pairs ...PredicateObject) TriplesWithSharedSubject {
	next := make([]PredicateObject, 0, len(t.Predicates)+len(pairs))
	next = append(next, t.Predicates...)
	for _, p := range pairs {
		next = append(next, PredicateObject{Predicate: p.Predicate, Objects: slices.Clone(p.Objects)})
	}
	t.Predicates = next
	return t
}

// AddSeq returns a copy with every (predicate, object) pair from seq appended.
func (t TriplesWithSharedSubject) AddSeq(seq iter.Seq2[Expression, Expression]) TriplesWithSharedSubject {
	var pairs []PredicateObject
	for p, o := range seq {
		pairs = append(pairs, PredicateObject{Predicate: p, Objects: []Expression{o}})
	}
	return t.AddPairs(pairs...)
}

// Patterns returns an inline graph pattern holding items.
func Patterns(items ...Pattern) GraphPattern {
	return GraphPattern{Patterns: slices.Clone(items)}
}

// Group returns a braced group holding items.
func Group(items ...Pattern) GroupGraphPattern {
	return GroupGraphPattern{GraphPattern: Patterns(items...)}
}

// Optional returns an OPTIONAL group holding items.
func Optional(items ...Pattern) GroupGraphPattern {
	return GroupGraphPattern{GraphPattern: Patterns(items...), Optional: true}
}

// Union returns { a } UNION { b } ... Each alternative that is not already
// a GraphPattern or group is wrapped in one.
func Union(alternatives ...Pattern) UnionGraphPattern {
	alts := make([]GraphPattern, 0, len(alternatives))
	for _, p := range alternatives {
		alts = append(alts, toGraphPattern(p))
	}
	return UnionGraphPattern{Alternatives: alts}
}

// Graph returns GRAPH name { items }.
func Graph(name Expression, items ...Pattern) GraphGraphPattern {
	return GraphGraphPattern{GraphPattern: Patterns(items...), Name: name}
}

// FilterPattern returns an inline FILTER entry built from constraints.
func FilterPattern(constraints ...Expression) FilterGraphPattern {
	return FilterGraphPattern{Filters: []Filter{NewFilter(constraints...)}}
}

func toGraphPattern(p Pattern) GraphPattern {
	switch g := p.(type) {
	case GraphPattern:
		return g
	case GroupGraphPattern:
		if !g.Optional {
			return g.GraphPattern
		}
	}
	return Patterns(p)
}

// Add returns a copy with items appended.
func (g GraphPattern) Add(items ...Pattern) GraphPattern {
	g.Patterns = slices.Concat(g.Patterns, items)
	return g
}

// Filter returns a copy with one more Filter entry, the conjunction of
// constraints. It returns g unchanged when constraints is empty.
func (g GraphPattern) Filter(constraints ...Expression) GraphPattern {
	if len(constraints) == 0 {
		return g
	}
	g.Filters = slices.Concat(g.Filters, []Filter{NewFilter(constraints...)})
	return g
}

// IsEmpty reports whether g holds neither patterns nor filters.
func (g GraphPattern) IsEmpty() bool { return len(g.Patterns) == 0 && len(g.Filters) == 0 }

// Add returns a copy with items appended.
func (g GroupGraphPattern) Add(items ...Pattern) GroupGraphPattern {
	g.GraphPattern = g.GraphPattern.Add(items...)
	return g
}

// Filter returns a copy with one more Filter entry.
func (g GroupGraphPattern) Filter(constraints ...Expression) GroupGraphPattern {
	g.GraphPattern = g.GraphPattern.Filter(constraints...)
	return g
}

// Add returns a copy with items appended.
func (g GraphGraphPattern) Add(items ...Pattern) GraphGraphPattern {
	g.GraphPattern = g.GraphPattern.Add(items...)
	return g
}

// Filter returns a copy with one more Filter entry.
func (g GraphGraphPattern) Filter(constraints ...Expression) GraphGraphPattern {
	g.GraphPattern = g.GraphPattern.Filter(constraints...)
	return g
}
