package sparql

import (
	"context"
	"slices"

	"github.com/CaliLuke/go-sparql/ast"
)

// Describe is an immutable DESCRIBE query over variables or IRIs.
type Describe struct {
	resources []ast.Term
	all       bool
	where     where
	modifiers
}

// NewDescribe returns a DESCRIBE of the given variables and IRIs, or of
// every variable when resources holds ast.All.
func NewDescribe(resources []ast.Expression, opts ...Option) (Describe, error) {
	s, err := applyOptions("NewDescribe", opts, "where", "order", "limit", "offset")
	if err != nil {
		return Describe{}, err
	}
	terms, all, err := resolveResources("NewDescribe", resources)
	if err != nil {
		return Describe{}, err
	}
	return Describe{resources: terms, all: all, where: s.where, modifiers: s.mods}, nil
}

func resolveResources(op string, exprs []ast.Expression) ([]ast.Term, bool, error) {
	if len(exprs) == 0 {
		return nil, false, invalidRequest(op, "nothing to describe")
	}
	var terms []ast.Term
	all := false
	for _, e := range exprs {
		switch n := e.(type) {
		case ast.Wildcard:
			all = true
			continue
		case ast.IRI:
			if n.IsZero() {
				return nil, false, invalidRequest(op, "empty IRI")
			}
			if !slices.Contains(terms, ast.Term(n)) {
				terms = append(terms, n)
			}
			continue
		}
		v, err := projectedVariable(e)
		if err != nil {
			return nil, false, &ast.InvalidRequestError{Op: op, Message: "invalid resource", Cause: err}
		}
		if !slices.Contains(terms, ast.Term(v)) {
			terms = append(terms, v)
		}
	}
	if all && len(terms) > 0 {
		return nil, false, invalidRequest(op, "resources mix * with named resources")
	}
	return terms, all, nil
}

// Form returns FormDescribe.
func (q Describe) Form() Form { return FormDescribe }

// Resources returns the described terms, or [ast.All].
func (q Describe) Resources() []ast.Expression {
	if q.all {
		return []ast.Expression{ast.All}
	}
	out := make([]ast.Expression, len(q.resources))
	for i, t := range q.resources {
		out[i] = t
	}
	return out
}

// Project replaces the described resources.
func (q Describe) Project(resources ...ast.Expression) (Describe, error) {
	terms, all, err := resolveResources("Describe.Project", resources)
	if err != nil {
		return q, err
	}
	q.resources, q.all = terms, all
	return q, nil
}

// ProjectAdd extends the described resources.
func (q Describe) ProjectAdd(resources ...ast.Expression) (Describe, error) {
	return q.Project(slices.Concat(q.Resources(), resources)...)
}

// Where appends patterns to the WHERE clause as one inline group.
func (q Describe) Where(patterns ...ast.Pattern) Describe {
	q.where = q.where.with(false, patterns)
	return q
}

// WhereOptional appends patterns to the WHERE clause as an OPTIONAL group.
func (q Describe) WhereOptional(patterns ...ast.Pattern) Describe {
	q.where = q.where.with(true, patterns)
	return q
}

// Filter appends one FILTER holding the conjunction of constraints.
func (q Describe) Filter(constraints ...ast.Expression) Describe {
	q.where = q.where.constrain(constraints)
	return q
}

// FilterEq is Filter with an extra ?name = value constraint per map entry.
func (q Describe) FilterEq(eq map[string]ast.Expression, constraints ...ast.Expression) (Describe, error) {
	extra, err := equalities("Describe.FilterEq", eq)
	if err != nil {
		return q, err
	}
	return q.Filter(slices.Concat(constraints, extra)...), nil
}

// OrderBy replaces the ORDER BY list. No arguments clears it.
func (q Describe) OrderBy(exprs ...ast.Expression) Describe {
	q.modifiers = q.withOrderBy(exprs)
	return q
}

// Limit sets LIMIT, or clears it when n is negative.
func (q Describe) Limit(n int) Describe {
	q.modifiers = q.withLimit(n)
	return q
}

// Offset sets OFFSET, or clears it when n is negative.
func (q Describe) Offset(n int) Describe {
	q.modifiers = q.withOffset(n)
	return q
}

// Slice is Offset(start).Limit(stop - start).
func (q Describe) Slice(start, stop int, step ...int) (Describe, error) {
	m, err := q.slice("Describe.Slice", start, stop, step)
	if err != nil {
		return q, err
	}
	q.modifiers = m
	return q, nil
}

// Compile renders the query.
func (q Describe) Compile(prefixes ast.PrefixMap) (string, error) {
	return NewQueryCompiler(prefixes).Compile(q)
}

// Execute compiles the query and runs it against store.
func (q Describe) Execute(ctx context.Context, store Store, prefixes ast.PrefixMap) (Rows, error) {
	return Execute(ctx, store, q, prefixes)
}
