package sparql

import (
	"context"
	"slices"

	"github.com/CaliLuke/go-sparql/ast"
)

// Select is an immutable SELECT query.
type Select struct {
	projection []ast.Variable
	all        bool
	distinct   bool
	reduced    bool
	where      where
	modifiers
}

// NewSelect returns a SELECT projecting the given variables, or every
// variable when projection holds ast.All. Each projection entry must be a
// variable, an expression resolving to one, or a plain string literal
// holding a variable name.
func NewSelect(projection []ast.Expression, opts ...Option) (Select, error) {
	s, err := applyOptions("NewSelect", opts, "distinct", "reduced", "where", "order", "limit", "offset")
	if err != nil {
		return Select{}, err
	}
	if s.distinct && s.reduced {
		return Select{}, invalidRequest("NewSelect", "DISTINCT and REDUCED are mutually exclusive")
	}
	vars, all, err := resolveProjection("NewSelect", projection)
	if err != nil {
		return Select{}, err
	}
	return Select{
		projection: vars,
		all:        all,
		distinct:   s.distinct,
		reduced:    s.reduced,
		where:      s.where,
		modifiers:  s.mods,
	}, nil
}

// SelectVars is NewSelect for a plain variable list.
func SelectVars(vars ...ast.Variable) (Select, error) {
	exprs := make([]ast.Expression, len(vars))
	for i, v := range vars {
		exprs[i] = v
	}
	return NewSelect(exprs)
}

// resolveProjection validates a projection list. Duplicates are dropped.
func resolveProjection(op string, exprs []ast.Expression) ([]ast.Variable, bool, error) {
	if len(exprs) == 0 {
		return nil, false, invalidRequest(op, "empty projection")
	}
	var vars []ast.Variable
	all := false
	for _, e := range exprs {
		if _, ok := e.(ast.Wildcard); ok {
			all = true
			continue
		}
		v, err := projectedVariable(e)
		if err != nil {
			return nil, false, &ast.InvalidRequestError{Op: op, Message: "invalid projection", Cause: err}
		}
		if !slices.Contains(vars, v) {
			vars = append(vars, v)
		}
	}
	if all && len(vars) > 0 {
		return nil, false, invalidRequest(op, "projection mixes * with named variables")
	}
	return vars, all, nil
}

// Form returns FormSelect.
func (q Select) Form() Form { return FormSelect }

// Projection returns the projected variables, or [ast.All].
func (q Select) Projection() []ast.Expression {
	if q.all {
		return []ast.Expression{ast.All}
	}
	out := make([]ast.Expression, len(q.projection))
	for i, v := range q.projection {
		out[i] = v
	}
	return out
}

// IsDistinct reports whether DISTINCT is set.
func (q Select) IsDistinct() bool { return q.distinct }

// IsReduced reports whether REDUCED is set.
func (q Select) IsReduced() bool { return q.reduced }

// Where appends patterns to the WHERE clause as one inline group.
func (q Select) Where(patterns ...ast.Pattern) Select {
	q.where = q.where.with(false, patterns)
	return q
}

// WhereOptional appends patterns to the WHERE clause as an OPTIONAL group.
func (q Select) WhereOptional(patterns ...ast.Pattern) Select {
	q.where = q.where.with(true, patterns)
	return q
}

// Filter appends one FILTER holding the conjunction of constraints.
func (q Select) Filter(constraints ...ast.Expression) Select {
	q.where = q.where.constrain(constraints)
	return q
}

// FilterEq is Filter with an extra ?name = value constraint per map entry.
func (q Select) FilterEq(eq map[string]ast.Expression, constraints ...ast.Expression) (Select, error) {
	extra, err := equalities("Select.FilterEq", eq)
	if err != nil {
		return q, err
	}
	return q.Filter(slices.Concat(constraints, extra)...), nil
}

// Project replaces the projection.
func (q Select) Project(vars ...ast.Expression) (Select, error) {
	projection, all, err := resolveProjection("Select.Project", vars)
	if err != nil {
		return q, err
	}
	q.projection, q.all = projection, all
	return q, nil
}

// ProjectAdd extends the projection.
func (q Select) ProjectAdd(vars ...ast.Expression) (Select, error) {
	return q.Project(slices.Concat(q.Projection(), vars)...)
}

// Distinct sets or clears DISTINCT. Setting it clears REDUCED.
func (q Select) Distinct(flag bool) Select {
	q.distinct = flag
	if flag {
		q.reduced = false
	}
	return q
}

// Reduced sets or clears REDUCED. Setting it clears DISTINCT.
func (q Select) Reduced(flag bool) Select {
	q.reduced = flag
	if flag {
		q.distinct = false
	}
	return q
}

// OrderBy replaces the ORDER BY list. No arguments clears it.
func (q Select) OrderBy(exprs ...ast.Expression) Select {
	q.modifiers = q.withOrderBy(exprs)
	return q
}

// Limit sets LIMIT, or clears it when n is negative.
func (q Select) Limit(n int) Select {
	q.modifiers = q.withLimit(n)
	return q
}

// Offset sets OFFSET, or clears it when n is negative.
func (q Select) Offset(n int) Select {
	q.modifiers = q.withOffset(n)
	return q
}

// Slice is Offset(start).Limit(stop - start). Either bound may be
// Unbounded. A step other than 1 is rejected.
func (q Select) Slice(start, stop int, step ...int) (Select, error) {
	m, err := q.slice("Select.Slice", start, stop, step)
	if err != nil {
		return q, err
	}
	q.modifiers = m
	return q, nil
}

// Compile renders the query.
func (q Select) Compile(prefixes ast.PrefixMap) (string, error) {
	return NewQueryCompiler(prefixes).Compile(q)
}

// Execute compiles the query and runs it against store.
func (q Select) Execute(ctx context.Context, store Store, prefixes ast.PrefixMap) (Rows, error) {
	return Execute(ctx, store, q, prefixes)
}
