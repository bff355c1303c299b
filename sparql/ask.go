package sparql

import (
	"context"
	"slices"

	"github.com/CaliLuke/go-sparql/ast"
)

// Ask is an immutable ASK query.
type Ask struct {
	where where
}

// NewAsk returns an ASK query. Only WithWhere is accepted as an option.
func NewAsk(opts ...Option) (Ask, error) {
	s, err := applyOptions("NewAsk", opts, "where")
	if err != nil {
		return Ask{}, err
	}
	return Ask{where: s.where}, nil
}

// Form returns FormAsk.
func (q Ask) Form() Form { return FormAsk }

// Where appends patterns to the WHERE clause as one inline group.
func (q Ask) Where(patterns ...ast.Pattern) Ask {
	q.where = q.where.with(false, patterns)
	return q
}

// WhereOptional appends patterns to the WHERE clause as an OPTIONAL group.
func (q Ask) WhereOptional(patterns ...ast.Pattern) Ask {
	q.where = q.where.with(true, patterns)
	return q
}

// Filter appends one FILTER holding the conjunction of constraints.
func (q Ask) Filter(constraints ...ast.Expression) Ask {
	q.where = q.where.constrain(constraints)
	return q
}

// FilterEq is Filter with an extra ?name = value constraint per map entry.
func (q Ask) FilterEq(eq map[string]ast.Expression, constraints ...ast.Expression) (Ask, error) {
	extra, err := equalities("Ask.FilterEq", eq)
	if err != nil {
		return q, err
	}
	return q.Filter(slices.Concat(constraints, extra)...), nil
}

// Compile renders the query.
func (q Ask) Compile(prefixes ast.PrefixMap) (string, error) {
	return NewQueryCompiler(prefixes).Compile(q)
}

// Execute compiles the query and runs it against store.
func (q Ask) Execute(ctx context.Context, store Store, prefixes ast.PrefixMap) (Rows, error) {
	return Execute(ctx, store, q, prefixes)
}
