package sparql

import (
	"context"
	"slices"
	"strings"

	"github.com/CaliLuke/go-sparql/ast"
)

// Construct is an immutable CONSTRUCT query. Its template is either a list
// of triple patterns or raw template text.
type Construct struct {
	template []ast.Pattern
	raw      string
	where    where
	modifiers
}

// NewConstruct returns a CONSTRUCT with the given triple template.
func NewConstruct(template []ast.Pattern, opts ...Option) (Construct, error) {
	if err := checkTemplate("NewConstruct", template); err != nil {
		return Construct{}, err
	}
	s, err := applyOptions("NewConstruct", opts, "where", "order", "limit", "offset")
	if err != nil {
		return Construct{}, err
	}
	return Construct{template: slices.Clone(template), where: s.where, modifiers: s.mods}, nil
}

// NewConstructText returns a CONSTRUCT whose template body is raw text,
// written between the template braces as is.
func NewConstructText(raw string, opts ...Option) (Construct, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Construct{}, invalidRequest("NewConstructText", "empty template")
	}
	q, err := NewConstruct(nil, opts...)
	if err != nil {
		return Construct{}, err
	}
	q.raw = raw
	return q, nil
}

// checkTemplate accepts only triples, shared-subject lists and inline
// groups of those.
func checkTemplate(op string, patterns []ast.Pattern) error {
	for _, p := range patterns {
		switch n := p.(type) {
		case ast.Triple, ast.TriplesWithSharedSubject:
		case ast.GraphPattern:
			if len(n.Filters) > 0 {
				return invalidRequest(op, "FILTER is not allowed in a template")
			}
			if err := checkTemplate(op, n.Patterns); err != nil {
				return err
			}
		default:
			return invalidRequest(op, "%T is not allowed in a template", p)
		}
	}
	return nil
}

// Form returns FormConstruct.
func (q Construct) Form() Form { return FormConstruct }

// Template replaces the template with triple patterns.
func (q Construct) Template(patterns ...ast.Pattern) (Construct, error) {
	if err := checkTemplate("Construct.Template", patterns); err != nil {
		return q, err
	}
	q.template, q.raw = slices.Clone(patterns), ""
	return q, nil
}

// Where appends patterns to the WHERE clause as one inline group.
func (q Construct) Where(patterns ...ast.Pattern) Construct {
	q.where = q.where.with(false, patterns)
	return q
}

// WhereOptional appends patterns to the WHERE clause as an OPTIONAL group.
func (q Construct) WhereOptional(patterns ...ast.Pattern) Construct {
	q.where = q.where.with(true, patterns)
	return q
}

// Filter appends one FILTER holding the conjunction of constraints.
func (q Construct) Filter(constraints ...ast.Expression) Construct {
	q.where = q.where.constrain(constraints)
	return q
}

// FilterEq is Filter with an extra ?name = value constraint per map entry.
func (q Construct) FilterEq(eq map[string]ast.Expression, constraints ...ast.Expression) (Construct, error) {
	extra, err := equalities("Construct.FilterEq", eq)
	if err != nil {
		return q, err
	}
	return q.Filter(slices.Concat(constraints, extra)...), nil
}

// OrderBy replaces the ORDER BY list. No arguments clears it.
func (q Construct) OrderBy(exprs ...ast.Expression) Construct {
	q.modifiers = q.withOrderBy(exprs)
	return q
}

// Limit sets LIMIT, or clears it when n is negative.
func (q Construct) Limit(n int) Construct {
	q.modifiers = q.withLimit(n)
	return q
}

// Offset sets OFFSET, or clears it when n is negative.
func (q Construct) Offset(n int) Construct {
	q.modifiers = q.withOffset(n)
	return q
}

// Slice is Offset(start).Limit(stop - start).
func (q Construct) Slice(start, stop int, step ...int) (Construct, error) {
	m, err := q.slice("Construct.Slice", start, stop, step)
	if err != nil {
		return q, err
	}
	q.modifiers = m
	return q, nil
}

// Compile renders the query.
func (q Construct) Compile(prefixes ast.PrefixMap) (string, error) {
	return NewQueryCompiler(prefixes).Compile(q)
}

// Execute compiles the query and runs it against store.
func (q Construct) Execute(ctx context.Context, store Store, prefixes ast.PrefixMap) (Rows, error) {
	return Execute(ctx, store, q, prefixes)
}
