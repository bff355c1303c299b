package ast

import (
	"fmt"
	"strings"
)

// PatternCompiler renders graph patterns. It embeds an ExpressionCompiler
// for terms and FILTER constraints, sharing its prefix map and usage
// tracking.
type PatternCompiler struct {
	*ExpressionCompiler
}

// NewPatternCompiler returns a compiler using prefixes.
func NewPatternCompiler(prefixes PrefixMap) *PatternCompiler {
	return &PatternCompiler{ExpressionCompiler: NewExpressionCompiler(prefixes)}
}

// Block renders g as a braced group: "{ ... }", or "{ }" when empty.
func (c *PatternCompiler) Block(g GraphPattern) (string, error) {
	toks, err := c.block(g)
	if err != nil {
		return "", err
	}
	return strings.Join(toks, " "), nil
}

// Pattern renders a single pattern as it would appear inside a group.
func (c *PatternCompiler) Pattern(p Pattern) (string, error) {
	toks, err := c.pattern(p)
	if err != nil {
		return "", err
	}
	return strings.Join(toks, " "), nil
}

// Filter renders a FILTER entry.
func (c *PatternCompiler) Filter(f Filter) (string, error) {
	toks, err := c.filter(f)
	if err != nil {
		return "", err
	}
	return strings.Join(toks, " "), nil
}

func (c *PatternCompiler) block(g GraphPattern) ([]string, error) {
	body, err := c.body(g)
	if err != nil {
		return nil, err
	}
	toks := make([]string, 0, len(body)+2)
	toks = append(toks, "{")
	toks = append(toks, body...)
	return append(toks, "}"), nil
}

// body renders the entries of g separated by "." wherever an entry does
// not already end in a closing brace. Empty inline groups are dropped.
func (c *PatternCompiler) body(g GraphPattern) ([]string, error) {
	entries := make([][]string, 0, len(g.Patterns)+len(g.Filters))
	for _, p := range g.Patterns {
		toks, err := c.pattern(p)
		if err != nil {
			return nil, err
		}
		if len(toks) > 0 {
			entries = append(entries, toks)
		}
	}
	for _, f := range g.Filters {
		toks, err := c.filter(f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, toks)
	}

	var out []string
	for i, toks := range entries {
		out = append(out, toks...)
		if i < len(entries)-1 && toks[len(toks)-1] != "}" {
			out = append(out, ".")
		}
	}
	return out, nil
}

func (c *PatternCompiler) pattern(p Pattern) ([]string, error) {
	switch n := p.(type) {
	case nil:
		return nil, compileError(p, "nil pattern")
	case Triple:
		return c.triple(n)
	case TriplesWithSharedSubject:
		return c.sharedSubject(n)
	case GraphPattern:
		return c.body(n)
	case GroupGraphPattern:
		toks, err := c.block(n.GraphPattern)
		if err != nil {
			return nil, err
		}
		if n.Optional {
			toks = append([]string{"OPTIONAL"}, toks...)
		}
		return toks, nil
	case UnionGraphPattern:
		return c.union(n)
	case GraphGraphPattern:
		return c.graph(n)
	case FilterGraphPattern:
		return c.body(GraphPattern{Filters: n.Filters})
	default:
		return nil, &NotSupportedError{Feature: fmt.Sprintf("pattern %T", p)}
	}
}

func (c *PatternCompiler) triple(t Triple) ([]string, error) {
	s, err := c.node(t.Subject)
	if err != nil {
		return nil, err
	}
	p, err := c.predicate(t.Predicate)
	if err != nil {
		return nil, err
	}
	o, err := c.node(t.Object)
	if err != nil {
		return nil, err
	}
	return []string{s, p, o}, nil
}

func (c *PatternCompiler) sharedSubject(t TriplesWithSharedSubject) ([]string, error) {
	if len(t.Predicates) == 0 {
		return nil, compileError(t, "no predicate-object pairs")
	}
	s, err := c.node(t.Subject)
	if err != nil {
		return nil, err
	}
	toks := []string{s}
	for i, po := range t.Predicates {
		if i > 0 {
			toks = append(toks, ";")
		}
		if len(po.Objects) == 0 {
			return nil, compileError(t, "predicate without objects")
		}
		p, err := c.predicate(po.Predicate)
		if err != nil {
			return nil, err
		}
		toks = append(toks, p)
		for j, obj := range po.Objects {
			if j > 0 {
				toks = append(toks, ",")
			}
			o, err := c.node(obj)
			if err != nil {
				return nil, err
			}
			toks = append(toks, o)
		}
	}
	return toks, nil
}

// predicate renders an IRI or variable, using the keyword a for rdf:type.
func (c *PatternCompiler) predicate(e Expression) (string, error) {
	if a, ok := e.(AnnotatedExpression); ok && a.Language == "" && a.Datatype.IsZero() {
		e = a.Value
	}
	switch n := e.(type) {
	case IRI:
		if n == IsA {
			return "a", nil
		}
		return c.Term(n)
	case Variable:
		return c.Term(n)
	default:
		return "", compileError(e, "predicate must be an IRI or a variable")
	}
}

func (c *PatternCompiler) union(u UnionGraphPattern) ([]string, error) {
	if len(u.Alternatives) < 2 {
		return nil, compileError(u, "union needs at least two alternatives, got %d", len(u.Alternatives))
	}
	var toks []string
	for i, alt := range u.Alternatives {
		if i > 0 {
			toks = append(toks, "UNION")
		}
		b, err := c.block(alt)
		if err != nil {
			return nil, err
		}
		toks = append(toks, b...)
	}
	return toks, nil
}

func (c *PatternCompiler) graph(g GraphGraphPattern) ([]string, error) {
	var name string
	var err error
	switch n := g.Name.(type) {
	case IRI, Variable:
		name, err = c.Term(n.(Term))
	default:
		err = compileError(g, "graph name must be an IRI or a variable, got %T", g.Name)
	}
	if err != nil {
		return nil, err
	}
	b, err := c.block(g.GraphPattern)
	if err != nil {
		return nil, err
	}
	return append([]string{"GRAPH", name}, b...), nil
}

// filter renders FILTER followed by the constraint, bracketed unless the
// constraint is a function call. Single-operand conditionals are unwrapped.
func (c *PatternCompiler) filter(f Filter) ([]string, error) {
	constraint := f.Constraint
	for {
		if inner, ok := constraint.(Filter); ok {
			constraint = inner.Constraint
			continue
		}
		if cond, ok := constraint.(ConditionalExpression); ok && len(cond.Operands) == 1 {
			constraint = cond.Operands[0]
			continue
		}
		break
	}
	if constraint == nil {
		return nil, compileError(f, "empty constraint")
	}
	_, call := constraint.(FunctionCall)
	s, err := c.child(constraint, !call)
	if err != nil {
		return nil, err
	}
	return []string{"FILTER", s}, nil
}
