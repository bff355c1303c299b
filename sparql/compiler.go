package sparql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CaliLuke/go-sparql/ast"
)

// QueryCompiler renders query values to SPARQL text. Each call to Compile
// uses a fresh pattern compiler, so only the namespaces a query actually
// references produce PREFIX lines.
type QueryCompiler struct {
	Prefixes ast.PrefixMap
}

// NewQueryCompiler returns a compiler shortening IRIs with prefixes.
func NewQueryCompiler(prefixes ast.PrefixMap) *QueryCompiler {
	return &QueryCompiler{Prefixes: prefixes}
}

// Compile renders q. The prefix map is validated first.
func (c *QueryCompiler) Compile(q Query) (string, error) {
	if q == nil {
		return "", invalidRequest("Compile", "nil query")
	}
	if err := c.Prefixes.Validate(); err != nil {
		return "", &ast.InvalidRequestError{Op: "Compile", Message: "invalid prefix map", Cause: err}
	}
	pc := ast.NewPatternCompiler(c.Prefixes)

	var body []string
	var err error
	switch n := q.(type) {
	case Select:
		body, err = c.selectQuery(pc, n)
	case Ask:
		body, err = c.ask(pc, n)
	case Construct:
		body, err = c.construct(pc, n)
	case Describe:
		body, err = c.describe(pc, n)
	case Update:
		body, err = c.update(pc, n)
	default:
		return "", &ast.NotSupportedError{Feature: fmt.Sprintf("query %T", q)}
	}
	if err != nil {
		return "", err
	}

	var lines []string
	for _, b := range pc.UsedPrefixes() {
		lines = append(lines, fmt.Sprintf("PREFIX %s: <%s>", b.Prefix, b.Namespace))
	}
	lines = append(lines, strings.Join(body, " "))
	return strings.Join(lines, "\n"), nil
}

func (c *QueryCompiler) selectQuery(pc *ast.PatternCompiler, q Select) ([]string, error) {
	toks := []string{"SELECT"}
	switch {
	case q.distinct:
		toks = append(toks, "DISTINCT")
	case q.reduced:
		toks = append(toks, "REDUCED")
	}
	if q.all {
		toks = append(toks, "*")
	} else {
		for _, v := range q.projection {
			toks = append(toks, v.String())
		}
	}
	return c.tail(pc, toks, q.where, &q.modifiers)
}

func (c *QueryCompiler) ask(pc *ast.PatternCompiler, q Ask) ([]string, error) {
	return c.tail(pc, []string{"ASK"}, q.where, nil)
}

func (c *QueryCompiler) construct(pc *ast.PatternCompiler, q Construct) ([]string, error) {
	toks := []string{"CONSTRUCT"}
	if q.raw != "" {
		toks = append(toks, "{", q.raw, "}")
	} else {
		b, err := pc.Block(ast.GraphPattern{Patterns: q.template})
		if err != nil {
			return nil, err
		}
		toks = append(toks, b)
	}
	return c.tail(pc, toks, q.where, &q.modifiers)
}

func (c *QueryCompiler) describe(pc *ast.PatternCompiler, q Describe) ([]string, error) {
	toks := []string{"DESCRIBE"}
	if q.all {
		toks = append(toks, "*")
	} else {
		for _, t := range q.resources {
			s, err := pc.Term(t)
			if err != nil {
				return nil, err
			}
			toks = append(toks, s)
		}
	}
	return c.tail(pc, toks, q.where, &q.modifiers)
}

// tail appends the WHERE clause and, when mods is set, the solution
// modifiers.
func (c *QueryCompiler) tail(pc *ast.PatternCompiler, toks []string, w where, mods *modifiers) ([]string, error) {
	b, err := pc.Block(w.graphPattern())
	if err != nil {
		return nil, err
	}
	toks = append(toks, "WHERE", b)
	if mods == nil {
		return toks, nil
	}
	m, err := c.solutionModifiers(pc, *mods)
	if err != nil {
		return nil, err
	}
	return append(toks, m...), nil
}

// solutionModifiers renders ORDER BY, LIMIT and OFFSET. Terms and function calls
// are written as is in ORDER BY; other expressions are bracketed. OFFSET 0
// is omitted.
func (c *QueryCompiler) solutionModifiers(pc *ast.PatternCompiler, m modifiers) ([]string, error) {
	var toks []string
	if len(m.orderBy) > 0 {
		toks = append(toks, "ORDER BY")
		for _, e := range m.orderBy {
			var s string
			var err error
			switch e.(type) {
			case ast.Term, ast.FunctionCall:
				s, err = pc.Compile(e)
			default:
				s, err = pc.CompileBracketed(e)
			}
			if err != nil {
				return nil, err
			}
			toks = append(toks, s)
		}
	}
	if m.limit.set {
		toks = append(toks, "LIMIT", strconv.Itoa(m.limit.n))
	}
	if m.offset.set && m.offset.n > 0 {
		toks = append(toks, "OFFSET", strconv.Itoa(m.offset.n))
	}
	return toks, nil
}

func (c *QueryCompiler) update(pc *ast.PatternCompiler, u Update) ([]string, error) {
	if u.hasData() {
		var ops []string
		if len(u.deleteData) > 0 {
			b, err := pc.Block(ast.GraphPattern{Patterns: u.deleteData})
			if err != nil {
				return nil, err
			}
			ops = append(ops, "DELETE DATA "+b)
		}
		if len(u.insertData) > 0 {
			b, err := pc.Block(ast.GraphPattern{Patterns: u.insertData})
			if err != nil {
				return nil, err
			}
			ops = append(ops, "INSERT DATA "+b)
		}
		return []string{strings.Join(ops, " ; ")}, nil
	}

	if !u.hasWhere {
		return nil, invalidRequest("Compile", "update has neither data nor a WHERE clause")
	}
	whereBlock, err := pc.Block(u.where.graphPattern())
	if err != nil {
		return nil, err
	}
	if u.deleteWhere {
		return []string{"DELETE WHERE", whereBlock}, nil
	}
	if len(u.insert) == 0 && len(u.delete) == 0 {
		return nil, invalidRequest("Compile", "update has a WHERE clause but no INSERT or DELETE template")
	}

	var toks []string
	if len(u.delete) > 0 {
		b, err := pc.Block(ast.GraphPattern{Patterns: u.delete})
		if err != nil {
			return nil, err
		}
		toks = append(toks, "DELETE", b)
	}
	if len(u.insert) > 0 {
		b, err := pc.Block(ast.GraphPattern{Patterns: u.insert})
		if err != nil {
			return nil, err
		}
		toks = append(toks, "INSERT", b)
	}
	return append(toks, "WHERE", whereBlock), nil
}
