// Package sparql provides immutable SPARQL query values and their compiler.
//
// Every builder method returns a new value and leaves its receiver
// untouched, so a partially built query can be extended along several
// independent paths:
//
//	base, _ := sparql.NewSelect([]ast.Expression{x, name})
//	q := base.Where(ast.T(x, foaf.Term("name"), name)).Limit(10)
//	text, err := q.Compile(ast.PrefixMap{foaf: "foaf"})
package sparql

import (
	"fmt"
	"slices"

	"github.com/CaliLuke/go-sparql/ast"
	"github.com/benbjohnson/immutable"
)

// Form identifies a query form.
type Form uint8

const (
	FormSelect Form = iota + 1
	FormAsk
	FormConstruct
	FormDescribe
	FormUpdate
)

func (f Form) String() string {
	switch f {
	case FormSelect:
		return "SELECT"
	case FormAsk:
		return "ASK"
	case FormConstruct:
		return "CONSTRUCT"
	case FormDescribe:
		return "DESCRIBE"
	case FormUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("Form(%d)", uint8(f))
	}
}

// Query is a compilable query value.
type Query interface {
	// Form reports the query form.
	Form() Form
	// Compile renders the query using prefixes for IRI shortening.
	Compile(prefixes ast.PrefixMap) (string, error)
}

// Unbounded clears a limit or offset, and marks an open end in Slice.
const Unbounded = -1

// where is the root group of a query. Both lists are persistent, so
// appending to a copy never affects the original.
type where struct {
	patterns *immutable.List[ast.Pattern]
	filters  *immutable.List[ast.Filter]
}

func (w where) add(p ast.Pattern) where {
	if w.patterns == nil {
		w.patterns = immutable.NewList[ast.Pattern]()
	}
	w.patterns = w.patterns.Append(p)
	return w
}

func (w where) filter(f ast.Filter) where {
	if w.filters == nil {
		w.filters = immutable.NewList[ast.Filter]()
	}
	w.filters = w.filters.Append(f)
	return w
}

// with appends patterns as one inline group, or as an OPTIONAL group.
func (w where) with(optional bool, patterns []ast.Pattern) where {
	if len(patterns) == 0 {
		return w
	}
	if optional {
		return w.add(ast.Optional(patterns...))
	}
	return w.add(ast.Patterns(patterns...))
}

func (w where) constrain(constraints []ast.Expression) where {
	if len(constraints) == 0 {
		return w
	}
	return w.filter(ast.NewFilter(constraints...))
}

func (w where) isEmpty() bool {
	return listLen(w.patterns) == 0 && listLen(w.filters) == 0
}

// graphPattern materializes the root group.
func (w where) graphPattern() ast.GraphPattern {
	return ast.GraphPattern{Patterns: listSlice(w.patterns), Filters: listSlice(w.filters)}
}

func listLen[T any](l *immutable.List[T]) int {
	if l == nil {
		return 0
	}
	return l.Len()
}

func listSlice[T any](l *immutable.List[T]) []T {
	if l == nil {
		return nil
	}
	out := make([]T, 0, l.Len())
	for itr := l.Iterator(); !itr.Done(); {
		_, v := itr.Next()
		out = append(out, v)
	}
	return out
}

// equalities turns name/value pairs into equality constraints, sorted by
// name for a stable rendering.
func equalities(op string, eq map[string]ast.Expression) ([]ast.Expression, error) {
	names := make([]string, 0, len(eq))
	for name := range eq {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]ast.Expression, 0, len(names))
	for _, name := range names {
		v, err := ast.NewVariable(name)
		if err != nil {
			return nil, &ast.InvalidRequestError{Op: op, Message: "invalid equality name", Cause: err}
		}
		out = append(out, ast.Eq(v, eq[name]))
	}
	return out, nil
}

// optionalInt is a LIMIT or OFFSET value that may be absent.
type optionalInt struct {
	n   int
	set bool
}

func setOptional(n int) optionalInt {
	if n < 0 {
		return optionalInt{}
	}
	return optionalInt{n: n, set: true}
}

func (o optionalInt) value() int {
	if !o.set {
		return Unbounded
	}
	return o.n
}

// modifiers are the solution modifiers of SELECT, CONSTRUCT and DESCRIBE.
type modifiers struct {
	orderBy []ast.Expression
	limit   optionalInt
	offset  optionalInt
}

func (m modifiers) withOrderBy(exprs []ast.Expression) modifiers {
	m.orderBy = slices.Clone(exprs)
	return m
}

func (m modifiers) withLimit(n int) modifiers {
	m.limit = setOptional(n)
	return m
}

func (m modifiers) withOffset(n int) modifiers {
	m.offset = setOptional(n)
	return m
}

// slice applies start:stop as OFFSET start LIMIT stop-start, replacing both.
// Either end may be Unbounded, which clears that modifier. Only a step of 1
// is supported.
func (m modifiers) slice(op string, start, stop int, step []int) (modifiers, error) {
	for _, s := range step {
		if s != 1 {
			return m, invalidRequest(op, "stepped slice (step %d) is not supported", s)
		}
	}
	if start < 0 && start != Unbounded || stop < 0 && stop != Unbounded {
		return m, invalidRequest(op, "negative slice bound %d:%d", start, stop)
	}
	from := max(start, 0)
	if stop != Unbounded && stop < from {
		return m, invalidRequest(op, "slice stop %d before start %d", stop, from)
	}
	m.offset, m.limit = setOptional(start), optionalInt{}
	if stop != Unbounded {
		m.limit = setOptional(stop - from)
	}
	return m, nil
}

// Bounds returns the LIMIT and OFFSET values, Unbounded when unset.
func (m modifiers) Bounds() (limit, offset int) {
	return m.limit.value(), m.offset.value()
}

// OrderExpressions returns a copy of the ORDER BY list.
func (m modifiers) OrderExpressions() []ast.Expression {
	return slices.Clone(m.orderBy)
}

// --- Construction options ---

// Option configures a query at construction time.
type Option func(*settings)

type settings struct {
	distinct bool
	reduced  bool
	where    where
	mods     modifiers
	applied  []string
}

func (s *settings) mark(name string) { s.applied = append(s.applied, name) }

// WithDistinct sets DISTINCT on a SELECT.
func WithDistinct() Option {
	return func(s *settings) { s.distinct = true; s.mark("distinct") }
}

// WithReduced sets REDUCED on a SELECT.
func WithReduced() Option {
	return func(s *settings) { s.reduced = true; s.mark("reduced") }
}

// WithWhere seeds the WHERE clause with an inline group of patterns.
func WithWhere(patterns ...ast.Pattern) Option {
	return func(s *settings) { s.where = s.where.with(false, patterns); s.mark("where") }
}

// WithOrderBy sets the ORDER BY list.
func WithOrderBy(exprs ...ast.Expression) Option {
	return func(s *settings) { s.mods = s.mods.withOrderBy(exprs); s.mark("order") }
}

// WithLimit sets LIMIT. A negative n leaves it unset.
func WithLimit(n int) Option {
	return func(s *settings) { s.mods = s.mods.withLimit(n); s.mark("limit") }
}

// WithOffset sets OFFSET. A negative n leaves it unset.
func WithOffset(n int) Option {
	return func(s *settings) { s.mods = s.mods.withOffset(n); s.mark("offset") }
}

// applyOptions applies opts and rejects any option not in allowed.
func applyOptions(op string, opts []Option, allowed ...string) (settings, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	for _, name := range s.applied {
		if !slices.Contains(allowed, name) {
			return s, invalidRequest(op, "option %q is not supported", name)
		}
	}
	return s, nil
}

// projectedVariable resolves a projection entry. A plain string literal is
// read as a variable name, so Str("name") and Str("?name") both project ?name.
func projectedVariable(e ast.Expression) (ast.Variable, error) {
	if l, ok := e.(ast.Literal); ok && l.Lang == "" && l.Datatype.IsZero() {
		return ast.NewVariable(l.Lexical)
	}
	return ast.ToVariable(e)
}

func invalidRequest(op, format string, args ...any) error {
	return &ast.InvalidRequestError{Op: op, Message: fmt.Sprintf(format, args...)}
}
