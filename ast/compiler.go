package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Precedence tiers, lowest binding first.
const (
	PrecedenceOr = iota
	PrecedenceAnd
	PrecedenceComparison
	PrecedenceAdditive
	PrecedenceMultiplicative
	PrecedenceUnary
	PrecedenceAtomic
)

var operatorTokens = map[Operator]string{
	OpOr:  "||",
	OpAnd: "&&",
	OpEq:  "=",
	OpNe:  "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLe:  "<=",
	OpGe:  ">=",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPos: "+",
	OpNeg: "-",
	OpNot: "!",
}

var operatorPrecedence = map[Operator]int{
	OpOr:  PrecedenceOr,
	OpAnd: PrecedenceAnd,
	OpEq:  PrecedenceComparison,
	OpNe:  PrecedenceComparison,
	OpLt:  PrecedenceComparison,
	OpGt:  PrecedenceComparison,
	OpLe:  PrecedenceComparison,
	OpGe:  PrecedenceComparison,
	OpAdd: PrecedenceAdditive,
	OpSub: PrecedenceAdditive,
	OpMul: PrecedenceMultiplicative,
	OpDiv: PrecedenceMultiplicative,
	OpPos: PrecedenceUnary,
	OpNeg: PrecedenceUnary,
	OpNot: PrecedenceUnary,
}

// Operators whose right operand needs brackets at equal precedence.
var nonAssociative = map[Operator]bool{
	OpSub: true,
	OpDiv: true,
	OpEq:  true,
	OpNe:  true,
	OpLt:  true,
	OpGt:  true,
	OpLe:  true,
	OpGe:  true,
}

// Precedence returns the binding strength of e's outermost node. Terms,
// function calls and other atoms bind tightest.
func Precedence(e Expression) int {
	var op Operator
	switch n := e.(type) {
	case UnaryExpression:
		op = n.Operator
	case BinaryExpression:
		op = n.Operator
	case ConditionalExpression:
		op = n.Operator
	default:
		return PrecedenceAtomic
	}
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return PrecedenceAtomic
}

// ExpressionCompiler renders expressions and terms as SPARQL text. IRIs
// under a namespace of Prefixes are shortened to prefix:local.
//
// A compiler records which namespaces it has rendered; use a fresh one per
// query and do not share it between goroutines.
type ExpressionCompiler struct {
	// Prefixes maps namespaces to prefix names. It may be nil.
	Prefixes PrefixMap

	used map[Namespace]struct{}
}

// NewExpressionCompiler returns a compiler using prefixes.
func NewExpressionCompiler(prefixes PrefixMap) *ExpressionCompiler {
	return &ExpressionCompiler{Prefixes: prefixes, used: make(map[Namespace]struct{})}
}

// UsedPrefixes returns the bindings of every namespace rendered so far,
// sorted by prefix name.
func (c *ExpressionCompiler) UsedPrefixes() []PrefixBinding {
	var out []PrefixBinding
	for _, b := range c.Prefixes.Bindings() {
		if _, ok := c.used[b.Namespace]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Compile renders e without enclosing brackets.
func (c *ExpressionCompiler) Compile(e Expression) (string, error) {
	return c.expression(e)
}

// CompileBracketed renders e enclosed in brackets.
func (c *ExpressionCompiler) CompileBracketed(e Expression) (string, error) {
	s, err := c.expression(e)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (c *ExpressionCompiler) child(e Expression, bracketed bool) (string, error) {
	if bracketed {
		return c.CompileBracketed(e)
	}
	return c.Compile(e)
}

func (c *ExpressionCompiler) expression(e Expression) (string, error) {
	switch n := e.(type) {
	case nil:
		return c.IRI(Nil), nil
	case Term:
		return c.Term(n)
	case UnaryExpression:
		return c.unary(n)
	case BinaryExpression:
		return c.binary(n)
	case ConditionalExpression:
		return c.conditional(n)
	case FunctionCall:
		return c.functionCall(n)
	case AnnotatedExpression:
		return c.annotated(n)
	case CollectionPattern:
		return c.collection(n)
	case Filter:
		return c.expression(n.Constraint)
	case Wildcard:
		return "*", nil
	default:
		return "", &NotSupportedError{Feature: fmt.Sprintf("expression %T", e)}
	}
}

func (c *ExpressionCompiler) unary(n UnaryExpression) (string, error) {
	if Precedence(n) != PrecedenceUnary {
		return "", compileError(n, "operator %q is not unary", n.Operator.Name)
	}
	operand, err := c.child(n.Operand, Precedence(n.Operand) < PrecedenceUnary)
	if err != nil {
		return "", err
	}
	return operatorTokens[n.Operator] + operand, nil
}

func (c *ExpressionCompiler) binary(n BinaryExpression) (string, error) {
	p := Precedence(n)
	if p == PrecedenceAtomic || p == PrecedenceUnary || p <= PrecedenceAnd {
		return "", compileError(n, "operator %q is not a binary operator", n.Operator.Name)
	}
	lp, rp := Precedence(n.Left), Precedence(n.Right)
	left, err := c.child(n.Left, lp < p || (lp == p && p == PrecedenceComparison))
	if err != nil {
		return "", err
	}
	right, err := c.child(n.Right, rp < p || (rp == p && nonAssociative[n.Operator]))
	if err != nil {
		return "", err
	}
	return left + " " + operatorTokens[n.Operator] + " " + right, nil
}

func (c *ExpressionCompiler) conditional(n ConditionalExpression) (string, error) {
	if len(n.Operands) == 0 {
		return "", compileError(n, "no operands")
	}
	p := Precedence(n)
	if p != PrecedenceOr && p != PrecedenceAnd {
		return "", compileError(n, "operator %q is not a logical operator", n.Operator.Name)
	}
	parts := make([]string, 0, len(n.Operands))
	for _, operand := range n.Operands {
		s, err := c.child(operand, Precedence(operand) < p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "+operatorTokens[n.Operator]+" "), nil
}

func (c *ExpressionCompiler) functionCall(n FunctionCall) (string, error) {
	name, err := c.Operator(n.Operator)
	if err != nil {
		return "", err
	}
	args := make([]string, 0, len(n.Args))
	for _, a := range n.Args {
		s, err := c.Compile(a)
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

func (c *ExpressionCompiler) annotated(n AnnotatedExpression) (string, error) {
	if n.Language == "" && n.Datatype.IsZero() {
		return c.expression(n.Value)
	}
	lit, ok := n.Value.(Literal)
	if !ok {
		return "", compileError(n, "language or datatype annotation on %T", n.Value)
	}
	if n.Language != "" {
		lit.Lang, lit.Datatype = n.Language, IRI{}
	}
	if !n.Datatype.IsZero() {
		lit.Datatype = n.Datatype
	}
	return c.Term(lit)
}

func (c *ExpressionCompiler) collection(n CollectionPattern) (string, error) {
	parts := make([]string, 0, len(n.Items)+2)
	parts = append(parts, "(")
	for _, item := range n.Items {
		s, err := c.node(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(append(parts, ")"), " "), nil
}

// node renders a subject, object or collection member: a term, a nested
// collection, or an annotation resolving to one of those.
func (c *ExpressionCompiler) node(e Expression) (string, error) {
	switch n := e.(type) {
	case nil:
		return c.IRI(Nil), nil
	case Term:
		return c.Term(n)
	case CollectionPattern:
		return c.collection(n)
	case AnnotatedExpression:
		switch n.Value.(type) {
		case Term, CollectionPattern:
			return c.annotated(n)
		}
		return "", compileError(n, "annotated %T does not resolve to a term", n.Value)
	default:
		return "", compileError(e, "not a term")
	}
}

// Term renders an RDF term.
func (c *ExpressionCompiler) Term(t Term) (string, error) {
	switch n := t.(type) {
	case IRI:
		if n.IsZero() {
			return "", compileError(n, "empty IRI")
		}
		return c.IRI(n), nil
	case Literal:
		return c.literal(n)
	case BlankNode:
		if n.ID == "" {
			return "", compileError(n, "empty blank node label")
		}
		return "_:" + n.ID, nil
	case Variable:
		if n.Name == "" {
			return "", compileError(n, "empty variable name")
		}
		return "?" + n.Name, nil
	default:
		return "", &NotSupportedError{Feature: fmt.Sprintf("term %T", t)}
	}
}

func (c *ExpressionCompiler) literal(l Literal) (string, error) {
	if l.Lang != "" && !l.Datatype.IsZero() {
		return "", compileError(l, "both language %q and datatype %s", l.Lang, l.Datatype)
	}
	if bare, ok := bareLiteral(l); ok {
		return bare, nil
	}
	s := `"` + EscapeString(l.Lexical) + `"`
	switch {
	case l.Lang != "":
		s += "@" + l.Lang
	case !l.Datatype.IsZero():
		s += "^^" + c.IRI(l.Datatype)
	}
	return s, nil
}

// bareLiteral renders integer, float and boolean literals without quotes
// or datatype when their lexical form is valid for the datatype.
func bareLiteral(l Literal) (string, bool) {
	lex := strings.ToLower(l.Lexical)
	switch l.Datatype {
	case XSDInteger, XSDInt:
		_, err := strconv.ParseInt(lex, 10, 64)
		return lex, err == nil
	case XSDFloat:
		if _, err := strconv.ParseFloat(lex, 64); err != nil || strings.ContainsAny(lex, "nix") {
			return "", false
		}
		return lex, true
	case XSDBoolean:
		return lex, lex == "true" || lex == "false"
	}
	return "", false
}

// IRI renders iri as prefix:local when a registered namespace matches and
// the local part is a valid prefixed-name local part, and as <iri> otherwise.
func (c *ExpressionCompiler) IRI(iri IRI) string {
	if ns, prefix, local, ok := c.Prefixes.Resolve(iri.Value); ok && isLocalName(local) {
		if c.used != nil {
			c.used[ns] = struct{}{}
		}
		return prefix + ":" + local
	}
	return "<" + iri.Value + ">"
}

// Operator renders the token or function name of op.
func (c *ExpressionCompiler) Operator(op Operator) (string, error) {
	if tok, ok := operatorTokens[op]; ok {
		return tok, nil
	}
	if !op.IRI.IsZero() {
		return c.IRI(op.IRI), nil
	}
	if op.Name != "" {
		return op.Name, nil
	}
	return "", compileError(op, "empty operator")
}

// EscapeString escapes backslashes, double quotes and control characters
// for use inside a quoted literal. Control characters without a short
// escape are written as \uXXXX.
func EscapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
