package ast

import "slices"

// Operator identifies an operator or function. Builtins are identified by
// Name; extension functions by IRI.
type Operator struct {
	// Name is the builtin identity, e.g. "logical-or" or "regex".
	Name string
	// IRI identifies an extension function.
	IRI IRI
}

// IsZero reports whether the operator is unset.
func (o Operator) IsZero() bool { return o.Name == "" && o.IRI.IsZero() }

// Logical, comparison and arithmetic operators.
var (
	OpOr  = Operator{Name: "logical-or"}
	OpAnd = Operator{Name: "logical-and"}
	OpEq  = Operator{Name: "RDFterm-equal"}
	OpNe  = Operator{Name: "RDFterm-not-equal"}
	OpLt  = Operator{Name: "less-than"}
	OpGt  = Operator{Name: "greater-than"}
	OpLe  = Operator{Name: "less-than-or-equal"}
	OpGe  = Operator{Name: "greater-than-or-equal"}
	OpAdd = Operator{Name: "numeric-add"}
	OpSub = Operator{Name: "numeric-subtract"}
	OpMul = Operator{Name: "numeric-multiply"}
	OpDiv = Operator{Name: "numeric-divide"}
	OpPos = Operator{Name: "numeric-unary-plus"}
	OpNeg = Operator{Name: "numeric-unary-minus"}
	OpNot = Operator{Name: "logical-not"}
)

// Builtin functions and ordering modifiers.
var (
	OpBound       = Operator{Name: "bound"}
	OpIsIRI       = Operator{Name: "isIRI"}
	OpIsURI       = Operator{Name: "isURI"}
	OpIsBlank     = Operator{Name: "isBlank"}
	OpIsLiteral   = Operator{Name: "isLiteral"}
	OpStr         = Operator{Name: "str"}
	OpLang        = Operator{Name: "lang"}
	OpDatatype    = Operator{Name: "datatype"}
	OpSameTerm    = Operator{Name: "sameTerm"}
	OpLangMatches = Operator{Name: "langMatches"}
	OpRegex       = Operator{Name: "regex"}
	OpAsc         = Operator{Name: "ASC"}
	OpDesc        = Operator{Name: "DESC"}
)

// Call applies op to args.
func Call(op Operator, args ...Expression) FunctionCall {
	return FunctionCall{Operator: op, Args: slices.Clone(args)}
}

// Bound returns bound(v).
func Bound(v Expression) FunctionCall { return Call(OpBound, v) }

// IsIRI returns isIRI(e).
func IsIRI(e Expression) FunctionCall { return Call(OpIsIRI, e) }

// IsURI returns isURI(e).
func IsURI(e Expression) FunctionCall { return Call(OpIsURI, e) }

// IsBlank returns isBlank(e).
func IsBlank(e Expression) FunctionCall { return Call(OpIsBlank, e) }

// IsLiteral returns isLiteral(e).
func IsLiteral(e Expression) FunctionCall { return Call(OpIsLiteral, e) }

// StrOf returns str(e).
func StrOf(e Expression) FunctionCall { return Call(OpStr, e) }

// LangOf returns lang(e).
func LangOf(e Expression) FunctionCall { return Call(OpLang, e) }

// DatatypeOf returns datatype(e).
func DatatypeOf(e Expression) FunctionCall { return Call(OpDatatype, e) }

// SameTerm returns sameTerm(a, b).
func SameTerm(a, b Expression) FunctionCall { return Call(OpSameTerm, a, b) }

// LangMatches returns langMatches(tag, langRange).
func LangMatches(tag, langRange Expression) FunctionCall {
	return Call(OpLangMatches, tag, langRange)
}

// Regex returns regex(text, pattern) or regex(text, pattern, flags).
func Regex(text, pattern Expression, flags ...Expression) FunctionCall {
	return Call(OpRegex, append([]Expression{text, pattern}, flags...)...)
}

// Asc orders by e ascending.
func Asc(e Expression) FunctionCall { return Call(OpAsc, e) }

// Desc orders by e descending.
func Desc(e Expression) FunctionCall { return Call(OpDesc, e) }

// LogicalOr is the two-operand form of Or.
func LogicalOr(a, b Expression) ConditionalExpression { return Or(a, b) }

// LogicalAnd is the two-operand form of And.
func LogicalAnd(a, b Expression) ConditionalExpression { return And(a, b) }

// RDFTermEqual is Eq under its operator name.
func RDFTermEqual(a, b Expression) BinaryExpression { return Eq(a, b) }
