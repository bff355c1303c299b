package ast

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// TermKind identifies the variant of an RDF term.
type TermKind uint8

const (
	// KindIRI is a named node.
	KindIRI TermKind = iota + 1
	// KindLiteral is a literal with optional language tag or datatype.
	KindLiteral
	// KindBlankNode is a blank node.
	KindBlankNode
	// KindVariable is a query variable.
	KindVariable
)

func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlankNode:
		return "blank-node"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Term is an atomic RDF value. Terms are comparable: two terms are equal
// with == iff they are the same variant with the same fields.
type Term interface {
	Expression
	// Kind reports the term variant.
	Kind() TermKind
	// String returns the canonical, prefix-free rendering of the term.
	String() string
}

// IRI is a named node.
type IRI struct {
	// Value is the absolute IRI.
	Value string
}

// NewIRI returns the named node for s.
func NewIRI(s string) IRI { return IRI{Value: s} }

func (IRI) queryNode()       {}
func (IRI) expression()      {}
func (IRI) Kind() TermKind   { return KindIRI }
func (i IRI) String() string { return "<" + i.Value + ">" }

// IsZero reports whether the IRI is empty.
func (i IRI) IsZero() bool { return i.Value == "" }

// Literal is an RDF literal. At most one of Lang and Datatype is set.
type Literal struct {
	// Lexical is the lexical form.
	Lexical string
	// Lang is the language tag, e.g. "en".
	Lang string
	// Datatype is the datatype IRI.
	Datatype IRI
}

func (Literal) queryNode()     {}
func (Literal) expression()    {}
func (Literal) Kind() TermKind { return KindLiteral }

func (l Literal) String() string {
	s := `"` + EscapeString(l.Lexical) + `"`
	switch {
	case l.Lang != "":
		return s + "@" + l.Lang
	case !l.Datatype.IsZero():
		return s + "^^" + l.Datatype.String()
	}
	return s
}

// BlankNode is a labelled blank node.
type BlankNode struct {
	// ID is the label without the _: prefix.
	ID string
}

func (BlankNode) queryNode()       {}
func (BlankNode) expression()      {}
func (BlankNode) Kind() TermKind   { return KindBlankNode }
func (b BlankNode) String() string { return "_:" + b.ID }

// Variable is a query variable. Variables are compared by name.
type Variable struct {
	// Name is the variable name without the leading ? or $.
	Name string
}

func (Variable) queryNode()       {}
func (Variable) expression()      {}
func (Variable) Kind() TermKind   { return KindVariable }
func (v Variable) String() string { return "?" + v.Name }

// NewVariable validates name and returns the variable. A single leading ?
// or $ is accepted and stripped.
func NewVariable(name string) (Variable, error) {
	n := strings.TrimPrefix(strings.TrimPrefix(name, "?"), "$")
	if len(n) < len(name)-1 {
		return Variable{}, invalidRequest("NewVariable", "ambiguous variable name %q", name)
	}
	if n == "" {
		return Variable{}, invalidRequest("NewVariable", "empty variable name")
	}
	if !isVarName(n) {
		return Variable{}, invalidRequest("NewVariable", "invalid variable name %q", name)
	}
	return Variable{Name: n}, nil
}

// Var is like NewVariable but panics on an invalid name. It is meant for
// names fixed at compile time.
func Var(name string) Variable {
	v, err := NewVariable(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Vars returns one variable per name, panicking on any invalid name.
func Vars(names ...string) []Variable {
	out := make([]Variable, len(names))
	for i, n := range names {
		out[i] = Var(n)
	}
	return out
}

// NewBlankNode validates id and returns the blank node.
func NewBlankNode(id string) (BlankNode, error) {
	id = strings.TrimPrefix(id, "_:")
	if id == "" {
		return BlankNode{}, invalidRequest("NewBlankNode", "empty blank node label")
	}
	if !isLocalName(id) || strings.HasPrefix(id, "-") || strings.HasPrefix(id, ".") {
		return BlankNode{}, invalidRequest("NewBlankNode", "invalid blank node label %q", id)
	}
	return BlankNode{ID: id}, nil
}

// Blank is like NewBlankNode but panics on an invalid label.
func Blank(id string) BlankNode {
	b, err := NewBlankNode(id)
	if err != nil {
		panic(err)
	}
	return b
}

// NewLiteral returns a literal with an optional language tag or datatype.
// Setting both is an error.
func NewLiteral(lexical, lang string, datatype IRI) (Literal, error) {
	if lang != "" && !datatype.IsZero() {
		return Literal{}, invalidRequest("NewLiteral", "literal %q has both language %q and datatype %s", lexical, lang, datatype)
	}
	return Literal{Lexical: lexical, Lang: lang, Datatype: datatype}, nil
}

// Str returns a plain string literal.
func Str(s string) Literal { return Literal{Lexical: s} }

// LangStr returns a language-tagged string literal.
func LangStr(s, lang string) Literal { return Literal{Lexical: s, Lang: lang} }

// Typed returns a literal with an explicit datatype.
func Typed(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// Int returns an xsd:integer literal.
func Int(n int64) Literal { return Typed(strconv.FormatInt(n, 10), XSDInteger) }

// Float returns an xsd:float literal.
func Float(f float64) Literal {
	return Typed(strconv.FormatFloat(f, 'g', -1, 64), XSDFloat)
}

// Bool returns an xsd:boolean literal.
func Bool(b bool) Literal { return Typed(strconv.FormatBool(b), XSDBoolean) }

// DateTime returns an xsd:dateTime literal.
func DateTime(t time.Time) Literal { return Typed(t.Format(time.RFC3339Nano), XSDDateTime) }

// NewLit converts a Go value into a literal. Strings become plain
// literals; integers, floats, booleans and time.Time get the matching XSD
// datatype. Pointers are dereferenced. Other kinds are not supported.
func NewLit(value any) (Literal, error) {
	switch v := value.(type) {
	case Literal:
		return v, nil
	case string:
		return Str(v), nil
	case bool:
		return Bool(v), nil
	case time.Time:
		return DateTime(v), nil
	case int:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case float64:
		return Float(v), nil
	}

	if value == nil {
		return Literal{}, &NotSupportedError{Feature: "literal from nil"}
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Literal{}, &NotSupportedError{Feature: fmt.Sprintf("literal from nil %T", value)}
		}
		rv = rv.Elem()
	}
	if rv.Type() == reflect.TypeFor[time.Time]() {
		return DateTime(rv.Interface().(time.Time)), nil
	}
	switch rv.Kind() {
	case reflect.String:
		return Str(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Typed(strconv.FormatUint(rv.Uint(), 10), XSDInteger), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	default:
		return Literal{}, &NotSupportedError{Feature: fmt.Sprintf("literal from %T", value)}
	}
}

// Lit is like NewLit but panics on an unsupported value.
func Lit(value any) Literal {
	l, err := NewLit(value)
	if err != nil {
		panic(err)
	}
	return l
}

// ToVariable resolves e to a variable. It accepts a Variable or an
// AnnotatedExpression wrapping one.
func ToVariable(e Expression) (Variable, error) {
	switch v := e.(type) {
	case Variable:
		if v.Name == "" {
			return Variable{}, invalidRequest("ToVariable", "empty variable name")
		}
		return v, nil
	case AnnotatedExpression:
		return ToVariable(v.Value)
	default:
		return Variable{}, invalidRequest("ToVariable", "%T does not resolve to a variable", e)
	}
}

// isVarName reports whether s is a SPARQL VARNAME.
func isVarName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		case i > 0 && (r == '·' || unicode.Is(unicode.Mn, r) || r == '‿' || r == '⁀'):
		default:
			return false
		}
	}
	return s != ""
}

// isLocalName reports whether s can follow "prefix:" in a prefixed name.
// The empty local part is valid.
func isLocalName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		case i > 0 && (r == '-' || r == '.' || r == '·' || unicode.Is(unicode.Mn, r)):
		default:
			return false
		}
	}
	return !strings.HasSuffix(s, ".")
}
