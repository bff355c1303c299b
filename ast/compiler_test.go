package ast

import (
	"errors"
	"testing"
)

const foaf Namespace = "http://xmlns.com/foaf/0.1/"

func TestCompileExpression(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")
	price, name := Var("price"), Var("name")

	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{"or inside and", And(Or(Int(1), Int(2)), Int(3)), "(1 || 2) && 3"},
		{"and inside or", Or(And(Int(1), Int(2)), Int(3)), "1 && 2 || 3"},
		{"flattened or", Or(Int(1), Or(Int(2), Or(Int(3), Int(4))), Int(5)), "1 || 2 || 3 || 4 || 5"},
		{"flattened and", And(And(x, y), z), "?x && ?y && ?z"},
		{"additive under multiplicative", Mul(Add(x, y), z), "(?x + ?y) * ?z"},
		{"multiplicative under additive", Add(Mul(x, y), z), "?x * ?y + ?z"},
		{"left nested subtraction", Sub(Sub(x, y), z), "?x - ?y - ?z"},
		{"right nested subtraction", Sub(x, Sub(y, z)), "?x - (?y - ?z)"},
		{"right nested addition", Add(x, Add(y, z)), "?x + ?y + ?z"},
		{"negated sum", Neg(Add(x, Int(1))), "-(?x + 1)"},
		{"positive", Pos(x), "+?x"},
		{"not bound", Not(Bound(x)), "!bound(?x)"},
		{"comparison", Le(price, Int(20)), "?price <= 20"},
		{"inequality", Ne(x, y), "?x != ?y"},
		{"comparison of sums", Gt(Add(x, Int(1)), Div(y, Int(2))), "?x + 1 > ?y / 2"},
		{"mixed conditional", And(Eq(x, Int(1)), Or(Lt(y, Int(2)), Gt(y, Int(5)))), "?x = 1 && (?y < 2 || ?y > 5)"},
		{"regex", Regex(name, Str("Smith")), `regex(?name, "Smith")`},
		{"regex with flags", Regex(name, Str("^s"), Str("i")), `regex(?name, "^s", "i")`},
		{"lang equality", Eq(LangOf(x), Str("en")), `lang(?x) = "en"`},
		{"same term", SameTerm(x, y), "sameTerm(?x, ?y)"},
		{"lang matches", LangMatches(LangOf(x), Str("*")), `langMatches(lang(?x), "*")`},
		{"type tests", Or(IsIRI(x), IsBlank(x), IsLiteral(x)), "isIRI(?x) || isBlank(?x) || isLiteral(?x)"},
		{"str and datatype", Eq(DatatypeOf(StrOf(x)), XSDString), "datatype(str(?x)) = <http://www.w3.org/2001/XMLSchema#string>"},
		{"ascending", Asc(x), "ASC(?x)"},
		{"descending", Desc(Add(x, y)), "DESC(?x + ?y)"},
		{"logical-or spelling", LogicalOr(x, y), "?x || ?y"},
		{"rdfterm-equal spelling", RDFTermEqual(x, y), "?x = ?y"},
		{"nil", nil, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#nil>"},
		{"wildcard", All, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewExpressionCompiler(nil)
			got, err := c.Compile(tt.expr)
			if err != nil {
				t.Fatalf("compile error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestCompileLiterals(t *testing.T) {
	prefixes := PrefixMap{XSD: "xsd"}

	tests := []struct {
		name     string
		prefixes PrefixMap
		expr     Expression
		want     string
	}{
		{"integer", nil, Int(42), "42"},
		{"negative integer", nil, Int(-7), "-7"},
		{"float", nil, Float(10.5), "10.5"},
		{"boolean", nil, Bool(true), "true"},
		{"boolean lexical is lowercased", nil, Typed("True", XSDBoolean), "true"},
		{"invalid integer stays quoted", nil, Typed("abc", XSDInteger), `"abc"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"double stays typed", nil, Typed("1.5", XSDDouble), `"1.5"^^<http://www.w3.org/2001/XMLSchema#double>`},
		{"plain string", nil, Str("Alice"), `"Alice"`},
		{"escaped string", nil, Str("say \"hi\"\n"), `"say \"hi\"\n"`},
		{"language tag", nil, LangStr("chat", "fr"), `"chat"@fr`},
		{"datatype absolute", nil, Typed("2020-01-01", XSDDate), `"2020-01-01"^^<http://www.w3.org/2001/XMLSchema#date>`},
		{"datatype prefixed", prefixes, Typed("2020-01-01", XSDDate), `"2020-01-01"^^xsd:date`},
		{"language annotation", nil, WithLang(Str("chat"), "fr"), `"chat"@fr`},
		{"datatype annotation", prefixes, WithDatatype(Str("5"), XSDDecimal), `"5"^^xsd:decimal`},
		{"empty annotation", nil, AnnotatedExpression{Value: Var("x")}, "?x"},
		{"blank node", nil, Blank("b0"), "_:b0"},
		{"rdf nil prefixed", PrefixMap{RDF: "rdf"}, nil, "rdf:nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewExpressionCompiler(tt.prefixes)
			got, err := c.Compile(tt.expr)
			if err != nil {
				t.Fatalf("compile error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

// IRIs are shortened only by exact, registered namespace prefixes. The
// compiler never guesses a namespace by splitting on # or /.
func TestCompileIRI(t *testing.T) {
	tests := []struct {
		name     string
		prefixes PrefixMap
		iri      string
		want     string
	}{
		{"registered namespace", PrefixMap{foaf: "foaf"}, "http://xmlns.com/foaf/0.1/name", "foaf:name"},
		{"unregistered namespace", PrefixMap{foaf: "foaf"}, "http://example.org/x", "<http://example.org/x>"},
		{"no prefix map", nil, "http://xmlns.com/foaf/0.1/name", "<http://xmlns.com/foaf/0.1/name>"},
		{"invalid local part", PrefixMap{foaf: "foaf"}, "http://xmlns.com/foaf/0.1/a/b", "<http://xmlns.com/foaf/0.1/a/b>"},
		{"namespace itself", PrefixMap{foaf: "foaf"}, "http://xmlns.com/foaf/0.1/", "foaf:"},
		{"longest namespace wins", PrefixMap{"http://example.org/": "ex", "http://example.org/ns#": "ns"}, "http://example.org/ns#thing", "ns:thing"},
		{"no split on hash", PrefixMap{"http://example.org/ns": "ns"}, "http://example.org/ns#thing", "<http://example.org/ns#thing>"},
		{"empty prefix", PrefixMap{"http://example.org/": ""}, "http://example.org/thing", ":thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewExpressionCompiler(tt.prefixes)
			if got := c.IRI(NewIRI(tt.iri)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompileExtensionFunction(t *testing.T) {
	c := NewExpressionCompiler(PrefixMap{FN: "fn"})
	got, err := c.Compile(Call(FN.Operator("ceiling"), Var("x")))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if got != "fn:ceiling(?x)" {
		t.Errorf("got %s", got)
	}

	c = NewExpressionCompiler(nil)
	got, err = c.Compile(Call(FN.Operator("ceiling"), Var("x")))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if got != "<http://www.w3.org/2005/xpath-functions#ceiling>(?x)" {
		t.Errorf("got %s", got)
	}
}

func TestCompileBracketed(t *testing.T) {
	c := NewExpressionCompiler(nil)
	got, err := c.CompileBracketed(Eq(Var("x"), Int(1)))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if got != "(?x = 1)" {
		t.Errorf("got %s", got)
	}
}

func TestCompileExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
	}{
		{"empty conditional", ConditionalExpression{Operator: OpAnd}},
		{"conditional with arithmetic operator", ConditionalExpression{Operator: OpAdd, Operands: []Expression{Int(1)}}},
		{"binary with function operator", BinaryExpression{Operator: OpBound, Left: Var("x"), Right: Var("y")}},
		{"unary with binary operator", UnaryExpression{Operator: OpMul, Operand: Var("x")}},
		{"annotation on variable", WithLang(Var("x"), "en")},
		{"literal with language and datatype", Literal{Lexical: "x", Lang: "en", Datatype: XSDString}},
		{"empty variable", Variable{}},
		{"empty iri", IRI{}},
		{"empty operator", FunctionCall{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewExpressionCompiler(nil)
			_, err := c.Compile(tt.expr)
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CompileError, got %v", err)
			}
		})
	}
}

func TestPrecedence(t *testing.T) {
	x := Var("x")
	tests := []struct {
		expr Expression
		want int
	}{
		{Or(x, x), PrecedenceOr},
		{And(x, x), PrecedenceAnd},
		{Eq(x, x), PrecedenceComparison},
		{Sub(x, x), PrecedenceAdditive},
		{Div(x, x), PrecedenceMultiplicative},
		{Neg(x), PrecedenceUnary},
		{Bound(x), PrecedenceAtomic},
		{x, PrecedenceAtomic},
		{Str("a"), PrecedenceAtomic},
	}
	for _, tt := range tests {
		if got := Precedence(tt.expr); got != tt.want {
			t.Errorf("Precedence(%T) = %d, want %d", tt.expr, got, tt.want)
		}
	}
}

func TestUsedPrefixes(t *testing.T) {
	dc := Namespace("http://purl.org/dc/elements/1.1/")
	c := NewExpressionCompiler(PrefixMap{foaf: "foaf", dc: "dc"})
	if _, err := c.Compile(Eq(Var("x"), foaf.Term("Person"))); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	used := c.UsedPrefixes()
	if len(used) != 1 || used[0].Prefix != "foaf" || used[0].Namespace != foaf {
		t.Errorf("unexpected used prefixes: %v", used)
	}
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{`"quoted"`, `\"quoted\"`},
		{"line\nbreak\ttab\rret", `line\nbreak\ttab\rret`},
		{"bell\bform\f", `bell\bform\f`},
		{"nul\x00esc\x1bunit\x1f", `nul\u0000esc\u001Bunit\u001F`},
		{"café ☕", "café ☕"},
	}
	for _, tt := range tests {
		if got := EscapeString(tt.in); got != tt.want {
			t.Errorf("EscapeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
