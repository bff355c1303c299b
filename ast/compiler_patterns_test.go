package ast

import (
	"errors"
	"testing"
)

func TestCompilePatterns(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")
	name, mbox, price := Var("name"), Var("mbox"), Var("price")
	fname, fmbox, fknows := foaf.Term("name"), foaf.Term("mbox"), foaf.Term("knows")

	tests := []struct {
		name    string
		pattern GraphPattern
		want    string
	}{
		{
			name:    "empty",
			pattern: GraphPattern{},
			want:    "{ }",
		},
		{
			name:    "single triple",
			pattern: Patterns(T(x, fname, y)),
			want:    "{ ?x foaf:name ?y }",
		},
		{
			name:    "triples separated by dots",
			pattern: Patterns(T(x, fname, name), T(x, fmbox, mbox)),
			want:    "{ ?x foaf:name ?name . ?x foaf:mbox ?mbox }",
		},
		{
			name:    "optional",
			pattern: Patterns(T(x, fname, name), Optional(T(x, fmbox, mbox))),
			want:    "{ ?x foaf:name ?name . OPTIONAL { ?x foaf:mbox ?mbox } }",
		},
		{
			name:    "no dot after closing brace",
			pattern: Patterns(Optional(T(x, fmbox, mbox)), T(x, fname, name)),
			want:    "{ OPTIONAL { ?x foaf:mbox ?mbox } ?x foaf:name ?name }",
		},
		{
			name:    "union",
			pattern: Patterns(Union(T(x, fname, name), Patterns(T(x, fmbox, mbox)))),
			want:    "{ { ?x foaf:name ?name } UNION { ?x foaf:mbox ?mbox } }",
		},
		{
			name:    "union of groups",
			pattern: Patterns(Union(Group(T(x, fname, name), T(x, fmbox, mbox)), T(x, fknows, y))),
			want:    "{ { ?x foaf:name ?name . ?x foaf:mbox ?mbox } UNION { ?x foaf:knows ?y } }",
		},
		{
			name:    "explicit group is braced",
			pattern: Patterns(Group(T(x, fname, name))),
			want:    "{ { ?x foaf:name ?name } }",
		},
		{
			name:    "inline group",
			pattern: Patterns(Patterns(T(x, fname, name), T(x, fmbox, mbox)), T(x, fknows, y)),
			want:    "{ ?x foaf:name ?name . ?x foaf:mbox ?mbox . ?x foaf:knows ?y }",
		},
		{
			name:    "empty inline group is dropped",
			pattern: Patterns(Patterns(), T(x, fname, name)),
			want:    "{ ?x foaf:name ?name }",
		},
		{
			name:    "named graph variable",
			pattern: Patterns(Graph(Var("g"), T(x, fname, name))),
			want:    "{ GRAPH ?g { ?x foaf:name ?name } }",
		},
		{
			name:    "named graph iri",
			pattern: Patterns(Graph(NewIRI("http://example.org/g"), T(x, fname, name))),
			want:    "{ GRAPH <http://example.org/g> { ?x foaf:name ?name } }",
		},
		{
			name:    "shared subject",
			pattern: Patterns(Subject(x).Add(fname, name).Add(fmbox, Var("m1"), Var("m2"))),
			want:    "{ ?x foaf:name ?name ; foaf:mbox ?m1 , ?m2 }",
		},
		{
			name:    "collections",
			pattern: Patterns(T(Collection(x, y), fname, Collection(fknows, z))),
			want:    "{ ( ?x ?y ) foaf:name ( foaf:knows ?z ) }",
		},
		{
			name:    "nested collection",
			pattern: Patterns(T(x, fknows, Collection(Int(1), Collection(Int(2), Int(3))))),
			want:    "{ ?x foaf:knows ( 1 ( 2 3 ) ) }",
		},
		{
			name:    "empty collection",
			pattern: Patterns(T(x, fknows, Collection())),
			want:    "{ ?x foaf:knows ( ) }",
		},
		{
			name:    "rdf type predicate",
			pattern: Patterns(T(x, IsA, foaf.Term("Person"))),
			want:    "{ ?x a foaf:Person }",
		},
		{
			name:    "rdf type object",
			pattern: Patterns(T(x, Var("p"), IsA)),
			want:    "{ ?x ?p <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> }",
		},
		{
			name:    "literal object",
			pattern: Patterns(T(x, fname, Str("Alice"))),
			want:    `{ ?x foaf:name "Alice" }`,
		},
		{
			name:    "function call filter",
			pattern: Patterns(T(x, fname, name)).Filter(Regex(name, Str("Smith"))),
			want:    `{ ?x foaf:name ?name . FILTER regex(?name, "Smith") }`,
		},
		{
			name:    "filter constraints are conjoined",
			pattern: Patterns(T(x, Var("p"), price)).Filter(Le(price, Int(20)), Ge(price, Int(10))),
			want:    "{ ?x ?p ?price . FILTER (?price <= 20 && ?price >= 10) }",
		},
		{
			name:    "repeated filters",
			pattern: Patterns(T(x, fname, name)).Filter(Bound(x)).Filter(Not(Bound(y))),
			want:    "{ ?x foaf:name ?name . FILTER bound(?x) . FILTER (!bound(?y)) }",
		},
		{
			name:    "single operand conjunction is unwrapped",
			pattern: GraphPattern{Filters: []Filter{{Constraint: And(Bound(x))}}},
			want:    "{ FILTER bound(?x) }",
		},
		{
			name:    "inline filter pattern",
			pattern: Patterns(T(x, fname, name), FilterPattern(Bound(x)), T(x, fmbox, mbox)),
			want:    "{ ?x foaf:name ?name . FILTER bound(?x) . ?x foaf:mbox ?mbox }",
		},
		{
			name:    "filter after optional",
			pattern: Patterns(Optional(T(x, fmbox, mbox))).Filter(Bound(mbox)),
			want:    "{ OPTIONAL { ?x foaf:mbox ?mbox } FILTER bound(?mbox) }",
		},
		{
			name:    "nested filter in group",
			pattern: Patterns(Optional(T(x, fmbox, mbox)).Filter(IsIRI(mbox))),
			want:    "{ OPTIONAL { ?x foaf:mbox ?mbox . FILTER isIRI(?mbox) } }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPatternCompiler(PrefixMap{foaf: "foaf"})
			got, err := c.Block(tt.pattern)
			if err != nil {
				t.Fatalf("compile error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestCompileSinglePattern(t *testing.T) {
	c := NewPatternCompiler(nil)
	got, err := c.Pattern(Optional(T(Var("s"), Var("p"), Var("o"))))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if got != "OPTIONAL { ?s ?p ?o }" {
		t.Errorf("got %s", got)
	}

	got, err = c.Filter(NewFilter(Bound(Var("s")), Bound(Var("o"))))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if got != "FILTER (bound(?s) && bound(?o))" {
		t.Errorf("got %s", got)
	}
}

func TestCompilePatternErrors(t *testing.T) {
	x := Var("x")
	p := foaf.Term("name")

	tests := []struct {
		name    string
		pattern GraphPattern
	}{
		{"single alternative union", Patterns(Union(T(x, p, x)))},
		{"literal predicate", Patterns(T(x, Str("name"), x))},
		{"collection predicate", Patterns(T(x, Collection(x), x))},
		{"arithmetic object", Patterns(T(x, p, Add(x, Int(1))))},
		{"function call subject", Patterns(T(Bound(x), p, x))},
		{"literal graph name", Patterns(Graph(Str("g"), T(x, p, x)))},
		{"nil pattern", GraphPattern{Patterns: []Pattern{nil}}},
		{"subject without predicates", Patterns(Subject(x))},
		{"predicate without objects", Patterns(Subject(x).Add(p))},
		{"empty filter", GraphPattern{Filters: []Filter{{}}}},
		{"annotated variable object", Patterns(T(x, p, WithLang(x, "en")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPatternCompiler(nil)
			_, err := c.Block(tt.pattern)
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CompileError, got %v", err)
			}
		})
	}
}
