package ast

import (
	"maps"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAndFlattensSameOperator(t *testing.T) {
	a, b, c, d := Var("a"), Var("b"), Var("c"), Var("d")

	got := And(And(a, b), c, And(d))
	want := ConditionalExpression{Operator: OpAnd, Operands: []Expression{a, b, c, d}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("And mismatch (-want +got):\n%s", diff)
	}
}

func TestMixedOperatorsNest(t *testing.T) {
	a, b, c := Var("a"), Var("b"), Var("c")

	got := Or(And(a, b), c)
	want := ConditionalExpression{
		Operator: OpOr,
		Operands: []Expression{
			ConditionalExpression{Operator: OpAnd, Operands: []Expression{a, b}},
			c,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Or mismatch (-want +got):\n%s", diff)
	}
}

func TestCombinatorsDoNotAliasArguments(t *testing.T) {
	args := []Expression{Var("a"), Var("b")}
	call := Call(OpSameTerm, args...)
	args[0] = Var("z")
	if call.Args[0] != Var("a") {
		t.Errorf("Call aliased its argument slice: %v", call.Args)
	}

	items := []Expression{Var("a")}
	coll := Collection(items...)
	items[0] = Var("z")
	if coll.Items[0] != Var("a") {
		t.Errorf("Collection aliased its item slice: %v", coll.Items)
	}
}

func TestNewFilter(t *testing.T) {
	x := Var("x")

	if diff := cmp.Diff(Filter{Constraint: Bound(x)}, NewFilter(Bound(x))); diff != "" {
		t.Errorf("single constraint (-want +got):\n%s", diff)
	}

	got := NewFilter(NewFilter(Bound(x), IsIRI(x)), Not(IsBlank(x)))
	want := Filter{Constraint: ConditionalExpression{
		Operator: OpAnd,
		Operands: []Expression{Bound(x), IsIRI(x), Not(IsBlank(x))},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested filter (-want +got):\n%s", diff)
	}
}

func TestGraphPatternAddIsCopyOnWrite(t *testing.T) {
	x := Var("x")
	t1 := T(x, foaf.Term("name"), Var("n"))
	t2 := T(x, foaf.Term("mbox"), Var("m"))
	t3 := T(x, foaf.Term("knows"), Var("k"))

	base := Patterns(t1)
	left := base.Add(t2)
	right := base.Add(t3)

	if len(base.Patterns) != 1 {
		t.Fatalf("base mutated: %v", base.Patterns)
	}
	if diff := cmp.Diff([]Pattern{t1, t2}, left.Patterns); diff != "" {
		t.Errorf("left (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Pattern{t1, t3}, right.Patterns); diff != "" {
		t.Errorf("right (-want +got):\n%s", diff)
	}

	filtered := left.Filter(Bound(x))
	if len(left.Filters) != 0 || len(filtered.Filters) != 1 {
		t.Errorf("Filter mutated its receiver: %d/%d", len(left.Filters), len(filtered.Filters))
	}
	if got := left.Filter(); len(got.Filters) != 0 {
		t.Errorf("empty Filter call added an entry")
	}
}

func TestTriplesWithSharedSubject(t *testing.T) {
	x := Var("x")
	name, mbox, knows := foaf.Term("name"), foaf.Term("mbox"), foaf.Term("knows")

	base := Subject(x).Add(name, Var("n"))
	extended := base.AddPairs(PredicateObject{Predicate: mbox, Objects: []Expression{Var("m")}})
	if len(base.Predicates) != 1 || len(extended.Predicates) != 2 {
		t.Fatalf("AddPairs mutated its receiver: %d/%d", len(base.Predicates), len(extended.Predicates))
	}

	pairs := map[Expression]Expression{knows: Var("k")}
	fromSeq := base.AddSeq(maps.All(pairs))
	want := []PredicateObject{
		{Predicate: name, Objects: []Expression{Var("n")}},
		{Predicate: knows, Objects: []Expression{Var("k")}},
	}
	if diff := cmp.Diff(want, fromSeq.Predicates); diff != "" {
		t.Errorf("AddSeq (-want +got):\n%s", diff)
	}
}

func TestUnionWrapsAlternatives(t *testing.T) {
	t1 := T(Var("x"), foaf.Term("name"), Var("n"))
	t2 := T(Var("x"), foaf.Term("nick"), Var("n"))
	opt := Optional(t2)

	got := Union(t1, Group(t2), opt)
	want := UnionGraphPattern{Alternatives: []GraphPattern{
		{Patterns: []Pattern{t1}},
		{Patterns: []Pattern{t2}},
		{Patterns: []Pattern{opt}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Union (-want +got):\n%s", diff)
	}
}

func TestWithLangKeepsExistingAnnotation(t *testing.T) {
	got := WithDatatype(WithLang(Str("a"), "en"), XSDString)
	want := AnnotatedExpression{Value: Str("a"), Language: "en", Datatype: XSDString}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
