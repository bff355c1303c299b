package ast

import (
	"errors"
	"testing"
	"time"
)

func TestNewVariable(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"x", "x", false},
		{"?x", "x", false},
		{"$x", "x", false},
		{"name_1", "name_1", false},
		{"1st", "1st", false},
		{"été", "été", false},
		{"", "", true},
		{"?", "", true},
		{"?$x", "", true},
		{"two words", "", true},
		{"a-b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := NewVariable(tt.in)
			if tt.wantErr {
				var ire *InvalidRequestError
				if !errors.As(err, &ire) {
					t.Fatalf("expected *InvalidRequestError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Name != tt.want {
				t.Errorf("got %q, want %q", v.Name, tt.want)
			}
		})
	}
}

func TestVarPanicsOnEmptyName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Var("")
}

func TestNewLiteralRejectsLangAndDatatype(t *testing.T) {
	_, err := NewLiteral("chat", "fr", XSDString)
	var ire *InvalidRequestError
	if !errors.As(err, &ire) {
		t.Fatalf("expected *InvalidRequestError, got %v", err)
	}

	l, err := NewLiteral("chat", "fr", IRI{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l != LangStr("chat", "fr") {
		t.Errorf("got %#v", l)
	}
}

func TestNewBlankNode(t *testing.T) {
	b, err := NewBlankNode("_:b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != "b1" {
		t.Errorf("got %q", b.ID)
	}
	for _, bad := range []string{"", "_:", "-x", "a b"} {
		if _, err := NewBlankNode(bad); err == nil {
			t.Errorf("NewBlankNode(%q): expected error", bad)
		}
	}
}

func TestTermEquality(t *testing.T) {
	if Var("x") != Var("?x") {
		t.Error("variables with the same name should be equal")
	}
	if Term(Var("x")) == Term(Blank("x")) {
		t.Error("different variants should not be equal")
	}
	if Str("1") == Int(1) {
		t.Error("plain and typed literals should not be equal")
	}
	if foaf.Term("name") != NewIRI("http://xmlns.com/foaf/0.1/name") {
		t.Error("IRIs with the same value should be equal")
	}
	if LangStr("a", "en") == LangStr("a", "fr") {
		t.Error("literals with different languages should not be equal")
	}
}

func TestTermString(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{NewIRI("http://example.org/a"), "<http://example.org/a>"},
		{Str("a\"b"), `"a\"b"`},
		{LangStr("chat", "fr"), `"chat"@fr`},
		{Int(3), `"3"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{Blank("b"), "_:b"},
		{Var("x"), "?x"},
	}
	for _, tt := range tests {
		if got := tt.term.String(); got != tt.want {
			t.Errorf("%#v.String() = %s, want %s", tt.term, got, tt.want)
		}
	}
}

func TestTermKind(t *testing.T) {
	tests := []struct {
		term Term
		want TermKind
	}{
		{NewIRI("http://example.org/a"), KindIRI},
		{Str("a"), KindLiteral},
		{Blank("b"), KindBlankNode},
		{Var("x"), KindVariable},
	}
	for _, tt := range tests {
		if got := tt.term.Kind(); got != tt.want {
			t.Errorf("%#v.Kind() = %s, want %s", tt.term, got, tt.want)
		}
	}
}

func TestNewLit(t *testing.T) {
	type label string
	n := 7
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want Literal
	}{
		{"string", "Alice", Str("Alice")},
		{"int", 42, Int(42)},
		{"int64", int64(-3), Int(-3)},
		{"uint8", uint8(9), Typed("9", XSDInteger)},
		{"float64", 10.5, Float(10.5)},
		{"float32", float32(0.5), Float(0.5)},
		{"bool", false, Bool(false)},
		{"time", ts, Typed("2024-03-01T12:00:00Z", XSDDateTime)},
		{"pointer", &n, Int(7)},
		{"named string", label("x"), Str("x")},
		{"literal passthrough", LangStr("a", "en"), LangStr("a", "en")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLit(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNewLitUnsupported(t *testing.T) {
	var nilPtr *int
	for _, in := range []any{nil, nilPtr, struct{}{}, []string{"a"}, make(chan int)} {
		_, err := NewLit(in)
		var nse *NotSupportedError
		if !errors.As(err, &nse) {
			t.Errorf("NewLit(%T): expected *NotSupportedError, got %v", in, err)
		}
	}
}

func TestToVariable(t *testing.T) {
	v, err := ToVariable(WithLang(Var("x"), "en"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Var("x") {
		t.Errorf("got %v", v)
	}

	for _, e := range []Expression{Str("x"), Variable{}, Bound(Var("x"))} {
		if _, err := ToVariable(e); err == nil {
			t.Errorf("ToVariable(%#v): expected error", e)
		}
	}
}
