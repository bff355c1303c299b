package driver

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/CaliLuke/go-sparql/ast"
	"github.com/CaliLuke/go-sparql/sparql"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Variable names of the rows decoded from a graph response.
const (
	VarSubject   = "subject"
	VarPredicate = "predicate"
	VarObject    = "object"
)

// ntDocument parses an N-Triples document.
type ntDocument struct {
	Triples []*ntTriple `parser:"@@*"`
}

// ntTriple parses: subject predicate object .
type ntTriple struct {
	Subject   ntTerm `parser:"@@"`
	Predicate ntTerm `parser:"@@"`
	Object    ntTerm `parser:"@@ '.'"`
}

// ntTerm is one of: <iri>, _:label, or a literal.
type ntTerm struct {
	IRI     *string    `parser:"  @IRIRef"`
	Blank   *string    `parser:"| @BlankNode"`
	Literal *ntLiteral `parser:"| @@"`
}

// ntLiteral parses: "lexical" [@lang | ^^<datatype>]
type ntLiteral struct {
	Lexical  string  `parser:"@String"`
	Lang     *string `parser:"( @LangTag"`
	Datatype *string `parser:"| '^^' @IRIRef )?"`
}

var ntLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "IRIRef", Pattern: `<[^<>"{}|^\x60\\\x00-\x20]*>`},
	{Name: "BlankNode", Pattern: `_:[A-Za-z0-9_](?:[A-Za-z0-9_.\-]*[A-Za-z0-9_\-])?`},
	{Name: "String", Pattern: `"(?:[^"\\\n\r]|\\.)*"`},
	{Name: "LangTag", Pattern: `@[a-zA-Z]+(?:-[a-zA-Z0-9]+)*`},
	{Name: "Punct", Pattern: `\^\^|\.`},
})

var ntParser = participle.MustBuild[ntDocument](
	participle.Lexer(ntLexer),
	participle.Elide("Comment", "Whitespace"),
)

// decodeNTriples decodes a graph response into subject/predicate/object rows.
func decodeNTriples(data []byte) (*Result, error) {
	doc, err := ntParser.ParseBytes("response.nt", data)
	if err != nil {
		return nil, fmt.Errorf("decode n-triples: %w", err)
	}
	r := &Result{vars: []string{VarSubject, VarPredicate, VarObject}}
	for _, t := range doc.Triples {
		s, err := t.Subject.term()
		if err != nil {
			return nil, err
		}
		p, err := t.Predicate.term()
		if err != nil {
			return nil, err
		}
		o, err := t.Object.term()
		if err != nil {
			return nil, err
		}
		r.rows = append(r.rows, sparql.Row{VarSubject: s, VarPredicate: p, VarObject: o})
	}
	return r, nil
}

func (t ntTerm) term() (ast.Term, error) {
	switch {
	case t.IRI != nil:
		return ast.NewIRI(unwrapIRI(*t.IRI)), nil
	case t.Blank != nil:
		return ast.BlankNode{ID: strings.TrimPrefix(*t.Blank, "_:")}, nil
	case t.Literal != nil:
		lexical, err := unescapeLiteral(t.Literal.Lexical)
		if err != nil {
			return nil, fmt.Errorf("decode n-triples: literal %s: %w", t.Literal.Lexical, err)
		}
		lit := ast.Literal{Lexical: lexical}
		if t.Literal.Lang != nil {
			lit.Lang = strings.TrimPrefix(*t.Literal.Lang, "@")
		}
		if t.Literal.Datatype != nil {
			lit.Datatype = ast.NewIRI(unwrapIRI(*t.Literal.Datatype))
		}
		return lit, nil
	default:
		return nil, fmt.Errorf("decode n-triples: empty term")
	}
}

func unwrapIRI(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
}

// unescapeLiteral strips the quotes of a literal and decodes its ECHAR
// (\t \b \n \r \f \" \' \\) and UCHAR (\uXXXX, \UXXXXXXXX) escapes. Any
// other escape is an error.
func unescapeLiteral(quoted string) (string, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(quoted, `"`), `"`)
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("trailing backslash")
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case '"', '\'', '\\':
			b.WriteByte(s[i])
		case 'u', 'U':
			width := 4
			if s[i] == 'U' {
				width = 8
			}
			if i+width >= len(s) {
				return "", fmt.Errorf("short \\%c escape", s[i])
			}
			n, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(n)) {
				return "", fmt.Errorf("bad \\%c escape %q", s[i], s[i+1:i+1+width])
			}
			b.WriteRune(rune(n))
			i += width
		default:
			return "", fmt.Errorf("invalid escape \\%c", s[i])
		}
	}
	return b.String(), nil
}
