package vocabgen

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// A vocabulary file looks like:
//
//	# Friend of a Friend
//	namespace foaf <http://xmlns.com/foaf/0.1/> "Friend of a Friend." {
//	    class Agent, Person sub Agent "A person.";
//	    property name, mbox, knows;
//	    property givenname @deprecated;
//	}

// vocabFile is the top-level grammar: any number of namespace blocks.
type vocabFile struct {
	Namespaces []*namespaceDef `parser:"@@*"`
}

// namespaceDef parses: namespace prefix <iri> ["doc"] { decl* }
type namespaceDef struct {
	Prefix string     `parser:"'namespace' @Ident"`
	IRI    string     `parser:"@IRIRef"`
	Doc    *string    `parser:"@String?"`
	Decls  []*declDef `parser:"'{' @@* '}'"`
}

// declDef parses: kind term [, term]* ;
type declDef struct {
	Kind  string     `parser:"@('class' | 'property' | 'individual' | 'function')"`
	Terms []*termDef `parser:"@@ ( ',' @@ )* ';'"`
}

// termDef parses: name [sub parent] [@deprecated] ["doc"]
type termDef struct {
	Name       string  `parser:"@Ident"`
	Parent     *string `parser:"( 'sub' @Ident )?"`
	Deprecated bool    `parser:"@'@deprecated'?"`
	Doc        *string `parser:"@String?"`
}

var vocabLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Keyword", Pattern: `\b(namespace|class|property|individual|function|sub)\b`},
	{Name: "Annot", Pattern: `@deprecated\b`},
	{Name: "IRIRef", Pattern: `<[^<>"{}|^\x60\\\x00-\x20]*>`},
	{Name: "String", Pattern: `"(?:[^"\\\n]|\\.)*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_\-]*`},
	{Name: "Punct", Pattern: `[{};,]`},
})

var vocabParser = participle.MustBuild[vocabFile](
	participle.Lexer(vocabLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// ParseVocabulary parses the vocabulary declarations in input. The result
// is not validated; call Vocabulary.Validate before generating code.
func ParseVocabulary(input string) (*Vocabulary, error) {
	return parse("vocab", input)
}

// ParseVocabularyFile reads and parses the vocabulary file at path.
func ParseVocabularyFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return parse(path, string(data))
}

func parse(filename, input string) (*Vocabulary, error) {
	file, err := vocabParser.ParseString(filename, input)
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return convertFile(file)
}

// convertFile converts the participle tree to the model.
func convertFile(file *vocabFile) (*Vocabulary, error) {
	v := &Vocabulary{}
	for _, nd := range file.Namespaces {
		ns := NamespaceSpec{
			Prefix: nd.Prefix,
			IRI:    strings.TrimSuffix(strings.TrimPrefix(nd.IRI, "<"), ">"),
		}
		if nd.Doc != nil {
			doc, err := unquote(*nd.Doc)
			if err != nil {
				return nil, fmt.Errorf("parse vocabulary: namespace %s: %w", nd.Prefix, err)
			}
			ns.Doc = doc
		}
		for _, d := range nd.Decls {
			for _, td := range d.Terms {
				t, err := convertTerm(TermKind(d.Kind), td)
				if err != nil {
					return nil, fmt.Errorf("parse vocabulary: %s:%s: %w", nd.Prefix, td.Name, err)
				}
				ns.Terms = append(ns.Terms, t)
			}
		}
		v.Namespaces = append(v.Namespaces, ns)
	}
	return v, nil
}

func convertTerm(kind TermKind, td *termDef) (TermSpec, error) {
	t := TermSpec{Name: td.Name, Kind: kind, Deprecated: td.Deprecated}
	if td.Parent != nil {
		t.Parent = *td.Parent
	}
	if td.Doc != nil {
		doc, err := unquote(*td.Doc)
		if err != nil {
			return t, err
		}
		t.Doc = doc
	}
	return t, nil
}

// unquote decodes a double-quoted doc string.
func unquote(s string) (string, error) {
	out, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("bad string %s: %w", s, err)
	}
	return out, nil
}
