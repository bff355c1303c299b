package sparql

import (
	"testing"

	"github.com/CaliLuke/go-sparql/ast"
	"github.com/sebdah/goldie/v2"
)

const (
	foaf ast.Namespace = "http://xmlns.com/foaf/0.1/"
	ex   ast.Namespace = "http://example.org/"
)

var (
	x, y, z     = ast.Var("x"), ast.Var("y"), ast.Var("z")
	name, mbox  = ast.Var("name"), ast.Var("mbox")
	book, price = ast.Var("book"), ast.Var("price")

	fname  = foaf.Term("name")
	fmbox  = foaf.Term("mbox")
	fknows = foaf.Term("knows")
	alice  = ex.Term("alice")

	foafOnly = ast.PrefixMap{foaf: "foaf"}
	prefixes = ast.PrefixMap{foaf: "foaf", ex: "ex", ast.RDFS: "rdfs"}
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func exprs(items ...ast.Expression) []ast.Expression { return items }
