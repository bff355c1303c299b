package sparql

import (
	"context"
	"slices"

	"github.com/CaliLuke/go-sparql/ast"
)

// Update is an immutable SPARQL Update request. It holds either ground
// data (INSERT DATA / DELETE DATA) or INSERT/DELETE templates bound by a
// WHERE clause, never both.
type Update struct {
	where       where
	hasWhere    bool
	insert      []ast.Pattern
	delete      []ast.Pattern
	deleteWhere bool
	insertData  []ast.Pattern
	deleteData  []ast.Pattern
}

// NewUpdate returns an empty update.
func NewUpdate() Update { return Update{} }

// Form returns FormUpdate.
func (u Update) Form() Form { return FormUpdate }

func (u Update) hasData() bool { return len(u.insertData) > 0 || len(u.deleteData) > 0 }

// Where appends patterns to the WHERE clause. It fails if the update
// carries ground data.
func (u Update) Where(patterns ...ast.Pattern) (Update, error) {
	if u.hasData() {
		return u, invalidRequest("Update.Where", "a WHERE clause cannot be combined with INSERT DATA or DELETE DATA")
	}
	u.where = u.where.with(false, patterns)
	u.hasWhere = true
	return u, nil
}

// WhereOptional appends an OPTIONAL group to the WHERE clause.
func (u Update) WhereOptional(patterns ...ast.Pattern) (Update, error) {
	if u.hasData() {
		return u, invalidRequest("Update.WhereOptional", "a WHERE clause cannot be combined with INSERT DATA or DELETE DATA")
	}
	u.where = u.where.with(true, patterns)
	u.hasWhere = true
	return u, nil
}

// Filter appends one FILTER to the WHERE clause.
func (u Update) Filter(constraints ...ast.Expression) (Update, error) {
	if u.hasData() {
		return u, invalidRequest("Update.Filter", "a WHERE clause cannot be combined with INSERT DATA or DELETE DATA")
	}
	u.where = u.where.constrain(constraints)
	u.hasWhere = true
	return u, nil
}

// FilterEq is Filter with an extra ?name = value constraint per map entry.
func (u Update) FilterEq(eq map[string]ast.Expression, constraints ...ast.Expression) (Update, error) {
	extra, err := equalities("Update.FilterEq", eq)
	if err != nil {
		return u, err
	}
	return u.Filter(slices.Concat(constraints, extra)...)
}

// Insert appends INSERT template patterns. It requires a WHERE clause.
func (u Update) Insert(patterns ...ast.Pattern) (Update, error) {
	if err := u.checkTemplate("Update.Insert", patterns); err != nil {
		return u, err
	}
	if len(patterns) == 0 {
		return u, invalidRequest("Update.Insert", "empty INSERT template")
	}
	if u.deleteWhere {
		return u, invalidRequest("Update.Insert", "DELETE WHERE cannot be combined with INSERT")
	}
	u.insert = slices.Concat(u.insert, patterns)
	return u, nil
}

// Delete appends DELETE template patterns. It requires a WHERE clause.
// Without patterns it selects the DELETE WHERE shorthand, deleting the
// triples matched by the WHERE clause.
func (u Update) Delete(patterns ...ast.Pattern) (Update, error) {
	if err := u.checkTemplate("Update.Delete", patterns); err != nil {
		return u, err
	}
	if len(patterns) == 0 {
		if len(u.insert) > 0 || len(u.delete) > 0 {
			return u, invalidRequest("Update.Delete", "DELETE WHERE cannot be combined with templates")
		}
		u.deleteWhere = true
		return u, nil
	}
	if u.deleteWhere {
		return u, invalidRequest("Update.Delete", "DELETE WHERE cannot be combined with templates")
	}
	u.delete = slices.Concat(u.delete, patterns)
	return u, nil
}

func (u Update) checkTemplate(op string, patterns []ast.Pattern) error {
	if !u.hasWhere {
		return invalidRequest(op, "templates require a WHERE clause; use InsertData or DeleteData for ground data")
	}
	return checkQuadPatterns(op, patterns)
}

// InsertData appends ground triples to INSERT DATA. It fails if the update
// has a WHERE clause or the data holds variables.
func (u Update) InsertData(patterns ...ast.Pattern) (Update, error) {
	if err := u.checkData("Update.InsertData", patterns, true); err != nil {
		return u, err
	}
	u.insertData = slices.Concat(u.insertData, patterns)
	return u, nil
}

// DeleteData appends ground triples to DELETE DATA. Blank nodes are not
// allowed in deleted data.
func (u Update) DeleteData(patterns ...ast.Pattern) (Update, error) {
	if err := u.checkData("Update.DeleteData", patterns, false); err != nil {
		return u, err
	}
	u.deleteData = slices.Concat(u.deleteData, patterns)
	return u, nil
}

func (u Update) checkData(op string, patterns []ast.Pattern, allowBlank bool) error {
	if u.hasWhere {
		return invalidRequest(op, "ground data cannot be combined with a WHERE clause")
	}
	if len(patterns) == 0 {
		return invalidRequest(op, "no data")
	}
	if err := checkQuadPatterns(op, patterns); err != nil {
		return err
	}
	for _, p := range patterns {
		if err := checkGround(op, p, allowBlank); err != nil {
			return err
		}
	}
	return nil
}

// checkQuadPatterns accepts triples, shared-subject lists, inline groups
// and GRAPH blocks of those.
func checkQuadPatterns(op string, patterns []ast.Pattern) error {
	for _, p := range patterns {
		switch n := p.(type) {
		case ast.Triple, ast.TriplesWithSharedSubject:
		case ast.GraphPattern:
			if len(n.Filters) > 0 {
				return invalidRequest(op, "FILTER is not allowed in update data or templates")
			}
			if err := checkQuadPatterns(op, n.Patterns); err != nil {
				return err
			}
		case ast.GraphGraphPattern:
			if len(n.Filters) > 0 {
				return invalidRequest(op, "FILTER is not allowed in update data or templates")
			}
			if err := checkQuadPatterns(op, n.Patterns); err != nil {
				return err
			}
		default:
			return invalidRequest(op, "%T is not allowed in update data or templates", p)
		}
	}
	return nil
}

// checkGround rejects variables, and blank nodes unless allowBlank is set.
func checkGround(op string, p ast.Pattern, allowBlank bool) error {
	var exprs []ast.Expression
	switch n := p.(type) {
	case ast.Triple:
		exprs = []ast.Expression{n.Subject, n.Predicate, n.Object}
	case ast.TriplesWithSharedSubject:
		exprs = append(exprs, n.Subject)
		for _, po := range n.Predicates {
			exprs = append(exprs, po.Predicate)
			exprs = append(exprs, po.Objects...)
		}
	case ast.GraphPattern:
		for _, child := range n.Patterns {
			if err := checkGround(op, child, allowBlank); err != nil {
				return err
			}
		}
	case ast.GraphGraphPattern:
		exprs = append(exprs, n.Name)
		for _, child := range n.Patterns {
			if err := checkGround(op, child, allowBlank); err != nil {
				return err
			}
		}
	}
	for _, e := range exprs {
		if err := checkGroundExpr(op, e, allowBlank); err != nil {
			return err
		}
	}
	return nil
}

func checkGroundExpr(op string, e ast.Expression, allowBlank bool) error {
	switch n := e.(type) {
	case ast.Variable:
		return invalidRequest(op, "variable %s in ground data", n)
	case ast.BlankNode:
		if !allowBlank {
			return invalidRequest(op, "blank node %s in deleted data", n)
		}
	case ast.CollectionPattern:
		for _, item := range n.Items {
			if err := checkGroundExpr(op, item, allowBlank); err != nil {
				return err
			}
		}
	case ast.AnnotatedExpression:
		return checkGroundExpr(op, n.Value, allowBlank)
	}
	return nil
}

// Compile renders the update.
func (u Update) Compile(prefixes ast.PrefixMap) (string, error) {
	return NewQueryCompiler(prefixes).Compile(u)
}

// Execute compiles the update and sends it to updater.
func (u Update) Execute(ctx context.Context, updater Updater, prefixes ast.PrefixMap) error {
	return ExecuteUpdate(ctx, updater, u, prefixes)
}
