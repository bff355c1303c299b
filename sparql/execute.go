package sparql

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/CaliLuke/go-sparql/ast"
)

// Row is one solution: variable name (without '?') to bound term. Unbound
// variables are absent.
type Row map[string]ast.Term

// Rows iterates query solutions. Next returns io.EOF after the last row.
type Rows interface {
	Next() (Row, error)
	Close() error
}

// Store runs compiled query text.
type Store interface {
	Query(ctx context.Context, query string) (Rows, error)
}

// Updater runs compiled update text.
type Updater interface {
	Update(ctx context.Context, update string) error
}

// Execute compiles q with prefixes and runs it against store. The store's
// rows are returned unchanged.
func Execute(ctx context.Context, store Store, q Query, prefixes ast.PrefixMap) (Rows, error) {
	if store == nil {
		return nil, invalidRequest("Execute", "nil store")
	}
	if q == nil {
		return nil, invalidRequest("Execute", "nil query")
	}
	text, err := NewQueryCompiler(prefixes).Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", q.Form(), err)
	}
	rows, err := store.Query(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Form(), err)
	}
	return rows, nil
}

// ExecuteUpdate compiles u with prefixes and sends it to updater.
func ExecuteUpdate(ctx context.Context, updater Updater, u Update, prefixes ast.PrefixMap) error {
	if updater == nil {
		return invalidRequest("ExecuteUpdate", "nil updater")
	}
	text, err := NewQueryCompiler(prefixes).Compile(u)
	if err != nil {
		return fmt.Errorf("compile %s: %w", u.Form(), err)
	}
	if err := updater.Update(ctx, text); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Collect drains and closes rows.
func Collect(rows Rows) (out []Row, err error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
}
