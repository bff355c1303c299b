package driver

import (
	"fmt"
	"io"
	"mime"
	"slices"

	"github.com/CaliLuke/go-sparql/ast"
	"github.com/CaliLuke/go-sparql/sparql"
	"github.com/buger/jsonparser"
)

// Media types the driver requests and decodes.
const (
	mediaResultsJSON = "application/sparql-results+json"
	mediaNTriples    = "application/n-triples"
	mediaQuery       = "application/sparql-query"
	mediaUpdate      = "application/sparql-update"

	acceptQuery = mediaResultsJSON + ", " + mediaNTriples + ";q=0.9, text/plain;q=0.5"
)

// Result is a fully decoded query response. It implements sparql.Rows; an
// ASK response has no rows and reports its answer through Boolean.
type Result struct {
	vars    []string
	rows    []sparql.Row
	boolean *bool
	pos     int
}

// Vars returns the projected variable names in response order.
func (r *Result) Vars() []string { return slices.Clone(r.vars) }

// Boolean returns the ASK answer. ok is false for non-ASK responses.
func (r *Result) Boolean() (value, ok bool) {
	if r.boolean == nil {
		return false, false
	}
	return *r.boolean, true
}

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.rows) }

// Next returns the next row, or io.EOF after the last one.
func (r *Result) Next() (sparql.Row, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

// Close releases the rows. Results are held in memory, so it never fails.
func (r *Result) Close() error {
	r.rows = nil
	r.pos = 0
	return nil
}

// decodeResult picks a decoder by the response media type.
func decodeResult(contentType string, body []byte) (*Result, error) {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedResult, contentType)
	}
	switch media {
	case mediaResultsJSON, "application/json":
		return decodeJSONResults(body)
	case mediaNTriples, "text/plain":
		return decodeNTriples(body)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResult, media)
	}
}

// decodeJSONResults decodes the SPARQL 1.1 Query Results JSON format.
func decodeJSONResults(data []byte) (*Result, error) {
	r := &Result{}
	if b, err := jsonparser.GetBoolean(data, "boolean"); err == nil {
		r.boolean = &b
		return r, nil
	}

	var cbErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
		if cbErr != nil {
			return
		}
		if dt != jsonparser.String {
			cbErr = fmt.Errorf("head.vars: unexpected %s", dt)
			return
		}
		name, err := jsonparser.ParseString(value)
		if err != nil {
			cbErr = fmt.Errorf("head.vars: %w", err)
			return
		}
		r.vars = append(r.vars, name)
	}, "head", "vars")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if cbErr != nil {
		return nil, fmt.Errorf("decode results: %w", cbErr)
	}

	_, err = jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
		if cbErr != nil {
			return
		}
		row, err := decodeBinding(value)
		if err != nil {
			cbErr = err
			return
		}
		r.rows = append(r.rows, row)
	}, "results", "bindings")
	if err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if cbErr != nil {
		return nil, fmt.Errorf("decode results: %w", cbErr)
	}
	return r, nil
}

func decodeBinding(data []byte) (sparql.Row, error) {
	row := sparql.Row{}
	err := jsonparser.ObjectEach(data, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		term, err := decodeTerm(value)
		if err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
		row[string(key)] = term
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// decodeTerm decodes one RDF term object: {"type": ..., "value": ...}.
func decodeTerm(data []byte) (ast.Term, error) {
	typ, err := jsonparser.GetString(data, "type")
	if err != nil {
		return nil, fmt.Errorf("term type: %w", err)
	}
	value, err := jsonparser.GetString(data, "value")
	if err != nil {
		return nil, fmt.Errorf("term value: %w", err)
	}
	switch typ {
	case "uri":
		return ast.NewIRI(value), nil
	case "bnode":
		return ast.BlankNode{ID: value}, nil
	case "literal", "typed-literal":
		lit := ast.Literal{Lexical: value}
		if lang, err := jsonparser.GetString(data, "xml:lang"); err == nil {
			lit.Lang = lang
		}
		if dt, err := jsonparser.GetString(data, "datatype"); err == nil && lit.Lang == "" {
			lit.Datatype = ast.NewIRI(dt)
		}
		return lit, nil
	default:
		return nil, &ast.NotSupportedError{Feature: "result term type " + typ}
	}
}
