package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/CaliLuke/go-sparql/ast"
	"github.com/CaliLuke/go-sparql/sparql"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of an error response is kept in DriverError.
const maxErrorBody = 4 << 10

// Driver represents a connection to a SPARQL endpoint. It is safe for
// concurrent use.
type Driver struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

var (
	_ sparql.Store   = (*Driver)(nil)
	_ sparql.Updater = (*Driver)(nil)
)

// Open validates cfg and returns a driver for its endpoint. No request is
// made until the first query.
func Open(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("driver: invalid config: %w", err)
	}
	cfg.Headers = maps.Clone(cfg.Headers)
	d := &Driver{cfg: cfg}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = &http.Client{}
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d, nil
}

// IsOpen reports whether Close has not been called yet.
func (d *Driver) IsOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.closed
}

// Close marks the driver closed and drops idle connections. Later calls
// fail with ErrNotConnected.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		d.client.CloseIdleConnections()
	}
}

// Prefixes returns the prefix map from the driver's config.
func (d *Driver) Prefixes() ast.PrefixMap { return d.cfg.PrefixMap() }

// Run compiles q with the configured prefixes and sends it to the query or
// update endpoint depending on its form. Updates return an empty result.
func (d *Driver) Run(ctx context.Context, q sparql.Query) (*Result, error) {
	if q == nil {
		return nil, &ast.InvalidRequestError{Op: "Run", Message: "nil query"}
	}
	text, err := q.Compile(d.Prefixes())
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", q.Form(), err)
	}
	if q.Form() == sparql.FormUpdate {
		if err := d.Update(ctx, text); err != nil {
			return nil, err
		}
		return &Result{}, nil
	}
	return d.QueryWithOptions(ctx, text, nil)
}

// Query runs compiled query text and returns its rows.
func (d *Driver) Query(ctx context.Context, query string) (sparql.Rows, error) {
	r, err := d.QueryWithOptions(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// QueryWithOptions runs compiled query text with per-request options.
func (d *Driver) QueryWithOptions(ctx context.Context, query string, opts *RequestOptions) (*Result, error) {
	opts = opts.merge(d.cfg.DefaultGraphs)
	body, contentType, err := d.post(ctx, d.cfg.Endpoint, mediaQuery, acceptQuery, query, opts)
	if err != nil {
		return nil, err
	}
	return decodeResult(contentType, body)
}

// Ask runs an ASK query and returns its answer.
func (d *Driver) Ask(ctx context.Context, query string) (bool, error) {
	r, err := d.QueryWithOptions(ctx, query, nil)
	if err != nil {
		return false, err
	}
	b, ok := r.Boolean()
	if !ok {
		return false, fmt.Errorf("%w: response has no boolean", ErrUnsupportedResult)
	}
	return b, nil
}

// Update runs compiled update text.
func (d *Driver) Update(ctx context.Context, update string) error {
	return d.UpdateWithOptions(ctx, update, nil)
}

// UpdateWithOptions runs compiled update text with per-request options.
func (d *Driver) UpdateWithOptions(ctx context.Context, update string, opts *RequestOptions) error {
	_, _, err := d.post(ctx, d.cfg.updateEndpoint(), mediaUpdate, "*/*", update, opts)
	return err
}

// post sends body to endpoint and returns the response body and media type.
func (d *Driver) post(ctx context.Context, endpoint, contentType, accept, body string, opts *RequestOptions) ([]byte, string, error) {
	// Fast path: bail immediately if already cancelled
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	d.mu.RLock()
	closed := d.closed
	d.mu.RUnlock()
	if closed {
		return nil, "", ErrNotConnected
	}

	if timeout := opts.timeoutOr(d.cfg.Timeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	params := opts.params(contentType == mediaUpdate)
	target := endpoint
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target += sep + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("driver: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType+"; charset=utf-8")
	req.Header.Set("Accept", accept)
	for k, v := range d.cfg.Headers {
		req.Header.Set(k, v)
	}
	if d.cfg.Username != "" {
		req.SetBasicAuth(d.cfg.Username, d.cfg.Password)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("sparql request failed",
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, "", ctxErr
		}
		return nil, "", fmt.Errorf("driver: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("driver: read response: %w", err)
	}
	d.logger.Debug("sparql request",
		zap.String("endpoint", endpoint),
		zap.String("content_type", contentType),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data[:min(len(data), maxErrorBody)]))
		d.logger.Warn("sparql endpoint error",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, "", &DriverError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: msg}
	}
	return data, resp.Header.Get("Content-Type"), nil
}
