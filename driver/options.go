package driver

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Option configures a Driver at Open time.
type Option func(*Driver)

// WithHTTPClient replaces the HTTP client. The client's own timeout applies
// in addition to Config.Timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Driver) { d.client = c }
}

// WithLogger sets the logger used for request tracing. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// RequestOptions tunes a single query or update request, such as the
// dataset it runs against and its timeout.
type RequestOptions struct {
	defaultGraphs []string
	namedGraphs   []string
	timeout       time.Duration
}

// NewRequestOptions creates a new set of request options with default values.
func NewRequestOptions() *RequestOptions {
	return &RequestOptions{}
}

// SetDefaultGraph adds a graph IRI to the default graph of the request's
// dataset. For updates it is sent as using-graph-uri.
func (o *RequestOptions) SetDefaultGraph(iri string) *RequestOptions {
	o.defaultGraphs = append(o.defaultGraphs, iri)
	return o
}

// SetNamedGraph adds a named graph IRI to the request's dataset. For
// updates it is sent as using-named-graph-uri.
func (o *RequestOptions) SetNamedGraph(iri string) *RequestOptions {
	o.namedGraphs = append(o.namedGraphs, iri)
	return o
}

// SetTimeout bounds the request. It overrides Config.Timeout; zero keeps it.
func (o *RequestOptions) SetTimeout(timeout time.Duration) *RequestOptions {
	o.timeout = timeout
	return o
}

// params renders the dataset as protocol parameters.
func (o *RequestOptions) params(update bool) url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	defaultKey, namedKey := "default-graph-uri", "named-graph-uri"
	if update {
		defaultKey, namedKey = "using-graph-uri", "using-named-graph-uri"
	}
	for _, g := range o.defaultGraphs {
		v.Add(defaultKey, g)
	}
	for _, g := range o.namedGraphs {
		v.Add(namedKey, g)
	}
	return v
}

func (o *RequestOptions) timeoutOr(fallback time.Duration) time.Duration {
	if o == nil || o.timeout == 0 {
		return fallback
	}
	return o.timeout
}

func (o *RequestOptions) merge(defaults []string) *RequestOptions {
	if len(defaults) == 0 {
		return o
	}
	out := &RequestOptions{}
	if o != nil {
		*out = *o
	}
	if len(out.defaultGraphs) == 0 {
		out.defaultGraphs = slices.Clone(defaults)
	}
	return out
}
