package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/CaliLuke/go-sparql/ast"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config describes a SPARQL endpoint.
//
//	endpoint: http://localhost:3030/ds/query
//	update_endpoint: http://localhost:3030/ds/update
//	timeout: 30s
//	username: admin
//	password: ${SPARQL_PASSWORD}
//	prefixes:
//	  foaf: http://xmlns.com/foaf/0.1/
type Config struct {
	// Endpoint is the query service URL.
	Endpoint string `yaml:"endpoint"`
	// UpdateEndpoint is the update service URL. Defaults to Endpoint.
	UpdateEndpoint string `yaml:"update_endpoint,omitempty"`
	// Username and Password enable HTTP basic authentication when Username is set.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	// Timeout bounds each request. Zero means no limit beyond the context.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// Headers are added to every request.
	Headers map[string]string `yaml:"headers,omitempty"`
	// DefaultGraphs are used as the request dataset when a call sets none.
	DefaultGraphs []string `yaml:"default_graphs,omitempty"`
	// Prefixes maps prefix names to namespace IRIs.
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data. ${VAR} references are expanded from
// the environment before parsing, and unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem with the config, combined into one error.
func (c *Config) Validate() error {
	var err error
	if c.Endpoint == "" {
		err = multierr.Append(err, errors.New("endpoint is required"))
	} else if e := checkURL(c.Endpoint); e != nil {
		err = multierr.Append(err, fmt.Errorf("endpoint: %w", e))
	}
	if c.UpdateEndpoint != "" {
		if e := checkURL(c.UpdateEndpoint); e != nil {
			err = multierr.Append(err, fmt.Errorf("update_endpoint: %w", e))
		}
	}
	if c.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("timeout %s is negative", c.Timeout))
	}
	if len(c.PrefixMap()) != len(c.Prefixes) {
		err = multierr.Append(err, errors.New("prefixes: a namespace is bound to more than one prefix"))
	}
	if e := c.PrefixMap().Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("prefixes: %w", e))
	}
	return err
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// PrefixMap returns the configured prefixes as a compiler prefix map.
func (c *Config) PrefixMap() ast.PrefixMap {
	m := make(ast.PrefixMap, len(c.Prefixes))
	for prefix, ns := range c.Prefixes {
		m[ast.Namespace(ns)] = prefix
	}
	return m
}

func (c *Config) updateEndpoint() string {
	if c.UpdateEndpoint != "" {
		return c.UpdateEndpoint
	}
	return c.Endpoint
}
