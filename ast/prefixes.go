package ast

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// PrefixMap maps namespace IRIs to their short prefix names, e.g.
// {"http://xmlns.com/foaf/0.1/": "foaf"}. No two namespaces may share a
// prefix.
type PrefixMap map[Namespace]string

// PrefixBinding is one PREFIX declaration.
type PrefixBinding struct {
	Prefix    string
	Namespace Namespace
}

// Validate reports every namespace sharing a prefix with another and every
// malformed prefix name, combined into a single error.
func (m PrefixMap) Validate() error {
	var err error
	seen := make(map[string]Namespace, len(m))
	for _, b := range m.Bindings() {
		if !isPrefixName(b.Prefix) {
			err = multierr.Append(err, fmt.Errorf("invalid prefix %q for <%s>", b.Prefix, b.Namespace))
		}
		if other, dup := seen[b.Prefix]; dup {
			err = multierr.Append(err, fmt.Errorf("prefix %q bound to both <%s> and <%s>", b.Prefix, other, b.Namespace))
			continue
		}
		seen[b.Prefix] = b.Namespace
	}
	return err
}

// Bindings returns the map entries sorted by prefix name, then namespace.
func (m PrefixMap) Bindings() []PrefixBinding {
	out := make([]PrefixBinding, 0, len(m))
	for ns, p := range m {
		out = append(out, PrefixBinding{Prefix: p, Namespace: ns})
	}
	slices.SortFunc(out, func(a, b PrefixBinding) int {
		return cmp.Or(cmp.Compare(a.Prefix, b.Prefix), cmp.Compare(a.Namespace, b.Namespace))
	})
	return out
}

// Resolve finds the longest registered namespace that iri starts with and
// returns it with its prefix and the remaining local part. Only exact
// string-prefix matches count; the IRI is never split on # or /.
func (m PrefixMap) Resolve(iri string) (ns Namespace, prefix, local string, ok bool) {
	for candidate, p := range m {
		if candidate == "" || !strings.HasPrefix(iri, string(candidate)) {
			continue
		}
		if !ok || len(candidate) > len(ns) || (len(candidate) == len(ns) && p < prefix) {
			ns, prefix, ok = candidate, p, true
		}
	}
	if ok {
		local = iri[len(ns):]
	}
	return ns, prefix, local, ok
}

// isPrefixName reports whether s is a valid PN_PREFIX. The empty prefix
// is allowed.
func isPrefixName(s string) bool {
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "_") || strings.HasPrefix(s, "-") || strings.HasPrefix(s, ".") {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	return isLocalName(s)
}
