// Package vocabgen parses vocabulary declaration files and generates Go
// constants for their namespaces and terms.
package vocabgen

import (
	"fmt"
	"strings"

	"github.com/CaliLuke/go-sparql/ast"
	"go.uber.org/multierr"
)

// Vocabulary holds every namespace declared in a vocabulary file.
type Vocabulary struct {
	// Namespaces in declaration order.
	Namespaces []NamespaceSpec
}

// TermKind is the kind of a declared term.
type TermKind string

// Term kinds, in the order the generator emits them.
const (
	KindClass      TermKind = "class"
	KindProperty   TermKind = "property"
	KindIndividual TermKind = "individual"
	KindFunction   TermKind = "function"
)

// Kinds lists every term kind in emission order.
var Kinds = []TermKind{KindClass, KindProperty, KindIndividual, KindFunction}

// NamespaceSpec describes one namespace block.
type NamespaceSpec struct {
	// Prefix is the short prefix name, e.g. "foaf".
	Prefix string
	// IRI is the namespace IRI without angle brackets.
	IRI string
	// Doc is an optional description copied into the generated comment.
	Doc string
	// Terms in declaration order.
	Terms []TermSpec
}

// TermSpec describes one declared local name.
type TermSpec struct {
	// Name is the local name inside the namespace.
	Name string
	// Kind is what the term denotes.
	Kind TermKind
	// Parent is the local name of the super class or property, if any.
	Parent string
	// Doc is an optional description.
	Doc string
	// Deprecated marks terms the vocabulary keeps only for compatibility.
	Deprecated bool
}

// TermsOf returns the terms of the given kind in declaration order.
func (ns NamespaceSpec) TermsOf(kind TermKind) []TermSpec {
	var out []TermSpec
	for _, t := range ns.Terms {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Namespace returns the namespace as an ast.Namespace.
func (ns NamespaceSpec) Namespace() ast.Namespace { return ast.Namespace(ns.IRI) }

// PrefixMap binds every namespace of v to its prefix.
func (v *Vocabulary) PrefixMap() ast.PrefixMap {
	m := make(ast.PrefixMap, len(v.Namespaces))
	for _, ns := range v.Namespaces {
		m[ns.Namespace()] = ns.Prefix
	}
	return m
}

// Validate reports every problem in v, combined into a single error: an
// empty vocabulary, duplicate prefixes or namespace IRIs, malformed prefixes, IRIs that do
// not end in '#' or '/', duplicate terms, and parents that are not
// declared with the same kind in the same namespace.
func (v *Vocabulary) Validate() error {
	if len(v.Namespaces) == 0 {
		return fmt.Errorf("vocabulary declares no namespaces")
	}
	var err error
	iris := make(map[string]string, len(v.Namespaces))
	for _, ns := range v.Namespaces {
		if other, dup := iris[ns.IRI]; dup {
			err = multierr.Append(err, fmt.Errorf("namespace <%s> declared as both %q and %q", ns.IRI, other, ns.Prefix))
		} else {
			iris[ns.IRI] = ns.Prefix
		}
		if !strings.HasSuffix(ns.IRI, "#") && !strings.HasSuffix(ns.IRI, "/") {
			err = multierr.Append(err, fmt.Errorf("namespace %s: IRI <%s> must end with '#' or '/'", ns.Prefix, ns.IRI))
		}
		err = multierr.Append(err, ns.validateTerms())
	}

	m := make(ast.PrefixMap, len(v.Namespaces))
	for _, ns := range v.Namespaces {
		if _, seen := m[ns.Namespace()]; seen {
			continue
		}
		m[ns.Namespace()] = ns.Prefix
	}
	return multierr.Append(err, m.Validate())
}

func (ns NamespaceSpec) validateTerms() error {
	var err error
	kinds := make(map[string]TermKind, len(ns.Terms))
	for _, t := range ns.Terms {
		if _, dup := kinds[t.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("%s:%s declared more than once", ns.Prefix, t.Name))
			continue
		}
		kinds[t.Name] = t.Kind
	}
	for _, t := range ns.Terms {
		if t.Parent == "" {
			continue
		}
		switch kind, ok := kinds[t.Parent]; {
		case !ok:
			err = multierr.Append(err, fmt.Errorf("%s:%s: parent %s:%s is not declared", ns.Prefix, t.Name, ns.Prefix, t.Parent))
		case kind != t.Kind:
			err = multierr.Append(err, fmt.Errorf("%s:%s: parent %s:%s is a %s, not a %s", ns.Prefix, t.Name, ns.Prefix, t.Parent, kind, t.Kind))
		case t.Kind != KindClass && t.Kind != KindProperty:
			err = multierr.Append(err, fmt.Errorf("%s:%s: only classes and properties can have a parent", ns.Prefix, t.Name))
		}
	}
	return err
}
