package vocabgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strings"
	"text/template"

	"go.uber.org/multierr"
)

// RenderConfig specifies how Go code is generated from a vocabulary.
type RenderConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// ModulePath is the import path of the ast package.
	ModulePath string
	// UseAcronyms upper-cases known acronyms in Go names (FOAFHomepageURL).
	UseAcronyms bool
	// SkipDeprecated leaves deprecated terms out of the output.
	SkipDeprecated bool
	// Prefixes emits a Prefixes map binding every namespace to its prefix.
	Prefixes bool
	// Source names the input file in the generated header.
	Source string
}

// DefaultConfig returns a RenderConfig with sensible defaults.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		PackageName: "vocab",
		ModulePath:  "github.com/CaliLuke/go-sparql/ast",
		UseAcronyms: true,
		Prefixes:    true,
	}
}

// Render validates v and writes gofmt-ed Go source declaring a Namespace
// constant per namespace and a variable per term. Classes, properties and
// individuals become ast.IRI values; functions become ast.Operator values.
func Render(w io.Writer, v *Vocabulary, cfg RenderConfig) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid vocabulary: %w", err)
	}
	if cfg.PackageName == "" {
		cfg.PackageName = "vocab"
	}
	if cfg.ModulePath == "" {
		cfg.ModulePath = DefaultConfig().ModulePath
	}

	data, err := buildRenderData(v, cfg)
	if err != nil {
		return fmt.Errorf("invalid vocabulary: %w", err)
	}
	var buf bytes.Buffer
	if err := renderTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated code: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// --- Template context types ---

type renderData struct {
	PackageName string
	ModulePath  string
	Source      string
	Namespaces  []namespaceCtx
	Prefixes    bool
}

type namespaceCtx struct {
	GoName string // e.g. "FOAF"
	Prefix string
	IRI    string
	Doc    []string
	Groups []groupCtx
}

type groupCtx struct {
	Title string // e.g. "Classes"
	Terms []termCtx
}

type termCtx struct {
	GoName     string // e.g. "FOAFPerson"
	Local      string
	Ctor       string // "Term" or "Operator"
	Doc        []string
	Deprecated bool
}

var groupTitles = map[TermKind]string{
	KindClass:      "Classes",
	KindProperty:   "Properties",
	KindIndividual: "Individuals",
	KindFunction:   "Functions",
}

// --- Context builders ---

// buildRenderData maps the vocabulary to template context and reports Go
// names that are not identifiers or that collide.
func buildRenderData(v *Vocabulary, cfg RenderConfig) (*renderData, error) {
	data := &renderData{
		PackageName: cfg.PackageName,
		ModulePath:  cfg.ModulePath,
		Source:      cfg.Source,
		Prefixes:    cfg.Prefixes,
	}

	var err error
	owners := make(map[string]string)
	claim := func(goName, owner string) {
		if !token.IsIdentifier(goName) {
			err = multierr.Append(err, fmt.Errorf("%s: %q is not a valid Go identifier", owner, goName))
			return
		}
		if other, dup := owners[goName]; dup {
			err = multierr.Append(err, fmt.Errorf("%s and %s both generate %s", other, owner, goName))
			return
		}
		owners[goName] = owner
	}
	if cfg.Prefixes {
		claim("Prefixes", "the prefix map")
	}

	for _, ns := range v.Namespaces {
		nc := namespaceCtx{
			GoName: namespaceName(ns.Prefix, cfg.UseAcronyms),
			Prefix: ns.Prefix,
			IRI:    ns.IRI,
			Doc:    docLines(ns.Doc),
		}
		claim(nc.GoName, "namespace "+ns.Prefix)

		for _, kind := range Kinds {
			g := groupCtx{Title: groupTitles[kind]}
			for _, t := range ns.TermsOf(kind) {
				if cfg.SkipDeprecated && t.Deprecated {
					continue
				}
				tc := termCtx{
					GoName:     termName(nc.GoName, t.Name, cfg.UseAcronyms),
					Local:      t.Name,
					Ctor:       "Term",
					Doc:        docLines(t.Doc),
					Deprecated: t.Deprecated,
				}
				if kind == KindFunction {
					tc.Ctor = "Operator"
				}
				if t.Parent != "" {
					tc.Doc = append(tc.Doc, fmt.Sprintf("It is a sub%s of %s:%s.", kind, ns.Prefix, t.Parent))
				}
				claim(tc.GoName, ns.Prefix+":"+t.Name)
				g.Terms = append(g.Terms, tc)
			}
			if len(g.Terms) > 0 {
				nc.Groups = append(nc.Groups, g)
			}
		}
		data.Namespaces = append(data.Namespaces, nc)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// docLines splits a doc string into trimmed, non-empty comment lines.
func docLines(doc string) []string {
	var out []string
	for line := range strings.Lines(doc) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// --- Go template ---

var renderTemplate = template.Must(template.New("vocab").Parse(`// Code generated by vocabgen. DO NOT EDIT.
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.PackageName}}

import "{{.ModulePath}}"
{{range .Namespaces}}
// {{.GoName}} is the {{.Prefix}} namespace <{{.IRI}}>.
{{- range .Doc}}
// {{.}}
{{- end}}
const {{.GoName}} ast.Namespace = "{{.IRI}}"
{{- $ns := .}}
{{range .Groups}}
// {{.Title}} in {{$ns.Prefix}}.
var (
{{- range .Terms}}
	// {{.GoName}} is {{$ns.Prefix}}:{{.Local}}.
{{- range .Doc}}
	// {{.}}
{{- end}}
{{- if .Deprecated}}
	//
	// Deprecated: {{$ns.Prefix}}:{{.Local}} is deprecated by its vocabulary.
{{- end}}
	{{.GoName}} = {{$ns.GoName}}.{{.Ctor}}("{{.Local}}")
{{- end}}
)
{{end}}
{{- end}}
{{- if .Prefixes}}
// Prefixes binds every namespace in this file to its prefix.
var Prefixes = ast.PrefixMap{
{{- range .Namespaces}}
	{{.GoName}}: "{{.Prefix}}",
{{- end}}
}
{{- end}}
`))
