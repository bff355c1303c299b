package vocabgen

import (
	"strings"
	"unicode"
)

// splitName splits a local name on hyphens, underscores and dots. Case
// boundaries inside a part are kept.
func splitName(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
}

// ToPascalCase upper-cases the first letter of every part of name and
// keeps the rest, so "family-name" and "familyName" both become
// "FamilyName".
func ToPascalCase(name string) string {
	var b strings.Builder
	for _, part := range splitName(name) {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// CommonAcronyms are words written fully upper-cased in Go names.
var CommonAcronyms = map[string]string{
	"id":   "ID",
	"iri":  "IRI",
	"uri":  "URI",
	"url":  "URL",
	"uuid": "UUID",
	"api":  "API",
	"http": "HTTP",
	"html": "HTML",
	"xml":  "XML",
	"json": "JSON",
	"rdf":  "RDF",
	"rdfs": "RDFS",
	"owl":  "OWL",
	"xsd":  "XSD",
	"foaf": "FOAF",
	"skos": "SKOS",
	"dc":   "DC",
	"fn":   "FN",
}

// ToPascalCaseAcronyms is ToPascalCase, except that camel-case words found
// in CommonAcronyms are upper-cased: "homepageUrl" becomes "HomepageURL".
func ToPascalCaseAcronyms(name string) string {
	var b strings.Builder
	for _, part := range splitName(name) {
		for _, word := range splitCamel(part) {
			if acronym, ok := CommonAcronyms[strings.ToLower(word)]; ok {
				b.WriteString(acronym)
				continue
			}
			runes := []rune(word)
			b.WriteRune(unicode.ToUpper(runes[0]))
			b.WriteString(string(runes[1:]))
		}
	}
	return b.String()
}

// splitCamel splits "homepageUrl" into "homepage" and "Url". Runs of
// upper-case letters stay together: "sameAsURI" gives "same", "As", "URI".
func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			words = append(words, string(runes[start:i]))
			start = i
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

// namespaceName is the Go identifier of a namespace constant.
func namespaceName(prefix string, acronyms bool) string {
	if acronyms {
		return ToPascalCaseAcronyms(prefix)
	}
	return ToPascalCase(prefix)
}

// termName is the Go identifier of a term variable: the namespace name
// followed by the local name.
func termName(nsName, local string, acronyms bool) string {
	if acronyms {
		return nsName + ToPascalCaseAcronyms(local)
	}
	return nsName + ToPascalCase(local)
}
