// Package gosparql builds SPARQL 1.1 queries and updates from Go values and
// compiles them to query text.
//
// Build queries from immutable values instead of concatenating strings, then
// compile them with a prefix map or run them against an endpoint.
//
// The module is organized into four packages:
//
//   - [github.com/CaliLuke/go-sparql/ast]: RDF terms, expressions, graph patterns and their compilers
//   - [github.com/CaliLuke/go-sparql/sparql]: SELECT, ASK, CONSTRUCT, DESCRIBE and UPDATE builders and the query compiler
//   - [github.com/CaliLuke/go-sparql/driver]: SPARQL 1.1 Protocol client over HTTP
//   - [github.com/CaliLuke/go-sparql/vocabgen]: Code generator: vocabulary files to Go namespace constants
//
// The ast, sparql and vocabgen packages compile and test without network
// access. Only the driver package talks to an endpoint.
package gosparql
