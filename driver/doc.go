// Package driver provides SPARQL endpoint connectivity over the SPARQL 1.1
// Protocol.
//
// A Driver posts compiled query text as application/sparql-query and update
// text as application/sparql-update. SELECT and ASK responses are decoded
// from application/sparql-results+json; CONSTRUCT and DESCRIBE responses
// are decoded from N-Triples into subject/predicate/object rows. Driver
// implements sparql.Store and sparql.Updater.
package driver
