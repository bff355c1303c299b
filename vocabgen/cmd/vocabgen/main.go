// vocabgen generates Go namespace and term constants from vocabulary files.
//
// Usage:
//
//	vocabgen generate foaf.vocab [-o foaf_gen.go] [--pkg vocab] [--acronyms]
//	vocabgen check foaf.vocab schema.vocab
package main

import (
	"fmt"
	"os"
)

var version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
