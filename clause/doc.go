/*
Package clause implements the grammar-clause side of a pika parser: the
Clause graph (terminals and combinators), the canMatchZeroChars
precomputation, the seed-subclause/seed-parent wiring, and the bottom-up and
top-down match protocols each clause variant implements.

Grammar surface syntax (parsing PEG grammar text into a Clause graph) and
AST construction from a completed parse are out of scope; this package
provides a Go-native builder API (Seq, Choice, Longest, ...) as the only
supported way to construct a Clause graph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package clause

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pika.clause'.
func tracer() tracing.Trace {
	return tracing.Select("pika.clause")
}
