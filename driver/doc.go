/*
Package driver runs the seed/propagate fixpoint that evaluates a frozen
clause.Grammar bottom-up over a memo.MemoTable: it owns the dirty-entry
work queue, seeds it from terminal (and lookahead) clauses, and drains it
until no entry improves any further.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pika.driver'.
func tracer() tracing.Trace {
	return tracing.Select("pika.driver")
}
