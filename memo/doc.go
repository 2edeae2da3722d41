/*
Package memo implements the memoization engine for a pika parser: memo
keys, immutable matches, mutable memo entries, and the memo table that
stores and queries them.

The table is laid out as a sparse map from clause identity to an
ascending, position-ordered submap of memo entries: clause identity maps
to a mutex-guarded, position-ordered submap of memo entries.

Clause and MemoTable naturally refer to each other — a clause's Match
method needs the table to look up subclause results, and the table's
extraction queries need to ask a clause things like CanMatchZeroChars.
Go doesn't allow the two packages to import each other, so package memo
depends only on the small ClauseRef interface declared in this package;
package clause's Clause type satisfies it structurally and is free to
import package memo directly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package memo

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pika.memo'.
func tracer() tracing.Trace {
	return tracing.Select("pika.memo")
}
