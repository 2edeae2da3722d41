/*
Package pika implements a pika parser: a bottom-up, memoized evaluator for
Parsing Expression Grammars. Unlike conventional top-down PEG parsing, this
approach handles left recursion natively, memoizes exhaustively (so every
position a clause was tried at is queryable, not just the positions on the
winning parse), and turns parsing into fixpoint propagation over a lattice
of "best matches" rather than recursive descent.

Package structure:

■ clause: the grammar-clause graph (terminals and combinators) and the
canMatchZeroChars / seed-subclause static analyses run over it.

■ memo: the memoization table, its entries and matches, and the
result-extraction queries (non-overlapping matches, all matches, non-match
positions).

■ driver: the seed/propagate fixpoint that evaluates a frozen grammar
against an input string and populates a memo table.

The base package ties the three together with a small convenience facade;
most programs only need clause to build a grammar and this package's Parse
to run it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pika
