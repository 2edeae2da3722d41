package memo

// ClauseRef is the minimal view the memo table needs of a grammar clause.
// package clause's Clause type satisfies this interface; memo never imports
// package clause, avoiding the import cycle a direct, mutual reference
// between the two packages would otherwise create.
type ClauseRef interface {
	// CanMatchZeroChars reports whether this clause can match the empty
	// string at any position. Precomputed once, stable for the grammar's
	// lifetime.
	CanMatchZeroChars() bool

	// NumSubClauses returns the number of direct subclauses.
	NumSubClauses() int

	// SubClauseCanMatchZeroChars reports CanMatchZeroChars() for the i-th
	// subclause.
	SubClauseCanMatchZeroChars(i int) bool

	// OrderID returns a value unique and stable for this clause within a
	// single grammar, assigned at construction time. Used only to give
	// concurrent containers (treemap/treeset) a total, deterministic
	// ordering; never used for equality (Go's native interface equality,
	// which compares by identity for pointer-backed clauses, is used for
	// that).
	OrderID() uint64

	// PlaceholderEligible reports whether an entry for this clause with no
	// best match yet should be treated, optimistically, as a zero-width
	// success (see LookUpBestMatch). True for clauses whose zero-width
	// match is unconditional (Optional, ZeroOrMore, a zero-width literal,
	// and composites of these); false for lookahead clauses (Not/And)
	// whose zero-width success is conditional on a subclause's result, so
	// an entry that has simply not been evaluated yet must not be mistaken
	// for a confirmed success.
	PlaceholderEligible() bool
}

// MemoKey is the pair (clause, startPos) that identifies a memo cell.
// MemoKeys are value types: comparable, and never mutated once built.
type MemoKey struct {
	Clause   ClauseRef
	StartPos int
}

// SamePosition reports whether two keys share a start position. Lookups use
// this to decide whether to record a cross-position backref.
func (k MemoKey) SamePosition(other MemoKey) bool {
	return k.StartPos == other.StartPos
}
