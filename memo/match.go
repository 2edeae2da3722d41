package memo

// Match is an immutable record of a successful match. Matches stored in the
// table are produced only by MemoTable's AddTerminalMatch/AddNonTerminalMatch;
// LookUpBestMatch also builds a transient zero-width placeholder, which is
// never stored in the table. Once constructed, a Match is never mutated.
type Match struct {
	Key MemoKey

	// FirstMatchingSubClauseIdx is the index of the alternative that
	// produced this match for OrderedChoice/Longest clauses, 0 otherwise.
	FirstMatchingSubClauseIdx int

	// Len is the number of input characters consumed, 0 <= Len.
	Len int

	// SubClauseMatches are the child matches, in clause order. Empty
	// (never nil) for terminal matches and for zero-width placeholders.
	SubClauseMatches []*Match
}

// noSubClauseMatches is the single shared empty-children slice, used for
// both terminal matches and zero-width placeholders so callers can rely on
// SubClauseMatches never being nil.
var noSubClauseMatches = []*Match{}

func newTerminalMatch(key MemoKey, length int) *Match {
	return &Match{
		Key:                       key,
		FirstMatchingSubClauseIdx: 0,
		Len:                       length,
		SubClauseMatches:          noSubClauseMatches,
	}
}

func newNonTerminalMatch(key MemoKey, firstMatchingSubClauseIdx int, subClauseMatches []*Match) *Match {
	length := 0
	for _, m := range subClauseMatches {
		length += m.Len
	}
	if subClauseMatches == nil {
		subClauseMatches = noSubClauseMatches
	}
	return &Match{
		Key:                       key,
		FirstMatchingSubClauseIdx: firstMatchingSubClauseIdx,
		Len:                       length,
		SubClauseMatches:          subClauseMatches,
	}
}

// zeroWidthPlaceholder builds the transient, unmemoized placeholder match
// LookUpBestMatch falls back to for a clause that can match zero
// characters but has no memoized match yet. It is never passed to addMatch.
func zeroWidthPlaceholder(key MemoKey) *Match {
	firstMatchingSubClauseIdx := 0
	for i := 0; i < key.Clause.NumSubClauses(); i++ {
		if key.Clause.SubClauseCanMatchZeroChars(i) {
			firstMatchingSubClauseIdx = i
			break
		}
	}
	return &Match{
		Key:                       key,
		FirstMatchingSubClauseIdx: firstMatchingSubClauseIdx,
		Len:                       0,
		SubClauseMatches:          noSubClauseMatches,
	}
}

// BetterThan orders matches: strictly greater Len wins; on equal Len, the
// smaller FirstMatchingSubClauseIdx (the left-biased PEG choice) wins;
// otherwise the two are considered equal and the incumbent is kept.
func (m *Match) BetterThan(other *Match) bool {
	if other == nil {
		return true
	}
	if m.Len != other.Len {
		return m.Len > other.Len
	}
	return m.FirstMatchingSubClauseIdx < other.FirstMatchingSubClauseIdx
}

// EndPos returns the position just past the last character this match
// consumed.
func (m *Match) EndPos() int {
	return m.Key.StartPos + m.Len
}
