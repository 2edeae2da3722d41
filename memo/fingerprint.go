package memo

import (
	"sort"

	"github.com/cnf/structhash"
)

// matchSummary is a flat, pointer-free projection of a Match subtree, built
// so that structhash.Hash sees plain exported values rather than following
// *Match pointers (which would hash to content that is stable across runs
// anyway, but a flat projection keeps the hashed payload small and makes
// the intent — "summarize this subtree's shape" — explicit).
type matchSummary struct {
	StartPos int
	Len      int
	AltIdx   int
	Children []matchSummary
}

func summarize(m *Match) matchSummary {
	children := make([]matchSummary, 0, len(m.SubClauseMatches))
	for _, c := range m.SubClauseMatches {
		children = append(children, summarize(c))
	}
	return matchSummary{
		StartPos: m.Key.StartPos,
		Len:      m.Len,
		AltIdx:   m.FirstMatchingSubClauseIdx,
		Children: children,
	}
}

// Fingerprint computes a deterministic content hash of every match recorded
// for the given clauses, used to confirm that running the fixpoint twice on
// the same (grammar, input) produces an identical fingerprint, regardless of
// worker count or scheduling.
//
// Callers must pass clauses in a stable order (e.g. construction order); the
// fingerprint otherwise depends only on table content, not on map iteration
// order, because matchSummary flattens every match into value types before
// hashing and GetAllMatches already returns matches in ascending startPos
// order.
func Fingerprint(t *MemoTable, clauses []ClauseRef) (string, error) {
	all := make([]matchSummary, 0)
	for _, c := range clauses {
		matches := t.GetAllMatches(c)
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Key.StartPos < matches[j].Key.StartPos
		})
		for _, m := range matches {
			all = append(all, summarize(m))
		}
	}
	return structhash.Hash(all, 1)
}
