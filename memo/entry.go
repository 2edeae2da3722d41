package memo

import (
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
)

// MemoEntry is the mutable memo cell for a single MemoKey. Its bestMatch
// only ever improves, per the "better than" order Match.BetterThan
// implements; once non-nil, it never becomes nil again.
type MemoEntry struct {
	Key MemoKey

	mu        sync.Mutex
	bestMatch *Match
	backRefs  *treeset.Set // of MemoKey, ordered by memoKeyComparator
}

func newMemoEntry(key MemoKey) *MemoEntry {
	return &MemoEntry{Key: key}
}

// memoKeyComparator orders MemoKeys by (Clause.OrderID, StartPos), giving
// backRefs a stable, deterministic iteration order independent of map
// hashing — the same reason lr/tables.go's state sets use a treeset keyed by
// a comparator rather than a plain map.
func memoKeyComparator(a, b interface{}) int {
	ka, kb := a.(MemoKey), b.(MemoKey)
	if ka.Clause.OrderID() != kb.Clause.OrderID() {
		if ka.Clause.OrderID() < kb.Clause.OrderID() {
			return -1
		}
		return 1
	}
	switch {
	case ka.StartPos < kb.StartPos:
		return -1
	case ka.StartPos > kb.StartPos:
		return 1
	default:
		return 0
	}
}

// BestMatch returns the entry's current best match, or nil if none has been
// memoized yet.
func (e *MemoEntry) BestMatch() *Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bestMatch
}

// addBackRef records parentKey as a dependent to notify if this entry's
// bestMatch later improves. Idempotent under concurrent, duplicate inserts.
func (e *MemoEntry) addBackRef(parentKey MemoKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backRefs == nil {
		e.backRefs = treeset.NewWith(memoKeyComparator)
	}
	e.backRefs.Add(parentKey)
}

// BackRefs returns a snapshot of the recorded parent keys, in
// memoKeyComparator order.
func (e *MemoEntry) BackRefs() []MemoKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backRefs == nil || e.backRefs.Empty() {
		return nil
	}
	values := e.backRefs.Values()
	refs := make([]MemoKey, len(values))
	for i, v := range values {
		refs[i] = v.(MemoKey)
	}
	return refs
}

// addNewBestMatch implements the merge rule: newMatch replaces the
// incumbent only if there is none yet, or newMatch is strictly better.
// Returns true if the entry's bestMatch changed, in which case the entry
// should be added to updated.
func (e *MemoEntry) addNewBestMatch(newMatch *Match, updated *UpdatedSet) bool {
	e.mu.Lock()
	replaced := newMatch.BetterThan(e.bestMatch)
	if replaced {
		e.bestMatch = newMatch
	}
	e.mu.Unlock()
	if replaced {
		tracer().Debugf("new best match for %v: len=%d altIdx=%d", e.Key,
			newMatch.Len, newMatch.FirstMatchingSubClauseIdx)
		if updated != nil {
			updated.Add(e)
		}
	}
	return replaced
}

// UpdatedSet is the shared, concurrently-writable "frontier" of memo entries
// whose bestMatch changed during the current evaluation round. The driver
// creates one instance per parse and drains it once per round; Add is safe to call from
// multiple goroutines performing parent re-evaluations in parallel.
type UpdatedSet struct {
	mu      sync.Mutex
	entries map[*MemoEntry]struct{}
}

// NewUpdatedSet creates an empty frontier set.
func NewUpdatedSet() *UpdatedSet {
	return &UpdatedSet{entries: make(map[*MemoEntry]struct{})}
}

// Add inserts an entry into the frontier. Idempotent.
func (s *UpdatedSet) Add(e *MemoEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e] = struct{}{}
}

// Drain empties the set and returns a snapshot of what it held.
func (s *UpdatedSet) Drain() []*MemoEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	out := make([]*MemoEntry, 0, len(s.entries))
	for e := range s.entries {
		out = append(out, e)
	}
	s.entries = make(map[*MemoEntry]struct{})
	return out
}

// Empty reports whether the frontier currently holds no entries.
func (s *UpdatedSet) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) == 0
}
