package memo

import (
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/treemap"
)

// MemoTable is the store of MemoEntries, bound to a single, immutable input.
// Logically a sparse map Clause -> (startPos -> MemoEntry), with the inner
// map kept in ascending startPos order. The outer association uses a
// sync.Map for at-most-one-winner concurrent insertion of new per-clause
// submaps; each inner submap is a gods treemap guarded by its own mutex,
// giving the ordered "get-or-insert" and "least key >= k" queries the
// extraction operations need.
type MemoTable struct {
	input []rune

	clauses sync.Map // ClauseRef -> *clauseSubmap

	numCreated  int64
	numMemoized int64
}

type clauseSubmap struct {
	mu      sync.Mutex
	entries *treemap.Map // int startPos -> *MemoEntry
}

// NewMemoTable constructs a MemoTable bound to input. The table is otherwise
// empty; entries are created lazily as lookups and insertions touch them.
func NewMemoTable(input []rune) *MemoTable {
	return &MemoTable{input: input}
}

// Input returns the immutable input this table was constructed for.
func (t *MemoTable) Input() []rune {
	return t.input
}

// InputLen returns the length of the bound input, in runes.
func (t *MemoTable) InputLen() int {
	return len(t.input)
}

func (t *MemoTable) submapFor(c ClauseRef) *clauseSubmap {
	if v, ok := t.clauses.Load(c); ok {
		return v.(*clauseSubmap)
	}
	fresh := &clauseSubmap{entries: treemap.NewWithIntComparator()}
	actual, _ := t.clauses.LoadOrStore(c, fresh)
	return actual.(*clauseSubmap)
}

// getOrCreateMemoEntry returns the existing MemoEntry for key, creating one
// if it did not exist.
func (t *MemoTable) getOrCreateMemoEntry(key MemoKey) *MemoEntry {
	e, _ := t.getOrCreateMemoEntryWithNew(key)
	return e
}

func (t *MemoTable) getOrCreateMemoEntryWithNew(key MemoKey) (*MemoEntry, bool) {
	sm := t.submapFor(key.Clause)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if v, found := sm.entries.Get(key.StartPos); found {
		return v.(*MemoEntry), false
	}
	e := newMemoEntry(key)
	sm.entries.Put(key.StartPos, e)
	return e, true
}

// EntryAt performs a direct MemoEntry lookup by MemoKey, without creating
// one and without the zero-width placeholder fallback.
func (t *MemoTable) EntryAt(key MemoKey) (*MemoEntry, bool) {
	sm, ok := t.clauses.Load(key.Clause)
	if !ok {
		return nil, false
	}
	csm := sm.(*clauseSubmap)
	csm.mu.Lock()
	defer csm.mu.Unlock()
	v, found := csm.entries.Get(key.StartPos)
	if !found {
		return nil, false
	}
	return v.(*MemoEntry), true
}

// LookUpBestMatch looks up memoKey's best match, creating an empty entry
// first if none exists yet. If parentKey names a different start
// position than memoKey, a backref from memoKey's entry to parentKey is
// recorded, so that a later improvement to memoKey's match is propagated to
// parentKey even though parentKey's clause is not a static seed parent of
// memoKey's clause.
func (t *MemoTable) LookUpBestMatch(memoKey MemoKey, parentKey MemoKey, updated *UpdatedSet) *Match {
	entry := t.getOrCreateMemoEntry(memoKey)
	if !parentKey.SamePosition(memoKey) {
		entry.addBackRef(parentKey)
	}
	if best := entry.BestMatch(); best != nil {
		return best
	}
	if memoKey.Clause.CanMatchZeroChars() && memoKey.Clause.PlaceholderEligible() {
		return zeroWidthPlaceholder(memoKey)
	}
	return nil
}

// TouchEntry records that memoKey was evaluated, whether or not it
// produced a match, adding its entry to updated the first time (and only
// the first time) this memoKey is touched. The driver touches every
// (clause, pos) it evaluates: a plain "no match" leaves no trace in the
// table by itself, which would mean the seed parents of a clause that
// failed never get notified to re-evaluate — lookahead clauses (Not/And)
// in particular depend on that notification to reach their verdict once
// their child's failure is known. After the first touch, a clause reaches
// updated again only through addMatch, on a strict improvement. Touching only
// once, rather than on every re-evaluation, keeps the fixpoint's bounded,
// monotonic termination guarantee intact: a clause whose verdict never
// changes must stop generating propagation events.
func (t *MemoTable) TouchEntry(memoKey MemoKey, updated *UpdatedSet) {
	entry, isNew := t.getOrCreateMemoEntryWithNew(memoKey)
	if isNew && updated != nil {
		updated.Add(entry)
	}
}

// addMatch is the common insertion path for addTerminalMatch and
// addNonTerminalMatch.
func (t *MemoTable) addMatch(memoKey MemoKey, firstMatchingSubClauseIdx int, match *Match, updated *UpdatedSet) *Match {
	entry := t.getOrCreateMemoEntry(memoKey)
	atomic.AddInt64(&t.numCreated, 1)
	if entry.addNewBestMatch(match, updated) {
		atomic.AddInt64(&t.numMemoized, 1)
	}
	return match
}

// AddTerminalMatch records a successful terminal match of the given length.
func (t *MemoTable) AddTerminalMatch(memoKey MemoKey, length int, updated *UpdatedSet) *Match {
	return t.addMatch(memoKey, 0, newTerminalMatch(memoKey, length), updated)
}

// AddNonTerminalMatch records a successful non-terminal match whose length
// is the sum of its children's lengths.
func (t *MemoTable) AddNonTerminalMatch(memoKey MemoKey, firstMatchingSubClauseIdx int, subClauseMatches []*Match, updated *UpdatedSet) *Match {
	match := newNonTerminalMatch(memoKey, firstMatchingSubClauseIdx, subClauseMatches)
	return t.addMatch(memoKey, firstMatchingSubClauseIdx, match, updated)
}

// Stats returns the monotonic object-creation counters.
func (t *MemoTable) Stats() (numMatchObjectsCreated, numMatchObjectsMemoized int64) {
	return atomic.LoadInt64(&t.numCreated), atomic.LoadInt64(&t.numMemoized)
}

// --- Extraction queries, purely read-only ---------------------------------

// GetNonOverlappingMatches greedily collects matches for clause starting at
// the lowest memoized position, then resumes scanning at the least position
// strictly past the end of the match just taken. Positions with an entry but
// no best match are skipped one at a time. The max(1, len) advance prevents
// a zero-width match from stalling the cursor forever.
func (t *MemoTable) GetNonOverlappingMatches(clause ClauseRef) []*Match {
	sm := t.loadSubmap(clause)
	if sm == nil {
		return nil
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var out []*Match
	pos, ok := firstKey(sm.entries)
	for ok {
		entry := mustEntry(sm.entries, pos)
		if best := entry.BestMatch(); best != nil {
			out = append(out, best)
			advance := pos + maxInt(1, best.Len) - 1
			pos, ok = ceilingKeyAfter(sm.entries, advance)
		} else {
			pos, ok = ceilingKeyAfter(sm.entries, pos)
		}
	}
	return out
}

// GetAllMatches returns every memoized match for clause, in ascending
// startPos order, without any cursor skipping.
func (t *MemoTable) GetAllMatches(clause ClauseRef) []*Match {
	sm := t.loadSubmap(clause)
	if sm == nil {
		return nil
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var out []*Match
	pos, ok := firstKey(sm.entries)
	for ok {
		entry := mustEntry(sm.entries, pos)
		if best := entry.BestMatch(); best != nil {
			out = append(out, best)
		}
		pos, ok = ceilingKeyAfter(sm.entries, pos)
	}
	return out
}

// GetNonMatchPositions returns every startPos for which clause has a memo
// entry but no best match. This reports probed-but-failed positions only,
// not every position in [0, |input|] — positions never probed (no entry at
// all) are silently omitted. Callers after "all positions the clause failed
// at" should union this with their own notion of which positions were
// probed.
func (t *MemoTable) GetNonMatchPositions(clause ClauseRef) []int {
	sm := t.loadSubmap(clause)
	if sm == nil {
		return nil
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var out []int
	pos, ok := firstKey(sm.entries)
	for ok {
		entry := mustEntry(sm.entries, pos)
		if entry.BestMatch() == nil {
			out = append(out, pos)
		}
		pos, ok = ceilingKeyAfter(sm.entries, pos)
	}
	return out
}

func (t *MemoTable) loadSubmap(clause ClauseRef) *clauseSubmap {
	v, ok := t.clauses.Load(clause)
	if !ok {
		return nil
	}
	return v.(*clauseSubmap)
}

// --- treemap helpers -----------------------------------------------------

func firstKey(m *treemap.Map) (int, bool) {
	k, _ := m.Min()
	if k == nil {
		return 0, false
	}
	return k.(int), true
}

// ceilingKeyAfter returns the least key strictly greater than after, a
// "higherEntry"-style query. gods' treemap only exposes Ceiling (least key
// >= k), so we probe at after+1.
func ceilingKeyAfter(m *treemap.Map, after int) (int, bool) {
	k, _ := m.Ceiling(after + 1)
	if k == nil {
		return 0, false
	}
	return k.(int), true
}

func mustEntry(m *treemap.Map, pos int) *MemoEntry {
	v, _ := m.Get(pos)
	return v.(*MemoEntry)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
