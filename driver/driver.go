package driver

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/pikaparser/pika/clause"
	"github.com/pikaparser/pika/memo"
)

// Option configures a parse run, following the functional-options style.
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers sets the number of goroutines the propagate phase uses to
// re-evaluate a round's dirty entries concurrently. n <= 1 runs the
// fixpoint on the calling goroutine only. The default is 1; the memo and
// clause packages are safe for either mode.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Run parses input against grammar's toplevel clause, running the
// seed/propagate fixpoint to completion, and returns the populated
// MemoTable for the caller to query with memo's extraction methods
// (GetNonOverlappingMatches, GetAllMatches, GetNonMatchPositions).
//
// grammar must already be frozen; see clause.Grammar.Freeze.
func Run(grammar *clause.Grammar, input string, opts ...Option) (*memo.MemoTable, error) {
	if !grammar.Frozen() {
		return nil, fmt.Errorf("driver: grammar %q is not frozen", grammar.Name)
	}
	cfg := &config{workers: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	runes := []rune(input)
	d := &parseDriver{
		grammar: grammar,
		table:   memo.NewMemoTable(runes),
		input:   runes,
		cfg:     cfg,
		updated: memo.NewUpdatedSet(),
	}
	d.seed()
	d.propagate()

	numCreated, numMemoized := d.table.Stats()
	tracer().Infof("parse of %q against %d runes complete: %d match objects created, %d memoized",
		grammar.Name, len(runes), numCreated, numMemoized)
	return d.table, nil
}

type parseDriver struct {
	grammar *clause.Grammar
	table   *memo.MemoTable
	input   []rune
	cfg     *config
	updated *memo.UpdatedSet
}

// seed tries every terminal clause at every position in [0, |input|],
// including the boundary position |input| itself, so that a
// zero-width-capable toplevel clause over an empty input, or a clause
// anchored at end-of-input, still gets a real (non-placeholder) entry
// instead of relying purely on LookUpBestMatch's optimistic fallback.
//
// It also touches (but never Match-evaluates) every Not/And (lookahead)
// clause at every position, guaranteeing each has a MemoEntry even if
// nothing ever ends up notifying it. Calling Match here directly, before
// propagation has had any chance to run, was tried and rejected: a
// lookahead clause's Match rule treats "child has no memoized match yet"
// as equivalent to "child has been proven never to match", which is only
// true for a terminal child (already fully evaluated by the loop above at
// this same position) and false for a non-terminal child that simply
// hasn't been reached by propagation yet. Calling Match this early over a
// non-terminal child would memoize a lookahead verdict based on that
// false premise, and since Not/And only ever call addMatch on success
// (never on failure), a wrong optimistic success can never be corrected
// once a later, correctly-timed re-evaluation resolves the child for
// real — addNewBestMatch's monotonic merge rule has nothing to compare
// the correction against, because failure leaves no match to replace the
// wrong one.
//
// The real verdict is left entirely to ordinary propagation: every
// evaluate() call — including of the plain terminals seeded above —
// touches its entry whether or not it produced a match, and a touched
// entry always enters updated on its first touch (memo.TouchEntry), so
// even a terminal's failure still enqueues that terminal's seed parents
// for re-evaluation. That touch cascades through the static seed-parent
// graph (terminal -> ... -> the lookahead's child -> the lookahead
// clause itself) regardless of whether any step along the way succeeds,
// so a lookahead clause is guaranteed a correctly-timed Match call once
// its child's real status - success or permanent failure - is known.
func (d *parseDriver) seed() {
	n := len(d.input)
	for pos := 0; pos <= n; pos++ {
		for _, c := range d.grammar.Terminals() {
			d.evaluate(c, pos)
		}
	}
	for pos := 0; pos <= n; pos++ {
		for _, c := range d.grammar.LookaheadClauses() {
			d.table.TouchEntry(memo.MemoKey{Clause: c, StartPos: pos}, d.updated)
		}
	}
}

// propagate drains the updated-entries frontier into a working set,
// re-evaluates every seed parent and backref parent of every entry in it,
// and repeats until the frontier stays empty.
func (d *parseDriver) propagate() {
	for !d.updated.Empty() {
		d.evaluateRound(d.updated.Drain())
	}
}

type reevalJob struct {
	clause clause.Clause
	pos    int
}

func (d *parseDriver) evaluateRound(entries []*memo.MemoEntry) {
	seen := make(map[memo.MemoKey]struct{})
	var jobs []reevalJob
	addJob := func(c clause.Clause, pos int) {
		key := memo.MemoKey{Clause: c, StartPos: pos}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		jobs = append(jobs, reevalJob{clause: c, pos: pos})
	}
	for _, e := range entries {
		key := e.Key
		owner := key.Clause.(clause.Clause)
		for _, parent := range owner.SeedParentClauses() {
			addJob(parent, key.StartPos)
		}
		for _, parentKey := range e.BackRefs() {
			addJob(parentKey.Clause.(clause.Clause), parentKey.StartPos)
		}
	}
	if len(jobs) == 0 {
		return
	}
	// Sort the round's jobs into a deterministic (clause, pos) order before
	// dispatch. entries comes from UpdatedSet.Drain's map iteration, which
	// has no stable order, and without this the sequence of AddTerminalMatch/AddNonTerminalMatch
	// calls within a round — and so which trace lines appear in which
	// order — would vary run to run even though the final bestMatch per
	// key never does (the merge rule is order-independent).
	slices.SortFunc(jobs, func(a, b reevalJob) bool {
		if a.clause.OrderID() != b.clause.OrderID() {
			return a.clause.OrderID() < b.clause.OrderID()
		}
		return a.pos < b.pos
	})
	if d.cfg.workers <= 1 {
		for _, j := range jobs {
			d.evaluate(j.clause, j.pos)
		}
		return
	}
	d.evaluateRoundParallel(jobs)
}

func (d *parseDriver) evaluateRoundParallel(jobs []reevalJob) {
	sem := make(chan struct{}, d.cfg.workers)
	var wg sync.WaitGroup
	for _, j := range jobs {
		j := j
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			d.evaluate(j.clause, j.pos)
		}()
	}
	wg.Wait()
}

// evaluate drives c's own Match rule directly at pos, the thing only the
// driver ever does (ordinary subclause results flow through
// MemoTable.LookUpBestMatch instead, never through a second Match call).
// A MemoEntry should exist for a key iff some evaluation has inspected
// that (clause, startPos), so c's own entry must exist after
// this call even if c's match rule failed and so never reached addMatch —
// TouchEntry makes that true without re-triggering propagation on repeat
// evaluations that still fail, preserving the fixpoint's termination
// guarantee (each (clause, startPos) pair can only enter the updated set a
// bounded number of times: once to record its first touch, and then once
// per strict improvement of its bestMatch).
func (d *parseDriver) evaluate(c clause.Clause, pos int) {
	key := memo.MemoKey{Clause: c, StartPos: pos}
	c.Match(clause.BottomUp, d.table, key, d.input, d.updated)
	d.table.TouchEntry(key, d.updated)
}
