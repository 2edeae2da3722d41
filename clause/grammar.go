package clause

import (
	"errors"
	"fmt"
)

// Grammar owns a frozen clause graph plus the bookkeeping the driver needs
// to seed it: the toplevel clause, the terminal clauses, and the lookahead
// clauses (see driver's seeding doc comment for why lookahead clauses get
// special treatment too).
//
// Construct one with NewGrammar, add rules with AddRule, then call Freeze.
// The graph must not be mutated after Freeze: AddRule panics if called on
// a frozen Grammar.
type Grammar struct {
	Name     string
	Toplevel Clause

	frozen    bool
	allRaw    []Clause // construction order, may contain duplicates
	all       []Clause // deduped, construction order
	seen      map[uint64]struct{}
	terminals []Clause
	lookahead []Clause
}

// NewGrammar creates an empty, unfrozen grammar named name.
func NewGrammar(name string) *Grammar {
	return &Grammar{Name: name, seen: make(map[uint64]struct{})}
}

// AddRule registers name <- body as a rule of the grammar, with an optional
// astLabel (opaque to this package, carried only for a downstream AST
// builder). The first rule added becomes the grammar's Toplevel clause if
// none has been set yet. Every clause transitively reachable from body is
// recorded for the Freeze pass.
//
// Panics if called after Freeze.
func (g *Grammar) AddRule(name string, astLabel string, body Clause) *Rule {
	if g.frozen {
		panic("clause: AddRule called on a frozen Grammar")
	}
	rule := &Rule{Name: name, ASTLabel: astLabel}
	body.registerRule(rule)
	g.collect(body)
	if g.Toplevel == nil {
		g.Toplevel = body
	}
	return rule
}

// collect walks body and its subclauses, recording every distinct clause
// (by OrderID) exactly once, in first-seen (construction) order.
func (g *Grammar) collect(c Clause) {
	if _, dup := g.seen[c.OrderID()]; dup {
		return
	}
	g.seen[c.OrderID()] = struct{}{}
	g.all = append(g.all, c)
	for _, sub := range c.SubClauses() {
		g.collect(sub)
	}
}

// Freeze runs the two static analyses this package depends on — the
// canMatchZeroChars fixpoint and the seedParentClauses wiring — and marks
// the grammar immutable. It must be called exactly once, after every rule
// has been added, and before any parse is run.
func (g *Grammar) Freeze() error {
	if g.frozen {
		return nil
	}
	if g.Toplevel == nil {
		return errors.New("clause: grammar has no toplevel clause; add at least one rule")
	}
	computeCanMatchZeroChars(g.all)
	for _, c := range g.all {
		for _, seed := range c.seedSubClauses() {
			seed.addSeedParent(c)
		}
		if c.Kind().IsTerminal() {
			g.terminals = append(g.terminals, c)
		}
		if c.Kind().IsLookahead() {
			g.lookahead = append(g.lookahead, c)
		}
	}
	g.frozen = true
	tracer().Infof("grammar %q frozen: %d clauses, %d terminals, %d lookahead",
		g.Name, len(g.all), len(g.terminals), len(g.lookahead))
	return nil
}

// MustFreeze is Freeze, panicking on error. Convenient for tests and
// examples that construct a grammar inline.
func (g *Grammar) MustFreeze() *Grammar {
	if err := g.Freeze(); err != nil {
		panic(fmt.Sprintf("clause: %v", err))
	}
	return g
}

// AllClauses returns every clause reachable from the grammar's rules, in
// first-seen construction order. Only valid after Freeze.
func (g *Grammar) AllClauses() []Clause {
	return g.all
}

// Terminals returns the grammar's terminal clauses, the seed set for
// ParseDriver's initial pass. Only valid after Freeze.
func (g *Grammar) Terminals() []Clause {
	return g.terminals
}

// LookaheadClauses returns the grammar's Not/And clauses. Only valid after
// Freeze.
func (g *Grammar) LookaheadClauses() []Clause {
	return g.lookahead
}

// Frozen reports whether Freeze has been called.
func (g *Grammar) Frozen() bool {
	return g.frozen
}
