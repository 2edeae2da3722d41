package clause

import (
	"fmt"
	"strings"

	"github.com/pikaparser/pika/memo"
)

// --- Sequence --------------------------------------------------------------

type seqClause struct{ header }

// Seq builds a clause that matches subs in order, one after another,
// succeeding only if every subclause matches.
func Seq(subs ...Clause) Clause {
	if len(subs) == 0 {
		panic("clause: Seq requires at least one subclause")
	}
	return &seqClause{header: newHeader(KindSequence, subs...)}
}

func (c *seqClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *seqClause) String() string {
	return c.memoKeyString(joinSub(c.sub, " "))
}

func (c *seqClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	pos := key.StartPos
	matches := make([]*memo.Match, len(c.sub))
	for i, sub := range c.sub {
		var m *memo.Match
		if dir == TopDown {
			m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: pos}, input, updated)
		} else {
			m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: pos}, key, updated)
		}
		if m == nil {
			return nil
		}
		matches[i] = m
		pos = m.EndPos()
	}
	return table.AddNonTerminalMatch(key, 0, matches, updated)
}

// --- OrderedChoice -----------------------------------------------------------

type orderedChoiceClause struct{ header }

// Choice builds a clause that tries subs in order and commits to the first
// one that matches (PEG's `/`).
func Choice(subs ...Clause) Clause {
	if len(subs) == 0 {
		panic("clause: Choice requires at least one subclause")
	}
	return &orderedChoiceClause{header: newHeader(KindOrderedChoice, subs...)}
}

// seedSubClauses: every alternative can independently trigger a
// re-evaluation of the choice, since any one of them improving could change
// which alternative currently wins.
func (c *orderedChoiceClause) seedSubClauses() []Clause { return c.sub }

func (c *orderedChoiceClause) String() string {
	return c.memoKeyString(joinSub(c.sub, " / "))
}

func (c *orderedChoiceClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	for i, sub := range c.sub {
		var m *memo.Match
		if dir == TopDown {
			m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: key.StartPos}, input, updated)
		} else {
			m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: key.StartPos}, key, updated)
		}
		if m != nil {
			return table.AddNonTerminalMatch(key, i, []*memo.Match{m}, updated)
		}
	}
	return nil
}

// --- Longest -----------------------------------------------------------------

type longestClause struct{ header }

// Longest builds a clause that tries every sub and keeps the longest match,
// breaking ties by earliest alternative (PEG's `|`).
func Longest(subs ...Clause) Clause {
	if len(subs) == 0 {
		panic("clause: Longest requires at least one subclause")
	}
	return &longestClause{header: newHeader(KindLongest, subs...)}
}

func (c *longestClause) seedSubClauses() []Clause { return c.sub }

func (c *longestClause) String() string {
	return c.memoKeyString(joinSub(c.sub, " | "))
}

func (c *longestClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	var best *memo.Match
	bestIdx := 0
	for i, sub := range c.sub {
		var m *memo.Match
		if dir == TopDown {
			m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: key.StartPos}, input, updated)
		} else {
			m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: key.StartPos}, key, updated)
		}
		if m == nil {
			continue
		}
		candidate := &memo.Match{Key: m.Key, FirstMatchingSubClauseIdx: i, Len: m.Len, SubClauseMatches: []*memo.Match{m}}
		if candidate.BetterThan(best) {
			best = candidate
			bestIdx = i
		}
	}
	if best == nil {
		return nil
	}
	return table.AddNonTerminalMatch(key, bestIdx, best.SubClauseMatches, updated)
}

// --- Optional ----------------------------------------------------------------

type optionalClause struct{ header }

// Optional builds a clause that matches sub if possible, otherwise matches
// zero characters (PEG's `?`).
func Optional(sub Clause) Clause {
	return &optionalClause{header: newHeader(KindOptional, sub)}
}

func (c *optionalClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *optionalClause) String() string {
	return c.memoKeyString(soleSub(c.sub) + "?")
}

func (c *optionalClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	sub := c.sub[0]
	var m *memo.Match
	if dir == TopDown {
		m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: key.StartPos}, input, updated)
	} else {
		m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: key.StartPos}, key, updated)
	}
	if m == nil {
		return table.AddNonTerminalMatch(key, 0, nil, updated)
	}
	return table.AddNonTerminalMatch(key, 0, []*memo.Match{m}, updated)
}

// --- OneOrMore -----------------------------------------------------------

type oneOrMoreClause struct{ header }

// OneOrMore builds a clause that greedily matches sub one or more times
// (PEG's `+`).
func OneOrMore(sub Clause) Clause {
	return &oneOrMoreClause{header: newHeader(KindOneOrMore, sub)}
}

func (c *oneOrMoreClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *oneOrMoreClause) String() string {
	return c.memoKeyString(soleSub(c.sub) + "+")
}

func (c *oneOrMoreClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	sub := c.sub[0]
	var matches []*memo.Match
	pos := key.StartPos
	for {
		var m *memo.Match
		if dir == TopDown {
			m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: pos}, input, updated)
		} else {
			m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: pos}, key, updated)
		}
		if m == nil {
			break
		}
		matches = append(matches, m)
		pos = m.EndPos()
		if m.Len == 0 {
			// A zero-width repetition would loop forever; one repetition
			// is enough to witness it.
			break
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return table.AddNonTerminalMatch(key, 0, matches, updated)
}

// --- ZeroOrMore ----------------------------------------------------------

type zeroOrMoreClause struct{ header }

// ZeroOrMore builds a clause that greedily matches sub zero or more times
// (PEG's `*`), always succeeding.
func ZeroOrMore(sub Clause) Clause {
	return &zeroOrMoreClause{header: newHeader(KindZeroOrMore, sub)}
}

func (c *zeroOrMoreClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *zeroOrMoreClause) String() string {
	return c.memoKeyString(soleSub(c.sub) + "*")
}

func (c *zeroOrMoreClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	sub := c.sub[0]
	var matches []*memo.Match
	pos := key.StartPos
	for {
		var m *memo.Match
		if dir == TopDown {
			m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: pos}, input, updated)
		} else {
			m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: pos}, key, updated)
		}
		if m == nil {
			break
		}
		matches = append(matches, m)
		pos = m.EndPos()
		if m.Len == 0 {
			break
		}
	}
	return table.AddNonTerminalMatch(key, 0, matches, updated)
}

// --- Not (negative lookahead) ---------------------------------------------

type notClause struct{ header }

// Not builds a zero-width clause that succeeds iff sub does not match at
// the current position (PEG's `!`). Its Match rule trusts sub's memoized
// entry as final the moment it is asked to run, so it must never be asked
// to run before sub's own bottom-up status at this position is actually
// known — see driver.parseDriver.seed's doc comment for how the driver
// guarantees that ordering instead of evaluating Not eagerly.
func Not(sub Clause) Clause {
	return &notClause{header: newHeader(KindNot, sub)}
}

func (c *notClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *notClause) String() string {
	return c.memoKeyString("!" + soleSub(c.sub))
}

func (c *notClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	sub := c.sub[0]
	var m *memo.Match
	if dir == TopDown {
		m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: key.StartPos}, input, updated)
	} else {
		m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: key.StartPos}, key, updated)
	}
	if m != nil {
		return nil
	}
	return table.AddNonTerminalMatch(key, 0, nil, updated)
}

// --- And (positive lookahead) ----------------------------------------------

type andClause struct{ header }

// And builds a zero-width clause that succeeds iff sub matches at the
// current position, without consuming any input (PEG's `&`).
func And(sub Clause) Clause {
	return &andClause{header: newHeader(KindAnd, sub)}
}

func (c *andClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *andClause) String() string {
	return c.memoKeyString("&" + soleSub(c.sub))
}

func (c *andClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	sub := c.sub[0]
	var m *memo.Match
	if dir == TopDown {
		m = sub.Match(dir, table, memo.MemoKey{Clause: sub, StartPos: key.StartPos}, input, updated)
	} else {
		m = table.LookUpBestMatch(memo.MemoKey{Clause: sub, StartPos: key.StartPos}, key, updated)
	}
	if m == nil {
		return nil
	}
	return table.AddNonTerminalMatch(key, 0, nil, updated)
}

// --- shared string helpers --------------------------------------------------

func joinSub(subs []Clause, sep string) string {
	parts := make([]string, len(subs))
	for i, s := range subs {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}

func soleSub(subs []Clause) string {
	if len(subs) == 0 {
		return "?"
	}
	return fmt.Sprintf("(%s)", subs[0].String())
}
