package pika

import (
	"fmt"

	"github.com/pikaparser/pika/clause"
	"github.com/pikaparser/pika/driver"
	"github.com/pikaparser/pika/memo"
)

// Span denotes a half-open range of rune positions [From, To) a Match
// covers.
type Span struct {
	From, To int
}

// Len returns the number of runes the span covers.
func (s Span) Len() int { return s.To - s.From }

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s.From, s.To)
}

// Parse runs grammar's seed/propagate fixpoint against input and returns
// the populated MemoTable. grammar must already be frozen (see
// clause.Grammar.Freeze / MustFreeze).
func Parse(grammar *clause.Grammar, input string, opts ...driver.Option) (*memo.MemoTable, error) {
	return driver.Run(grammar, input, opts...)
}

// MatchSpan converts a Match's (startPos, length) pair into a Span.
func MatchSpan(m *memo.Match) Span {
	return Span{From: m.Key.StartPos, To: m.EndPos()}
}

// BestMatchAt returns clause's best match at pos, or nil if none was
// memoized (and clause cannot match zero characters there).
func BestMatchAt(table *memo.MemoTable, c clause.Clause, pos int) *memo.Match {
	return table.LookUpBestMatch(memo.MemoKey{Clause: c, StartPos: pos}, memo.MemoKey{Clause: c, StartPos: pos}, nil)
}
