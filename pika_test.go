package pika

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/pikaparser/pika/clause"
)

func TestParseZeroOrMoreGreedy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika")
	defer teardown()
	//
	g := clause.NewGrammar("star")
	g.AddRule("S", "", clause.ZeroOrMore(clause.Literal("a")))
	g.MustFreeze()

	table, err := Parse(g, "aaa")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	best := BestMatchAt(table, g.Toplevel, 0)
	if best == nil || MatchSpan(best) != (Span{0, 3}) {
		t.Fatalf("expected S to span (0…3), got %v", best)
	}
}

func TestParseOrderedChoicePrefersEarlierAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika")
	defer teardown()
	//
	g := clause.NewGrammar("choice")
	g.AddRule("S", "", clause.Choice(clause.Literal("a"), clause.Literal("ab")))
	g.MustFreeze()

	table, err := Parse(g, "ab")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	best := BestMatchAt(table, g.Toplevel, 0)
	if best == nil || best.Len != 1 {
		t.Fatalf("expected the earlier, shorter alternative to win, got %v", best)
	}
}

func TestParseLongestPrefersLongerAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika")
	defer teardown()
	//
	g := clause.NewGrammar("longest")
	g.AddRule("S", "", clause.Longest(clause.Literal("a"), clause.Literal("ab")))
	g.MustFreeze()

	table, err := Parse(g, "ab")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	best := BestMatchAt(table, g.Toplevel, 0)
	if best == nil || best.Len != 2 {
		t.Fatalf("expected the longer alternative to win, got %v", best)
	}
}

func TestParseLeftRecursiveExpressionViaRef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika")
	defer teardown()
	//
	digit := clause.CharRange('0', '9')
	ref, resolve := clause.Ref()
	expr := clause.Choice(clause.Seq(ref, clause.Literal("+"), digit), digit)
	resolve(expr)

	g := clause.NewGrammar("expr")
	g.AddRule("E", "", expr)
	g.MustFreeze()

	table, err := Parse(g, "1+2+3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	best := BestMatchAt(table, g.Toplevel, 0)
	if best == nil || best.Len != 5 {
		t.Fatalf("expected the whole left-recursive chain to match, got %v", best)
	}
}

func TestParseNegativeLookaheadBlocksMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika")
	defer teardown()
	//
	g := clause.NewGrammar("lookahead")
	g.AddRule("S", "", clause.Seq(clause.Not(clause.Literal("x")), clause.AnyChar()))
	g.MustFreeze()

	table, err := Parse(g, "x")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if best := BestMatchAt(table, g.Toplevel, 0); best != nil {
		t.Fatalf("expected no match at a position the lookahead rejects, got %v", best)
	}
}

// TestParseOptionalOnEmptyInputIsStored confirms a zero-width match at the
// end-of-input boundary is a real memoized entry, not merely served by the
// optimistic placeholder fallback: GetAllMatches only ever sees entries that
// were actually stored.
func TestParseOptionalOnEmptyInputIsStored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika")
	defer teardown()
	//
	g := clause.NewGrammar("optional")
	g.AddRule("S", "", clause.Optional(clause.Literal("a")))
	g.MustFreeze()

	table, err := Parse(g, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	all := table.GetAllMatches(g.Toplevel)
	if len(all) != 1 || all[0].Len != 0 {
		t.Fatalf("expected exactly one stored zero-width match, got %v", all)
	}
}
