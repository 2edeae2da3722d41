package clause

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/pikaparser/pika/memo"
)

// matchTopDown runs c's unmemoized recursive-descent match protocol at pos,
// for tests that want to check a single clause's behavior without running
// the full driver fixpoint. It still uses a MemoTable as the Match
// signature requires one, but the result isn't meant to be queried through
// the table's extraction methods afterwards.
func matchTopDown(c Clause, pos int, input []rune) *memo.Match {
	table := memo.NewMemoTable(input)
	key := memo.MemoKey{Clause: c, StartPos: pos}
	return c.Match(TopDown, table, key, input, nil)
}

func TestLiteralMatchTopDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	g := NewGrammar("lit")
	g.AddRule("S", "", Literal("ab"))
	g.MustFreeze()

	input := []rune("abc")
	m := matchTopDown(g.Toplevel, 0, input)
	if m == nil || m.Len != 2 {
		t.Fatalf("expected literal match of len 2, got %v", m)
	}
	if matchTopDown(g.Toplevel, 1, input) != nil {
		t.Fatalf("expected no match starting at position 1")
	}
}

func TestAnyCharAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	g := NewGrammar("any")
	g.AddRule("S", "", AnyChar())
	g.MustFreeze()

	input := []rune("a")
	if matchTopDown(g.Toplevel, 1, input) != nil {
		t.Fatalf("AnyChar must not match past the end of input")
	}
}

func TestCanMatchZeroCharsFixpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	g := NewGrammar("zero")
	opt := Optional(Literal("x"))
	g.AddRule("S", "", Seq(opt, Literal("y")))
	g.MustFreeze()

	if !opt.CanMatchZeroChars() {
		t.Fatalf("Optional must always be able to match zero characters")
	}
	if g.Toplevel.CanMatchZeroChars() {
		t.Fatalf("Seq(Optional, Literal(y)) cannot match zero characters")
	}
}

func TestSeqCanMatchZeroCharsRequiresEveryChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	g := NewGrammar("seqzero")
	g.AddRule("S", "", Seq(Optional(Literal("x")), Optional(Literal("y"))))
	g.MustFreeze()

	if !g.Toplevel.CanMatchZeroChars() {
		t.Fatalf("a sequence of all-optional children must match zero characters")
	}
}

func TestStringRendersRuleNameAndASTLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	g := NewGrammar("labeled")
	g.AddRule("S", "expr", Literal("a"))
	g.MustFreeze()

	want := `(S <- expr:"a")`
	if got := g.Toplevel.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
