package clause

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSeqMatchesInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	c := Seq(Literal("a"), Literal("b"))
	input := []rune("ab")
	m := matchTopDown(c, 0, input)
	if m == nil || m.Len != 2 {
		t.Fatalf("expected Seq match of len 2, got %v", m)
	}
	if matchTopDown(Seq(Literal("a"), Literal("c")), 0, input) != nil {
		t.Fatalf("expected Seq to fail when the second subclause fails")
	}
}

func TestOrderedChoiceIsLeftBiased(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	// S <- 'a' / 'ab' on "ab": left-biased choice takes the first
	// alternative that matches, even though the second is longer.
	c := Choice(Literal("a"), Literal("ab"))
	m := matchTopDown(c, 0, []rune("ab"))
	if m == nil || m.Len != 1 || m.FirstMatchingSubClauseIdx != 0 {
		t.Fatalf("expected left-biased match len=1 altIdx=0, got %v", m)
	}
}

func TestLongestPicksTheLongestAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	// S <- 'a' | 'ab' on "ab": longest-match semantics pick the second
	// alternative even though it is tried after the first.
	c := Longest(Literal("a"), Literal("ab"))
	m := matchTopDown(c, 0, []rune("ab"))
	if m == nil || m.Len != 2 || m.FirstMatchingSubClauseIdx != 1 {
		t.Fatalf("expected longest match len=2 altIdx=1, got %v", m)
	}
}

func TestOptionalOnEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	c := Optional(Literal("a"))
	m := matchTopDown(c, 0, []rune(""))
	if m == nil || m.Len != 0 {
		t.Fatalf("Optional must succeed with a zero-width match when its child fails, got %v", m)
	}
}

func TestOneOrMoreRequiresAtLeastOne(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	c := OneOrMore(Literal("a"))
	if matchTopDown(c, 0, []rune("bbb")) != nil {
		t.Fatalf("OneOrMore must fail when its child never matches")
	}
	m := matchTopDown(c, 0, []rune("aaab"))
	if m == nil || m.Len != 3 {
		t.Fatalf("expected OneOrMore to consume 3 characters, got %v", m)
	}
}

func TestZeroOrMoreOnAllMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	// S <- 'a'* on "aaa".
	c := ZeroOrMore(Literal("a"))
	m := matchTopDown(c, 0, []rune("aaa"))
	if m == nil || m.Len != 3 {
		t.Fatalf("expected ZeroOrMore to consume all 3 characters, got %v", m)
	}
	m2 := matchTopDown(c, 0, []rune("bbb"))
	if m2 == nil || m2.Len != 0 {
		t.Fatalf("ZeroOrMore must succeed with zero width when its child never matches, got %v", m2)
	}
}

func TestNotLookaheadDoesNotConsume(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	// S <- !'x' . on "y" matches len 1 at position 0; on "x" there is no
	// match at position 0.
	c := Seq(Not(Literal("x")), AnyChar())
	if m := matchTopDown(c, 0, []rune("y")); m == nil || m.Len != 1 {
		t.Fatalf("expected Seq(Not('x'), .) to match 'y' with len 1, got %v", m)
	}
	if matchTopDown(c, 0, []rune("x")) != nil {
		t.Fatalf("expected Seq(Not('x'), .) to fail to match 'x'")
	}
}

func TestAndLookaheadDoesNotConsume(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	c := Seq(And(Literal("ab")), Literal("a"))
	m := matchTopDown(c, 0, []rune("abc"))
	if m == nil || m.Len != 1 {
		t.Fatalf("expected And lookahead to pass through without consuming, got %v", m)
	}
	if matchTopDown(c, 0, []rune("ac")) != nil {
		t.Fatalf("expected And('ab') to fail to match when only 'a' is present")
	}
}
