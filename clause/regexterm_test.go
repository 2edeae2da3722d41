package clause

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRegexMatchesLongestPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	c := Regex("[0-9]+")
	m := matchTopDown(c, 0, []rune("123abc"))
	if m == nil || m.Len != 3 {
		t.Fatalf("expected Regex to match the longest run of digits (len 3), got %v", m)
	}
	if matchTopDown(c, 0, []rune("abc")) != nil {
		t.Fatalf("expected Regex(\"[0-9]+\") to fail against a non-digit prefix")
	}
}

func TestRegexCanMatchZeroChars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	star := Regex("[0-9]*")
	plus := Regex("[0-9]+")

	g := NewGrammar("regexzero")
	g.AddRule("Star", "", star)
	g.AddRule("Plus", "", plus)
	g.MustFreeze()

	if !star.CanMatchZeroChars() {
		t.Fatalf(`Regex("[0-9]*") must be able to match zero characters`)
	}
	if plus.CanMatchZeroChars() {
		t.Fatalf(`Regex("[0-9]+") must not be able to match zero characters`)
	}
}

func TestRegexZeroWidthMatchAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.clause")
	defer teardown()
	//
	// A zero-width-capable regex terminal must still get a real match at
	// the very end of input, the same as an empty Literal does, rather
	// than only ever being served by the zero-width placeholder.
	star := Regex("[0-9]*")
	m := matchTopDown(star, 0, []rune(""))
	if m == nil || m.Len != 0 {
		t.Fatalf(`expected Regex("[0-9]*") to match zero characters at end of input, got %v`, m)
	}

	plus := Regex("[0-9]+")
	if matchTopDown(plus, 0, []rune("")) != nil {
		t.Fatalf(`expected Regex("[0-9]+") to fail at end of input`)
	}
}
