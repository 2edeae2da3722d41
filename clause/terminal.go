package clause

import (
	"fmt"
	"strconv"

	"github.com/pikaparser/pika/memo"
)

// --- Literal -----------------------------------------------------------

type literalClause struct {
	header
	text []rune
}

// Literal builds a terminal clause that matches the exact string s at a
// position.
func Literal(s string) Clause {
	return &literalClause{header: newHeader(KindLiteral), text: []rune(s)}
}

func (c *literalClause) seedSubClauses() []Clause { return nil }

func (c *literalClause) String() string {
	return c.memoKeyString(strconv.Quote(string(c.text)))
}

func (c *literalClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	pos := key.StartPos
	if pos+len(c.text) > len(input) {
		return nil
	}
	for i, r := range c.text {
		if input[pos+i] != r {
			return nil
		}
	}
	return table.AddTerminalMatch(key, len(c.text), updated)
}

// --- CharSet -------------------------------------------------------------

type charSetClause struct {
	header
	set map[rune]struct{}
}

// CharSet builds a terminal clause that matches any single rune in runes.
func CharSet(runes ...rune) Clause {
	set := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		set[r] = struct{}{}
	}
	return &charSetClause{header: newHeader(KindCharSet), set: set}
}

func (c *charSetClause) seedSubClauses() []Clause { return nil }

func (c *charSetClause) String() string {
	return c.memoKeyString(fmt.Sprintf("CharSet(%d runes)", len(c.set)))
}

func (c *charSetClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	pos := key.StartPos
	if pos >= len(input) {
		return nil
	}
	if _, ok := c.set[input[pos]]; !ok {
		return nil
	}
	return table.AddTerminalMatch(key, 1, updated)
}

// --- CharRange -----------------------------------------------------------

type charRangeClause struct {
	header
	lo, hi rune
}

// CharRange builds a terminal clause that matches any single rune r with
// lo <= r <= hi.
func CharRange(lo, hi rune) Clause {
	return &charRangeClause{header: newHeader(KindCharRange), lo: lo, hi: hi}
}

func (c *charRangeClause) seedSubClauses() []Clause { return nil }

func (c *charRangeClause) String() string {
	return c.memoKeyString(fmt.Sprintf("[%c-%c]", c.lo, c.hi))
}

func (c *charRangeClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	pos := key.StartPos
	if pos >= len(input) {
		return nil
	}
	r := input[pos]
	if r < c.lo || r > c.hi {
		return nil
	}
	return table.AddTerminalMatch(key, 1, updated)
}

// --- AnyChar ---------------------------------------------------------------

type anyCharClause struct {
	header
}

// AnyChar builds a terminal clause that matches any single remaining
// character (PEG's `.`).
func AnyChar() Clause {
	return &anyCharClause{header: newHeader(KindAnyChar)}
}

func (c *anyCharClause) seedSubClauses() []Clause { return nil }

func (c *anyCharClause) String() string {
	return c.memoKeyString(".")
}

func (c *anyCharClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	if key.StartPos >= len(input) {
		return nil
	}
	return table.AddTerminalMatch(key, 1, updated)
}
