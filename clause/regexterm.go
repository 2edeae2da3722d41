package clause

import (
	"fmt"
	"regexp"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/pikaparser/pika/memo"
)

// regexClause is a terminal backed by a single-pattern lexmachine DFA:
// compile the DFA once at construction, then re-scan from the byte offset
// of interest on every Match call. lexmachine operates on bytes, not
// runes, so Match converts the matched byte span back to a rune count
// before recording it.
type regexClause struct {
	header
	pattern   string
	lexer     *lexmachine.Lexer
	zeroWidth bool
}

// Regex builds a terminal clause that matches the longest prefix at a
// position accepted by the regular expression pattern (lexmachine syntax,
// a superset of POSIX extended regular expressions). Panics if pattern
// fails to compile, since a grammar is normally built once at program
// startup and a bad pattern is a programming error, not a runtime
// condition.
func Regex(pattern string) Clause {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(pattern), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return m, nil
	})
	if err := lexer.Compile(); err != nil {
		panic(fmt.Sprintf("clause: Regex(%q): %v", pattern, err))
	}
	return &regexClause{
		header:    newHeader(KindRegex),
		pattern:   pattern,
		lexer:     lexer,
		zeroWidth: patternMatchesEmpty(pattern),
	}
}

// patternMatchesEmpty reports whether pattern accepts the empty string, so
// that CanMatchZeroChars answers correctly for patterns like "[0-9]*". It
// asks Go's stdlib regexp package rather than lexmachine's own DFA: probing
// lexmachine with a zero-length scan is undocumented territory, while
// stdlib regexp's anchored-match semantics against "" are well defined.
// lexmachine's pattern syntax is a superset of POSIX ERE and stdlib
// regexp's RE2 syntax mostly overlaps it for the common constructs
// (character classes, *, +, ?, alternation) that actually affect
// zero-width capability; a pattern stdlib can't parse falls back to the
// conservative false rather than guessing.
func patternMatchesEmpty(pattern string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false
	}
	return re.MatchString("")
}

func (c *regexClause) seedSubClauses() []Clause { return nil }

func (c *regexClause) String() string {
	return c.memoKeyString(fmt.Sprintf("/%s/", c.pattern))
}

func (c *regexClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	pos := key.StartPos
	if pos > len(input) {
		return nil
	}
	if pos == len(input) {
		// Never hand lexmachine an empty byte slice to scan; whether a
		// pattern matches here is already known from construction time.
		if c.zeroWidth {
			return table.AddTerminalMatch(key, 0, updated)
		}
		return nil
	}
	tail := []byte(string(input[pos:]))
	scanner, err := c.lexer.Scanner(tail)
	if err != nil {
		tracer().Errorf("regex %q: scanner setup: %v", c.pattern, err)
		return nil
	}
	tok, err, eof := scanner.Next()
	if eof || err != nil {
		// lexmachine reports machines.UnconsumedInput rather than
		// searching ahead for a later match, so err here means "no match
		// right at this position", exactly what a PEG terminal needs.
		return nil
	}
	m, ok := tok.(*machines.Match)
	if !ok {
		return nil
	}
	consumedRunes := len([]rune(string(m.Bytes)))
	if consumedRunes == 0 {
		return table.AddTerminalMatch(key, 0, updated)
	}
	return table.AddTerminalMatch(key, consumedRunes, updated)
}
