package clause

import "github.com/pikaparser/pika/memo"

// refClause is a placeholder node for building self-referential grammar
// graphs: constructed empty, it stands in wherever a rule needs to refer to
// itself (directly or transitively) before the referring clause exists as
// a Go value, then gets its single subclause filled in later via the
// resolve closure Ref returns. This is how left-recursive rules like
// `E <- E '+' digit / digit` get built against a Go API that otherwise
// requires subclauses to exist before their parent does.
type refClause struct {
	header
}

// Ref returns a placeholder clause and a resolve function. Build the
// self-referential clause graph using the placeholder wherever the cycle
// needs to close, then call resolve with the completed clause once it
// exists, before Freeze. Calling Match on an unresolved Ref panics.
func Ref() (Clause, func(Clause)) {
	r := &refClause{header: newHeader(KindRef)}
	resolve := func(target Clause) {
		r.sub = []Clause{target}
	}
	return r, resolve
}

func (c *refClause) seedSubClauses() []Clause { return c.defaultSeedSubClauses() }

func (c *refClause) String() string {
	if len(c.sub) == 0 {
		return "<unresolved ref>"
	}
	return c.sub[0].String()
}

func (c *refClause) Match(dir Direction, table *memo.MemoTable, key memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match {
	if len(c.sub) == 0 {
		panic("clause: Ref used before being resolved")
	}
	target := c.sub[0]
	var m *memo.Match
	if dir == TopDown {
		m = target.Match(dir, table, memo.MemoKey{Clause: target, StartPos: key.StartPos}, input, updated)
	} else {
		m = table.LookUpBestMatch(memo.MemoKey{Clause: target, StartPos: key.StartPos}, key, updated)
	}
	if m == nil {
		return nil
	}
	return table.AddNonTerminalMatch(key, 0, []*memo.Match{m}, updated)
}
