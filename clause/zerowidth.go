package clause

// computeCanMatchZeroChars runs a fixpoint over the clause graph: terminals
// report their own fixed answer; Optional/Not/And/ZeroOrMore are always
// true; Sequence is true iff every child is; OrderedChoice/Longest are true
// iff any child is; OneOrMore inherits its child's answer. Clauses may form
// cycles (left recursion), so this iterates to a fixpoint rather than doing
// a single topological pass.
func computeCanMatchZeroChars(all []Clause) {
	for _, c := range all {
		c.setCanMatchZeroChars(staticZeroCharsAnswer(c))
	}
	for changed := true; changed; {
		changed = false
		for _, c := range all {
			want := zeroCharsFor(c)
			if want != c.CanMatchZeroChars() {
				c.setCanMatchZeroChars(want)
				changed = true
			}
		}
	}
}

// staticZeroCharsAnswer gives the always-true combinators their fixed answer
// and every other clause false before the fixpoint loop runs; the loop then
// settles terminals (an empty Literal, a zero-width Regex) and the
// subclause-dependent combinators.
func staticZeroCharsAnswer(c Clause) bool {
	switch c.Kind() {
	case KindOptional, KindNot, KindAnd, KindZeroOrMore:
		return true
	default:
		return false
	}
}

func zeroCharsFor(c Clause) bool {
	switch c.Kind() {
	case KindOptional, KindNot, KindAnd, KindZeroOrMore:
		return true
	case KindLiteral:
		return len(c.(*literalClause).text) == 0
	case KindCharSet, KindCharRange, KindAnyChar:
		return false
	case KindRegex:
		return c.(*regexClause).zeroWidth
	case KindSequence:
		for _, sub := range c.SubClauses() {
			if !sub.CanMatchZeroChars() {
				return false
			}
		}
		return true
	case KindOrderedChoice, KindLongest:
		for _, sub := range c.SubClauses() {
			if sub.CanMatchZeroChars() {
				return true
			}
		}
		return false
	case KindOneOrMore:
		return c.SubClauses()[0].CanMatchZeroChars()
	case KindRef:
		if len(c.SubClauses()) == 0 {
			return false
		}
		return c.SubClauseCanMatchZeroChars(0)
	default:
		return c.CanMatchZeroChars()
	}
}
