package clause

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/pikaparser/pika/memo"
)

// Kind discriminates the clause variants. Go has no sealed class hierarchy,
// so dispatch is done through the Clause interface's Match/String/etc
// methods rather than a switch on Kind; Kind itself exists for diagnostics
// and for the few places (terminal/lookahead classification at Freeze, the
// canMatchZeroChars pass, PlaceholderEligible) that legitimately need to
// branch on "what kind of clause is this".
type Kind int

const (
	KindLiteral Kind = iota
	KindCharSet
	KindCharRange
	KindAnyChar
	KindRegex
	KindSequence
	KindOrderedChoice
	KindLongest
	KindOptional
	KindOneOrMore
	KindZeroOrMore
	KindNot
	KindAnd
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindCharSet:
		return "CharSet"
	case KindCharRange:
		return "CharRange"
	case KindAnyChar:
		return "AnyChar"
	case KindRegex:
		return "Regex"
	case KindSequence:
		return "Sequence"
	case KindOrderedChoice:
		return "OrderedChoice"
	case KindLongest:
		return "Longest"
	case KindOptional:
		return "Optional"
	case KindOneOrMore:
		return "OneOrMore"
	case KindZeroOrMore:
		return "ZeroOrMore"
	case KindNot:
		return "Not"
	case KindAnd:
		return "And"
	case KindRef:
		return "Ref"
	default:
		return "?"
	}
}

// IsTerminal reports whether k is one of the leaf (subclause-free) variants.
func (k Kind) IsTerminal() bool {
	switch k {
	case KindLiteral, KindCharSet, KindCharRange, KindAnyChar, KindRegex:
		return true
	default:
		return false
	}
}

// IsLookahead reports whether k is a zero-width lookahead variant (Not/And).
// The driver only touches these at seed time, to guarantee each has a
// MemoEntry; their real verdict comes from ordinary seed-parent propagation
// once their child's own status is known. See driver.parseDriver.seed's doc
// comment.
func (k Kind) IsLookahead() bool {
	return k == KindNot || k == KindAnd
}

// Rule names a toplevel binding `name <- clause`, with an optional AST
// label. The core treats the label as opaque data (AST construction is out
// of scope), carried only so that a downstream AST builder has somewhere to
// read it from.
type Rule struct {
	Name     string
	ASTLabel string
}

// Clause is a node in the grammar graph. Concrete variants embed *header
// and provide Match, String and (for OrderedChoice/Longest) an overridden
// seed-subclause rule.
type Clause interface {
	memo.ClauseRef

	Kind() Kind
	SubClauses() []Clause
	Rules() []*Rule
	String() string

	// seedSubClauses returns the subclauses whose memo-entry updates
	// should re-trigger evaluation of this clause (the "seed-subclause
	// rule"). Unexported: only grammar-construction code needs it, to
	// build the inverse seedParentClauses edges.
	seedSubClauses() []Clause

	// addSeedParent records parent as a clause to re-evaluate when this
	// clause's memo entry changes. Called only during grammar Freeze.
	addSeedParent(parent Clause)

	// SeedParentClauses returns the (frozen) set of parents to notify.
	SeedParentClauses() []Clause

	// setCanMatchZeroChars is called by the grammar's fixpoint pass.
	setCanMatchZeroChars(b bool)

	registerRule(r *Rule)

	// Match runs this clause's match rule at memoKey.StartPos. In
	// MatchBottomUp, subclause results are obtained exclusively through
	// table.LookUpBestMatch — this method must not call Match on any
	// subclause. In MatchTopDown it recurses directly into subclause
	// Match calls and never reads results from table; successful matches
	// are still recorded in table through AddTerminalMatch and
	// AddNonTerminalMatch, the same as in BottomUp.
	Match(direction Direction, table *memo.MemoTable, memoKey memo.MemoKey, input []rune, updated *memo.UpdatedSet) *memo.Match
}

// Direction selects the match protocol a Clause.Match call should use.
type Direction int

const (
	// BottomUp is the canonical, memoized evaluation mode driven by
	// ParseDriver's fixpoint.
	BottomUp Direction = iota
	// TopDown is a recursive-descent fallback used for inspection and for
	// extracting/validating a single match without running the full
	// fixpoint. It never reads subclause results from the table, but the
	// matches it finds are still recorded there.
	TopDown
)

func (d Direction) String() string {
	if d == TopDown {
		return "TOP_DOWN"
	}
	return "BOTTOM_UP"
}

var nextClauseID uint64

func allocClauseID() uint64 {
	return atomic.AddUint64(&nextClauseID, 1)
}

// header is the shared state every concrete clause variant embeds. Go has
// no class inheritance; each variant's own Match/String methods substitute
// for what would otherwise be virtual overrides of a common base class.
type header struct {
	id                uint64
	kind              Kind
	sub               []Clause
	subLabels         []string
	rules             []*Rule
	canMatchZeroChars bool
	seedParents       *treeset.Set // of Clause, ordered by OrderID, dedup by identity
}

// seedParentComparator orders clauses by OrderID, the same int-cast pattern
// lr/tables.go uses for its state-set comparator (`utils.IntComparator(int(c1.ID), int(c2.ID))`).
func seedParentComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(Clause).OrderID()), int(b.(Clause).OrderID()))
}

func newHeader(kind Kind, sub ...Clause) header {
	return header{id: allocClauseID(), kind: kind, sub: sub}
}

func (h *header) OrderID() uint64             { return h.id }
func (h *header) Kind() Kind                  { return h.kind }
func (h *header) SubClauses() []Clause        { return h.sub }
func (h *header) Rules() []*Rule              { return h.rules }
func (h *header) CanMatchZeroChars() bool     { return h.canMatchZeroChars }
func (h *header) setCanMatchZeroChars(b bool) { h.canMatchZeroChars = b }
func (h *header) NumSubClauses() int          { return len(h.sub) }

func (h *header) SeedParentClauses() []Clause {
	if h.seedParents == nil {
		return nil
	}
	values := h.seedParents.Values()
	parents := make([]Clause, len(values))
	for i, v := range values {
		parents[i] = v.(Clause)
	}
	return parents
}

func (h *header) SubClauseCanMatchZeroChars(i int) bool {
	return h.sub[i].CanMatchZeroChars()
}

// PlaceholderEligible excludes Not/And: their zero-width success is
// conditional on a subclause result, so an entry with no best match yet
// must read as "not yet known" rather than "confirmed success". Every
// other clause kind's zero-width match (if canMatchZeroChars) is
// unconditional, so the optimistic placeholder is safe for them.
func (h *header) PlaceholderEligible() bool {
	return h.kind != KindNot && h.kind != KindAnd
}

func (h *header) registerRule(r *Rule) {
	h.rules = append(h.rules, r)
}

func (h *header) addSeedParent(parent Clause) {
	if h.seedParents == nil {
		h.seedParents = treeset.NewWith(seedParentComparator)
	}
	h.seedParents.Add(parent)
}

// defaultSeedSubClauses implements the general seed-subclause rule: the
// single first subclause, or none for a (sub-clause-free) terminal.
// OrderedChoice and Longest override this.
func (h *header) defaultSeedSubClauses() []Clause {
	if len(h.sub) == 0 {
		return nil
	}
	return h.sub[:1]
}

func (h *header) ruleNamesString() string {
	if len(h.rules) == 0 {
		return ""
	}
	names := make([]string, len(h.rules))
	for i, r := range h.rules {
		names[i] = r.Name
	}
	return strings.Join(names, ", ") + " <- "
}

// astLabelsString renders each rule's non-empty ASTLabel as an "astLabel:"
// prefix ahead of the clause body, the same layout Clause.java:100-109
// builds in its toStringWithRuleNames loop (labels comma-separated, each
// keeping its own trailing colon).
func (h *header) astLabelsString() string {
	var labels []string
	for _, r := range h.rules {
		if r.ASTLabel != "" {
			labels = append(labels, r.ASTLabel+":")
		}
	}
	return strings.Join(labels, ", ")
}

// memoKeyString is a small debugging helper shared by every variant's
// String method through fmt.Stringer-friendly formatting of its header.
func (h *header) memoKeyString(body string) string {
	if len(h.rules) == 0 {
		return body
	}
	return fmt.Sprintf("(%s%s%s)", h.ruleNamesString(), h.astLabelsString(), body)
}
