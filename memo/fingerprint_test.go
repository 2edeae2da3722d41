package memo

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFingerprintDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.memo")
	defer teardown()
	//
	c := &fakeClause{id: 7}
	build := func() *MemoTable {
		table := NewMemoTable([]rune("aa"))
		updated := NewUpdatedSet()
		table.AddTerminalMatch(MemoKey{Clause: c, StartPos: 0}, 1, updated)
		table.AddTerminalMatch(MemoKey{Clause: c, StartPos: 1}, 1, updated)
		return table
	}
	t1 := build()
	h1, err := Fingerprint(t1, []ClauseRef{c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t2 := build()
	h2, err := Fingerprint(t2, []ClauseRef{c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected identical fingerprints for identical tables, got %q vs %q", h1, h2)
	}
}

func TestFingerprintDiffersOnDifferentContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pika.memo")
	defer teardown()
	//
	c := &fakeClause{id: 8}
	updated := NewUpdatedSet()

	t1 := NewMemoTable([]rune("aa"))
	t1.AddTerminalMatch(MemoKey{Clause: c, StartPos: 0}, 1, updated)
	h1, _ := Fingerprint(t1, []ClauseRef{c})

	t2 := NewMemoTable([]rune("aa"))
	t2.AddTerminalMatch(MemoKey{Clause: c, StartPos: 0}, 2, updated)
	h2, _ := Fingerprint(t2, []ClauseRef{c})

	if h1 == h2 {
		t.Fatalf("expected different fingerprints for different match lengths")
	}
}
