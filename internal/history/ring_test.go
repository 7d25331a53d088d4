package history_test

import (
	"fmt"
	"testing"

	"github.com/tomschlintz/uP/internal/history"
)

func TestRingRecallReverseOrder(t *testing.T) {
	r := history.NewRing(16)
	lines := []string{"first", "second", "third"}
	for _, l := range lines {
		r.Push(l)
	}

	for i := len(lines) - 1; i >= 0; i-- {
		got, ok := r.Previous()
		if !ok {
			t.Fatalf("Previous() failed at entry %d", i)
		}
		if got != lines[i] {
			t.Errorf("Previous() = %q, want %q", got, lines[i])
		}
	}

	if _, ok := r.Previous(); ok {
		t.Error("expected no more history after all entries recalled")
	}
}

func TestRingEmpty(t *testing.T) {
	r := history.NewRing(8)
	if _, ok := r.Previous(); ok {
		t.Error("Previous() on empty ring should fail")
	}
	if _, ok := r.Next(); ok {
		t.Error("Next() on empty ring should fail")
	}
}

func TestRingIgnoresEmptyLines(t *testing.T) {
	r := history.NewRing(8)
	r.Push("")
	if r.Len() != 0 {
		t.Errorf("Len() = %d after empty push, want 0", r.Len())
	}
	if _, ok := r.Previous(); ok {
		t.Error("empty line should not be recallable")
	}
}

func TestRingNextRequiresBrowsing(t *testing.T) {
	r := history.NewRing(8)
	r.Push("one")
	if _, ok := r.Next(); ok {
		t.Error("Next() without a recall in progress should fail")
	}
}

func TestRingNextStopsAtMostRecent(t *testing.T) {
	r := history.NewRing(8)
	r.Push("one")
	r.Push("two")

	if got, _ := r.Previous(); got != "two" {
		t.Fatalf("Previous() = %q, want %q", got, "two")
	}
	if got, _ := r.Previous(); got != "one" {
		t.Fatalf("Previous() = %q, want %q", got, "one")
	}
	if got, ok := r.Next(); !ok || got != "two" {
		t.Fatalf("Next() = (%q, %v), want (%q, true)", got, ok, "two")
	}
	// The slot ahead is the write slot: currently editing, not stored.
	if _, ok := r.Next(); ok {
		t.Error("Next() past the most recent entry should fail")
	}
}

func TestRingWraparound(t *testing.T) {
	const size = 4
	r := history.NewRing(size)
	for i := 0; i < size+2; i++ {
		r.Push(fmt.Sprintf("cmd%d", i))
	}

	// The oldest two entries were overwritten; recall returns the most
	// recent four in reverse order, then stops.
	for i := size + 1; i >= 2; i-- {
		got, ok := r.Previous()
		want := fmt.Sprintf("cmd%d", i)
		if !ok || got != want {
			t.Fatalf("Previous() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
	if _, ok := r.Previous(); ok {
		t.Error("recall should stop after one full pass over the ring")
	}
}

func TestRingPushResetsRecall(t *testing.T) {
	r := history.NewRing(8)
	r.Push("one")
	r.Push("two")
	if _, ok := r.Previous(); !ok {
		t.Fatal("Previous() failed")
	}
	r.Push("three")
	if r.Browsing() {
		t.Error("push should end the recall in progress")
	}
	if got, _ := r.Previous(); got != "three" {
		t.Errorf("Previous() after push = %q, want %q", got, "three")
	}
}

func TestRingResetRecall(t *testing.T) {
	r := history.NewRing(8)
	r.Push("one")
	r.Previous()
	r.ResetRecall()
	if r.Browsing() {
		t.Error("Browsing() = true after ResetRecall")
	}
	if got, _ := r.Previous(); got != "one" {
		t.Errorf("Previous() after reset = %q, want %q", got, "one")
	}
}
