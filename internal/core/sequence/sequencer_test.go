package sequence

import (
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

// catalogPos mirrors a catalog ordered Kick, Snare, Bass, Vox.
var catalogPos = map[string]int{
	"CH-KICK":  0,
	"CH-SNARE": 1,
	"CH-BASS":  2,
	"CH-VOX":   3,
}

func TestToggle_AddsAtEnd(t *testing.T) {
	s := New(catalogPos)
	s.Toggle("CH-VOX")
	s.Toggle("CH-KICK")

	got := s.Resolve()
	want := []string{"CH-VOX", "CH-KICK"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestToggle_RemoveThenReaddLandsLast(t *testing.T) {
	s := New(catalogPos)
	s.Toggle("CH-KICK")
	s.Toggle("CH-SNARE")
	s.Toggle("CH-VOX")

	s.Toggle("CH-KICK") // remove
	s.Toggle("CH-KICK") // re-add

	got := s.Resolve()
	want := []string{"CH-SNARE", "CH-VOX", "CH-KICK"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reselected channel must go last, got %v", got)
	}
}

func TestLoad_ResolvesInCatalogOrderAfterExplicit(t *testing.T) {
	s := New(catalogPos)
	s.Toggle("CH-VOX") // explicit, first
	s.Load([]string{"CH-BASS", "CH-KICK"})

	got := s.Resolve()
	want := []string{"CH-VOX", "CH-KICK", "CH-BASS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestMove_SwapsNeighbors(t *testing.T) {
	s := New(catalogPos)
	s.Load([]string{"CH-KICK", "CH-SNARE", "CH-BASS"})

	s.Move("CH-BASS", Up)
	got := s.Resolve()
	want := []string{"CH-KICK", "CH-BASS", "CH-SNARE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after Move up: %v, want %v", got, want)
	}

	s.Move("CH-KICK", Down)
	got = s.Resolve()
	want = []string{"CH-BASS", "CH-KICK", "CH-SNARE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after Move down: %v, want %v", got, want)
	}
}

func TestMove_NoOpAtBoundary(t *testing.T) {
	s := New(catalogPos)
	s.Load([]string{"CH-KICK", "CH-SNARE"})

	s.Move("CH-KICK", Up)
	s.Move("CH-SNARE", Down)

	got := s.Resolve()
	want := []string{"CH-KICK", "CH-SNARE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("boundary moves must be no-ops, got %v", got)
	}
}

func TestReorder_DragToTargetSlot(t *testing.T) {
	s := New(catalogPos)
	s.Load([]string{"CH-KICK", "CH-SNARE", "CH-BASS", "CH-VOX"})

	s.Reorder("CH-BASS", "CH-KICK")
	got := s.Resolve()
	want := []string{"CH-BASS", "CH-KICK", "CH-SNARE", "CH-VOX"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after drag up: %v, want %v", got, want)
	}
}

func TestReorder_UnknownIDsNoOp(t *testing.T) {
	s := New(catalogPos)
	s.Load([]string{"CH-KICK", "CH-SNARE"})

	s.Reorder("CH-KICK", "CH-KICK")
	s.Reorder("CH-KICK", "CH-MISSING")
	s.Reorder("CH-MISSING", "CH-KICK")
	s.Move("CH-MISSING", Up)

	got := s.Resolve()
	want := []string{"CH-KICK", "CH-SNARE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unknown-id operations must be no-ops, got %v", got)
	}
}

// Resolve must return each selected id exactly once, whatever the history.
func TestResolve_PermutationInvariant(t *testing.T) {
	s := New(catalogPos)
	s.Toggle("CH-KICK")
	s.Toggle("CH-SNARE")
	s.Toggle("CH-BASS")
	s.Move("CH-BASS", Up)
	s.Reorder("CH-KICK", "CH-SNARE")
	s.Toggle("CH-SNARE")
	s.Toggle("CH-VOX")
	s.Toggle("CH-SNARE")

	got := s.Resolve()
	if len(got) != s.Len() {
		t.Fatalf("Resolve returned %d ids, %d selected", len(got), s.Len())
	}
	seen := make(map[string]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate id %s in %v", id, got)
		}
		seen[id] = true
		if !s.Selected(id) {
			t.Fatalf("unselected id %s in %v", id, got)
		}
	}
}

func TestReorderIDs(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E"}

	got := ReorderIDs(ids, "C", "A")
	want := []string{"C", "A", "B", "D", "E"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("drag up: %v, want %v", got, want)
	}

	got = ReorderIDs(ids, "A", "C")
	want = []string{"B", "C", "A", "D", "E"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("drag down: %v, want %v", got, want)
	}

	if got := ReorderIDs(ids, "A", "X"); !reflect.DeepEqual(got, ids) {
		t.Errorf("missing target must be a no-op, got %v", got)
	}
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one run after burst, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no runs after Stop, got %d", got)
	}
}

func TestDebouncer_FlushRunsPendingNow(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(time.Minute)

	d.Trigger(func() { fired.Add(1) })
	d.Flush(func() { fired.Add(1) })

	if got := fired.Load(); got != 1 {
		t.Errorf("expected one immediate run on Flush, got %d", got)
	}

	// Nothing pending: Flush must not run.
	d.Flush(func() { fired.Add(1) })
	if got := fired.Load(); got != 1 {
		t.Errorf("Flush with nothing pending must be a no-op, got %d", got)
	}
}
