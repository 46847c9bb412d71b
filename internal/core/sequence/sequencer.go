// Package sequence maintains the user's ordered channel selection for one
// band, independent from catalog order. It is a UI-facing sequencer:
// operations on unknown ids are no-ops, never errors.
package sequence

import "sort"

// Direction for single-slot moves.
type Direction int

const (
	Up Direction = iota
	Down
)

// Sequencer tracks an ordered subset of channel ids. Ids selected without an
// explicit position (e.g. loaded from storage) fall back to catalog position
// and resolve after all explicitly ordered ids.
type Sequencer struct {
	selected   map[string]bool
	explicit   []string       // ids with an explicit position, in order
	catalogPos map[string]int // id -> catalog index, resolve fallback
}

// New creates a sequencer with the given catalog position fallback.
func New(catalogPos map[string]int) *Sequencer {
	pos := make(map[string]int, len(catalogPos))
	for id, p := range catalogPos {
		pos[id] = p
	}
	return &Sequencer{
		selected:   make(map[string]bool),
		catalogPos: pos,
	}
}

// Load marks ids as selected without assigning explicit positions. They
// resolve in catalog order until reordered.
func (s *Sequencer) Load(ids []string) {
	for _, id := range ids {
		s.selected[id] = true
	}
}

// Selected reports whether id is currently selected.
func (s *Sequencer) Selected(id string) bool {
	return s.selected[id]
}

// Len returns the number of selected ids.
func (s *Sequencer) Len() int {
	return len(s.selected)
}

// Toggle adds id at the end of the order if absent, removes it if present.
// A removed-then-readded id lands at the end, not its prior slot.
func (s *Sequencer) Toggle(id string) {
	if s.selected[id] {
		delete(s.selected, id)
		s.explicit = remove(s.explicit, id)
		return
	}
	s.selected[id] = true
	s.explicit = append(s.explicit, id)
}

// Move swaps id with its immediate neighbor in the current resolved order.
// No-op at either boundary or for unknown ids.
func (s *Sequencer) Move(id string, dir Direction) {
	if !s.selected[id] {
		return
	}
	s.normalize()
	i := index(s.explicit, id)
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(s.explicit) {
		return
	}
	s.explicit[i], s.explicit[j] = s.explicit[j], s.explicit[i]
}

// Reorder removes draggedID from its slot and reinserts it at targetID's
// former index. No-op if either id is unselected or they are identical.
func (s *Sequencer) Reorder(draggedID, targetID string) {
	if draggedID == targetID || !s.selected[draggedID] || !s.selected[targetID] {
		return
	}
	s.normalize()
	s.explicit = ReorderIDs(s.explicit, draggedID, targetID)
}

// Resolve returns the selected ids in their effective order: explicitly
// positioned ids first, then the rest by catalog position.
func (s *Sequencer) Resolve() []string {
	out := make([]string, 0, len(s.selected))
	out = append(out, s.explicit...)

	var implicit []string
	for id := range s.selected {
		if index(s.explicit, id) < 0 {
			implicit = append(implicit, id)
		}
	}
	sort.Slice(implicit, func(i, j int) bool {
		pi, pj := s.catalogPos[implicit[i]], s.catalogPos[implicit[j]]
		if pi != pj {
			return pi < pj
		}
		return implicit[i] < implicit[j]
	})
	return append(out, implicit...)
}

// normalize materializes implicit positions so moves operate on the full
// current order.
func (s *Sequencer) normalize() {
	s.explicit = s.Resolve()
}

// ReorderIDs returns ids with draggedID reinserted at targetID's index.
// Pure helper, also used for drag-reordering persisted patch channels.
func ReorderIDs(ids []string, draggedID, targetID string) []string {
	from := index(ids, draggedID)
	to := index(ids, targetID)
	if from < 0 || to < 0 || from == to {
		return ids
	}
	out := make([]string, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	to = index(out, targetID)
	if from < index(ids, targetID) {
		// Dragging downward: land after the removal-shifted target slot,
		// which is targetID's original index.
		to++
	}
	out = append(out[:to], append([]string{draggedID}, out[to:]...)...)
	return out
}

func index(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func remove(ids []string, id string) []string {
	i := index(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}
