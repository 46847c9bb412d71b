// Package catalog contains the pure ordering logic for the global channel
// catalog. All inputs are pre-fetched by the caller - no I/O here.
package catalog

import (
	"sort"

	"github.com/example/stagepatch/internal/core/ranking"
)

// Category is a channel grouping with an admin-assigned sort order.
type Category struct {
	ID        string
	Name      string
	SortOrder int
}

// Channel is a catalog entry. CategoryID may be empty (uncategorized).
type Channel struct {
	ID           string
	Name         string
	CategoryID   string
	DefaultOrder int
}

// categoryKey is the composite sort key for one category.
type categoryKey struct {
	weight    int
	sortOrder int
	name      string
}

func (k categoryKey) less(o categoryKey) bool {
	if k.weight != o.weight {
		return k.weight < o.weight
	}
	if k.sortOrder != o.sortOrder {
		return k.sortOrder < o.sortOrder
	}
	return k.name < o.name
}

// OrderCategories returns the categories sorted by ranking weight, then
// admin sort order, then name.
func OrderCategories(categories []Category) []Category {
	ordered := make([]Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return keyFor(ordered[i]).less(keyFor(ordered[j]))
	})
	return ordered
}

func keyFor(c Category) categoryKey {
	return categoryKey{weight: ranking.Rank(c.Name), sortOrder: c.SortOrder, name: c.Name}
}

// Order sorts channels by their category's rank position, then by the
// channel's default order. The sort is stable: channels with colliding keys
// keep their input relative order. Uncategorized channels sort last.
func Order(channels []Channel, categories []Category) []Channel {
	position := make(map[string]int, len(categories))
	for i, c := range OrderCategories(categories) {
		position[c.ID] = i
	}

	// Uncategorized (or dangling category ids) land after every real category.
	last := len(categories)
	pos := func(ch Channel) int {
		if p, ok := position[ch.CategoryID]; ok && ch.CategoryID != "" {
			return p
		}
		return last
	}

	ordered := make([]Channel, len(channels))
	copy(ordered, channels)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := pos(ordered[i]), pos(ordered[j])
		if pi != pj {
			return pi < pj
		}
		return ordered[i].DefaultOrder < ordered[j].DefaultOrder
	})
	return ordered
}

// PositionIndex maps each channel id to its index in the ordered catalog.
// Used as the fallback ordering for selections loaded without explicit order.
func PositionIndex(channels []Channel, categories []Category) map[string]int {
	index := make(map[string]int, len(channels))
	for i, ch := range Order(channels, categories) {
		index[ch.ID] = i
	}
	return index
}
