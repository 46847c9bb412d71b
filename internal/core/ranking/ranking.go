// Package ranking assigns deterministic sort weights to category names.
// The weight table encodes the conventional front-of-house patch order:
// drums first, vocals last, everything unrecognized after that.
package ranking

import "strings"

// WeightUnranked is the sentinel weight for categories matching no keyword
// set. It exceeds every table weight so unrecognized categories sort last.
const WeightUnranked = 1000

// rankTable is checked in order; the first keyword hit wins.
var rankTable = []struct {
	keywords []string
	weight   int
}{
	{[]string{"drum", "kit"}, 0},
	{[]string{"perc"}, 1},
	{[]string{"bass"}, 2},
	{[]string{"guitar", "gtr", "git"}, 3},
	{[]string{"key", "piano", "synth"}, 4},
	{[]string{"misc", "other", "playback", "dj"}, 5},
	{[]string{"vocal", "vox", "voc", "gesang"}, 6},
}

// Rank returns the sort weight for a category name. Lower sorts earlier.
// Matching is case-insensitive substring containment.
func Rank(categoryName string) int {
	name := strings.ToLower(categoryName)
	for _, entry := range rankTable {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.weight
			}
		}
	}
	return WeightUnranked
}
