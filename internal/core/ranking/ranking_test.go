package ranking

import "testing"

func TestRank_ConventionalOrder(t *testing.T) {
	names := []string{"Drums", "Percussion", "Bass", "Guitars", "Keys", "Misc", "Vocals"}

	prev := -1
	for _, name := range names {
		w := Rank(name)
		if w <= prev {
			t.Errorf("Rank(%q) = %d, want greater than %d", name, w, prev)
		}
		prev = w
	}
}

func TestRank_CaseInsensitive(t *testing.T) {
	if Rank("DRUMS") != Rank("drums") {
		t.Error("expected case-insensitive matching")
	}
	if Rank("Lead VOX") != Rank("lead vox") {
		t.Error("expected case-insensitive matching for vox")
	}
}

func TestRank_SubstringMatch(t *testing.T) {
	if Rank("Drum Kit") != Rank("Drums") {
		t.Error("expected 'Drum Kit' to rank with drums")
	}
	if Rank("Backing Vocals") != Rank("Vocals") {
		t.Error("expected 'Backing Vocals' to rank with vocals")
	}
}

func TestRank_UnknownGetsSentinel(t *testing.T) {
	w := Rank("Pyrotechnics")
	if w != WeightUnranked {
		t.Errorf("Rank(unknown) = %d, want %d", w, WeightUnranked)
	}
	if w <= Rank("Vocals") {
		t.Error("unrecognized categories must sort after all recognized ones")
	}
}

func TestRank_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Rank("Percussion") != 1 {
			t.Fatal("Rank must be deterministic")
		}
	}
}
