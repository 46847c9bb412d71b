package patch

// PatchChannelRef is an existing event patch channel for planning purposes.
type PatchChannelRef struct {
	ID        string
	ChannelID string
	Number    int
}

// UsageRef is an existing usage row for planning purposes. Rows with
// IsUsed=false are tolerated on read and treated as absent (the interactive
// toggle path writes them between reconciles).
type UsageRef struct {
	BandID         string
	PatchChannelID string
	IsUsed         bool
	Label          string
}

// ReconcileInput contains everything the planner needs, pre-fetched.
type ReconcileInput struct {
	// BandID is empty when the save creates a new band.
	BandID string
	// SelectedChannelIDs is the band's desired selection in resolved order.
	SelectedChannelIDs []string
	// ChannelNames maps channel id to catalog name (label default).
	ChannelNames map[string]string
	// PatchChannels is the event's current shared patch, ordered by number.
	PatchChannels []PatchChannelRef
	// Usage holds all usage rows across the event's bands.
	Usage []UsageRef
}

// NewPatchChannel is a patch channel the reconciler must create, appended
// after the current maximum number so existing numbers stay undisturbed.
type NewPatchChannel struct {
	ChannelID string
	Number    int
}

// UsageRow is a usage row the reconciler must write for the saved band.
type UsageRow struct {
	ChannelID string
	Label     string
}

// ReconcilePlan is the diff between the band's desired selection and the
// event's shared patch. The caller executes it in order: creates, usage
// replacement, pruning, renumbering.
type ReconcilePlan struct {
	Creates []NewPatchChannel
	// Usage has one row per selected channel, in selection order.
	Usage []UsageRow
	// PruneIDs are patch channels no band will use after this save.
	PruneIDs []string
	// SurvivorIDs are the remaining pre-existing patch channels in number
	// order. The final renumbering order is SurvivorIDs followed by the
	// ids of the created Creates rows, in order.
	SurvivorIDs []string
}

// BuildReconcilePlan computes the reconciliation diff. Pure function.
func BuildReconcilePlan(in ReconcileInput) ReconcilePlan {
	var plan ReconcilePlan

	byChannel := make(map[string]PatchChannelRef, len(in.PatchChannels))
	maxNumber := 0
	for _, pc := range in.PatchChannels {
		byChannel[pc.ChannelID] = pc
		if pc.Number > maxNumber {
			maxNumber = pc.Number
		}
	}

	selected := make(map[string]bool, len(in.SelectedChannelIDs))
	for _, chID := range in.SelectedChannelIDs {
		selected[chID] = true
	}

	// Coverage: every selected channel missing from the shared patch gets a
	// new patch channel appended after the current maximum number.
	next := maxNumber
	for _, chID := range in.SelectedChannelIDs {
		if _, ok := byChannel[chID]; ok {
			continue
		}
		next++
		plan.Creates = append(plan.Creates, NewPatchChannel{ChannelID: chID, Number: next})
	}

	// Usage replacement, preserving this band's prior labels for channels
	// that stay selected.
	priorLabels := make(map[string]string)
	if in.BandID != "" {
		for _, u := range in.Usage {
			if u.BandID != in.BandID || u.Label == "" {
				continue
			}
			if pc, ok := patchChannelByID(in.PatchChannels, u.PatchChannelID); ok {
				priorLabels[pc.ChannelID] = u.Label
			}
		}
	}
	for _, chID := range in.SelectedChannelIDs {
		label := priorLabels[chID]
		if label == "" {
			label = in.ChannelNames[chID]
		}
		plan.Usage = append(plan.Usage, UsageRow{ChannelID: chID, Label: label})
	}

	// Pruning: a pre-existing patch channel survives if this band selects
	// its channel or any other band still uses it.
	usedByOthers := make(map[string]bool)
	for _, u := range in.Usage {
		if u.IsUsed && u.BandID != in.BandID {
			usedByOthers[u.PatchChannelID] = true
		}
	}
	for _, pc := range in.PatchChannels {
		if selected[pc.ChannelID] || usedByOthers[pc.ID] {
			plan.SurvivorIDs = append(plan.SurvivorIDs, pc.ID)
		} else {
			plan.PruneIDs = append(plan.PruneIDs, pc.ID)
		}
	}

	return plan
}

func patchChannelByID(pcs []PatchChannelRef, id string) (PatchChannelRef, bool) {
	for _, pc := range pcs {
		if pc.ID == id {
			return pc, true
		}
	}
	return PatchChannelRef{}, false
}
