package patch

// State classifies how far an event's patch has been built up.
type State string

const (
	// StateEmpty: no patch channels exist yet.
	StateEmpty State = "empty"
	// StateHasPatch: at least one patch channel, no band uses any of them.
	StateHasPatch State = "has_patch"
	// StatePopulated: at least one band uses at least one patch channel.
	StatePopulated State = "populated"
)

// EventState derives the patch-building state from the number of patch
// channels and the number of in-use usage rows. The flow is re-enterable:
// pruning every patch channel returns an event to StateEmpty.
func EventState(patchChannels, usedRows int) State {
	switch {
	case patchChannels == 0:
		return StateEmpty
	case usedRows == 0:
		return StateHasPatch
	default:
		return StatePopulated
	}
}
