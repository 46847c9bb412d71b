// Package patch contains the pure business logic for the per-event patch:
// validation guards, the reconciliation planner, and the event state
// classification. All inputs are pre-fetched by the caller - no I/O here.
package patch

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SaveBandContext provides context for band save guards.
type SaveBandContext struct {
	Name           string
	SelectionCount int
	BandID         string // empty for create
	BandExists     bool   // only checked for updates
	EventExists    bool
}

// CanSaveBand evaluates whether a band save may proceed.
// Rules:
// - Event must exist
// - Band must exist when updating
// - Name must be non-empty
// - At least one channel must be selected
func CanSaveBand(ctx SaveBandContext) GuardResult {
	if !ctx.EventExists {
		return GuardResult{Allowed: false, Reason: "event not found"}
	}
	if ctx.BandID != "" && !ctx.BandExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("band %s not found", ctx.BandID)}
	}
	if ctx.Name == "" {
		return GuardResult{Allowed: false, Reason: "band name is required"}
	}
	if ctx.SelectionCount == 0 {
		return GuardResult{Allowed: false, Reason: "select at least one channel"}
	}
	return GuardResult{Allowed: true}
}
