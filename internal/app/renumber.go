package app

import (
	"context"
	"fmt"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// renumberOffset keeps phase-one temporary numbers clear of every slot a
// real patch could occupy.
const renumberOffset = 1000

// renumberPatch assigns numbers 1..N to the given patch channels in order.
// The store enforces UNIQUE(event_id, channel_number) per statement, so a
// direct assignment collides whenever the target number is still held by
// another row. Two phases avoid that: every row first parks on an offset
// number, then takes its final one.
func renumberPatch(ctx context.Context, repo secondary.PatchChannelRepository, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if err := repo.UpdateNumber(ctx, id, i+1+renumberOffset); err != nil {
			return fmt.Errorf("renumber phase 1 (%s): %w", id, err)
		}
	}
	for i, id := range orderedIDs {
		if err := repo.UpdateNumber(ctx, id, i+1); err != nil {
			return fmt.Errorf("renumber phase 2 (%s): %w", id, err)
		}
	}
	return nil
}
