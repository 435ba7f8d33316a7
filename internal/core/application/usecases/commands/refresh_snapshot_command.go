package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRefreshSnapshotCommandIsNotConstructed = errors.New(
	"RefreshSnapshotCommand must be created via NewRefreshSnapshotCommand constructor",
)

// RefreshSnapshotCommand requests a full resynchronization of the working set
// from the order store. It is the safety net under the event transport:
// whatever events were missed, the next snapshot converges local state on
// the store.
//
// Example:
//
//	cmd := NewRefreshSnapshotCommand()
//	handler := NewRefreshSnapshotCommandHandler(
//	    workingSet, orderStore, policy, station, viewer, logger,
//	)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("snapshot refresh failed: %w", err)
//	}
type RefreshSnapshotCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshSnapshotCommand creates a parameterless snapshot refresh command.
func NewRefreshSnapshotCommand() RefreshSnapshotCommand {
	return RefreshSnapshotCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefreshSnapshotCommandIsNotConstructed if validation fails.
func (c RefreshSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrRefreshSnapshotCommandIsNotConstructed)
}
