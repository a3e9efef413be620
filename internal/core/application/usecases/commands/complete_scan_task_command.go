package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteScanTaskCommandIsNotConstructed = errors.New(
	"CompleteScanTaskCommand must be created via NewCompleteScanTaskCommand constructor",
)

// CompleteScanTaskCommand represents a request to finish a scan task.
// A short task completes only with the override flag and a reason; whether
// the acting user may override is decided by the caller before building the
// command.
type CompleteScanTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	override bool
	reason   string
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteScanTaskCommand creates a command to finish a scan task.
// The reason is only meaningful together with the override flag; the
// aggregate requires it when the override is used.
func NewCompleteScanTaskCommand(
	taskID kernel.UUID,
	override bool,
	reason string,
	actorID kernel.UUID,
) (CompleteScanTaskCommand, error) {
	cmd := CompleteScanTaskCommand{
		override: override,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setActorID(actorID),
	); err != nil {
		return CompleteScanTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteScanTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteScanTaskCommandIsNotConstructed)
}

// TaskID returns the scan task to finish.
func (c CompleteScanTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Override reports whether a short-pick override was requested.
func (c CompleteScanTaskCommand) Override() bool {
	return c.override
}

// Reason returns the short-pick override reason.
func (c CompleteScanTaskCommand) Reason() string {
	return c.reason
}

// ActorID returns the user finishing the task.
func (c CompleteScanTaskCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CompleteScanTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CompleteScanTaskCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
