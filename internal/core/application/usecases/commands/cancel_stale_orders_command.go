package commands

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
)

// CancelStaleOrdersCommand requests cancellation of pending orders that
// were never confirmed before the cutoff instant. Used by the background
// cleanup job.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Time
	batchSize int

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a cleanup command. The cutoff must
// be a non-zero instant and the batch size positive.
func NewCancelStaleOrdersCommand(olderThan time.Time, batchSize int) (CancelStaleOrdersCommand, error) {
	cmd := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOlderThan(olderThan),
		cmd.setBatchSize(batchSize),
	); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// OlderThan returns the cutoff instant; only pending orders created before
// it are cancelled.
func (c CancelStaleOrdersCommand) OlderThan() time.Time {
	return c.olderThan
}

// BatchSize returns the maximum number of orders cancelled per run.
func (c CancelStaleOrdersCommand) BatchSize() int {
	return c.batchSize
}

func (c *CancelStaleOrdersCommand) setOlderThan(olderThan time.Time) error {
	if olderThan.IsZero() {
		return errs.NewValueIsRequiredError("olderThan")
	}

	c.olderThan = olderThan
	return nil
}

func (c *CancelStaleOrdersCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"batchSize",
			fmt.Errorf("%d is not greater than 0", batchSize),
		)
	}

	c.batchSize = batchSize
	return nil
}
