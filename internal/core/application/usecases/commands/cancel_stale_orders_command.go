package commands

import (
	"errors"
	"time"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
)

// CancelStaleOrdersCommand represents a request to cancel every order that
// has sat in the New status for longer than the given time to live.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel stale orders.
// The time to live must be positive.
func NewCancelStaleOrdersCommand(ttl time.Duration) (CancelStaleOrdersCommand, error) {
	staleCommand := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := staleCommand.setTTL(ttl); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return staleCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// TTL returns how long an order may stay in the New status before it is
// considered stale.
func (c CancelStaleOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c *CancelStaleOrdersCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsInvalidError("ttl must be positive")
	}

	c.ttl = ttl
	return nil
}
