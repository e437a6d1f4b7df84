package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrMarkShipmentNotifiedCommandIsNotConstructed = errors.New(
	"MarkShipmentNotifiedCommand must be created via NewMarkShipmentNotifiedCommand constructor",
)

// MarkShipmentNotifiedCommand represents a request to record that the
// shipping notice for a shipment has been sent.
type MarkShipmentNotifiedCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkShipmentNotifiedCommand creates a command to record a sent notice.
func NewMarkShipmentNotifiedCommand(shipmentID kernel.UUID) (MarkShipmentNotifiedCommand, error) {
	notifiedCommand := MarkShipmentNotifiedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := notifiedCommand.setShipmentID(shipmentID); err != nil {
		return MarkShipmentNotifiedCommand{}, err
	}

	return notifiedCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShipmentNotifiedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentNotifiedCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the shipment.
func (c MarkShipmentNotifiedCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *MarkShipmentNotifiedCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
