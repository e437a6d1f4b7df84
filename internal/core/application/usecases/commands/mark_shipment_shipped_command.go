package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrMarkShipmentShippedCommandIsNotConstructed = errors.New(
	"MarkShipmentShippedCommand must be created via NewMarkShipmentShippedCommand constructor",
)

// MarkShipmentShippedCommand represents a request to stamp one shipment's
// shipped timestamp, typically right before its order is delivered.
type MarkShipmentShippedCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkShipmentShippedCommand creates a command to mark a shipment shipped.
func NewMarkShipmentShippedCommand(shipmentID kernel.UUID) (MarkShipmentShippedCommand, error) {
	shippedCommand := MarkShipmentShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := shippedCommand.setShipmentID(shipmentID); err != nil {
		return MarkShipmentShippedCommand{}, err
	}

	return shippedCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShipmentShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentShippedCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the shipment.
func (c MarkShipmentShippedCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *MarkShipmentShippedCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
