package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrUpdateTrackingNumberCommandIsNotConstructed = errors.New(
	"UpdateTrackingNumberCommand must be created via NewUpdateTrackingNumberCommand constructor",
)

// UpdateTrackingNumberCommand represents a request to set or replace the
// carrier tracking number on a shipment.
type UpdateTrackingNumberCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewUpdateTrackingNumberCommand creates a command to set a tracking number.
// The tracking number must not be empty.
func NewUpdateTrackingNumberCommand(shipmentID kernel.UUID, trackingNumber string) (UpdateTrackingNumberCommand, error) {
	trackingCommand := UpdateTrackingNumberCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCommand.setShipmentID(shipmentID),
		trackingCommand.setTrackingNumber(trackingNumber),
	); err != nil {
		return UpdateTrackingNumberCommand{}, err
	}

	return trackingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingNumberCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingNumberCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the shipment.
func (c UpdateTrackingNumberCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TrackingNumber returns the carrier tracking number to set.
func (c UpdateTrackingNumberCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *UpdateTrackingNumberCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateTrackingNumberCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	c.trackingNumber = trackingNumber
	return nil
}
