package order

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Shipment represents a physical or logical grouping of an order's items to
// ship. Every order owns at least one shipment, created when the order is
// placed. A shipment is "shipped" once its shipped timestamp is set; the
// timestamp is stamped at most once.
type Shipment struct {
	id             kernel.UUID
	shippedAt      *time.Time
	notifiedAt     *time.Time
	trackingNumber string
	isConstructed  bool
}

// NewShipment creates a fresh, unshipped shipment with the given identifier.
func NewShipment(id kernel.UUID) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence with its
// recorded timestamps and tracking number.
func RestoreShipment(id kernel.UUID, shippedAt, notifiedAt *time.Time, trackingNumber string) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:             id,
		shippedAt:      shippedAt,
		notifiedAt:     notifiedAt,
		trackingNumber: trackingNumber,
		isConstructed:  true,
	}, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// IsShipped reports whether the shipment has a shipped timestamp.
func (s *Shipment) IsShipped() bool {
	return s.shippedAt != nil
}

// ShippedAt returns the shipped timestamp, or nil when unshipped.
func (s *Shipment) ShippedAt() *time.Time {
	return s.shippedAt
}

// NotifiedAt returns the timestamp of the shipping notification, or nil
// when no notification has been recorded.
func (s *Shipment) NotifiedAt() *time.Time {
	return s.notifiedAt
}

// TrackingNumber returns the carrier tracking number, empty when unset.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// MarkShipped stamps the shipped timestamp. Already-shipped shipments keep
// their original timestamp.
func (s *Shipment) MarkShipped(now time.Time) {
	if s.shippedAt != nil {
		return
	}
	s.shippedAt = &now
}

// MarkNotified records that a shipping notification was sent.
func (s *Shipment) MarkNotified(now time.Time) {
	s.notifiedAt = &now
}

// SetTrackingNumber sets the carrier tracking number. It must be non-empty.
func (s *Shipment) SetTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	s.trackingNumber = trackingNumber
	return nil
}
