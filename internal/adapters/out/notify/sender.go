// Package notify provides the outbound shipping notice adapter.
// The current implementation records notices in the structured log; a real
// mail or webhook integration can replace it behind the same port.
package notify

import (
	"context"
	"log/slog"

	"shop/internal/core/domain/model/kernel"
)

// SlogNotificationSender implements NotificationSender by writing the
// notice to the structured log.
type SlogNotificationSender struct {
	logger *slog.Logger
}

// NewSlogNotificationSender creates a log-backed notification sender.
func NewSlogNotificationSender(logger *slog.Logger) *SlogNotificationSender {
	return &SlogNotificationSender{logger: logger}
}

// SendShippingNotice logs the shipping notice for the given shipment.
func (s *SlogNotificationSender) SendShippingNotice(_ context.Context, orderID, shipmentID kernel.UUID) error {
	s.logger.Info("shipping notice sent",
		"order_id", orderID.String(),
		"shipment_id", shipmentID.String())
	return nil
}
