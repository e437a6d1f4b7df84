// Package http provides the inbound HTTP adapter.
// It coordinates between HTTP handlers and application use cases; all
// workflow rules live in the core, the adapter only translates requests,
// sequences use cases, and maps errors to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// UpdateOrderStatusRequest is the body of the order status change endpoint.
// Notify opts in to sending a shipping notice when a Delivered request
// stamps a shipment.
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status"`
	Notify      bool   `json:"notify"`
}

// UpdateOrderStatusResponse reports what the status change request did.
// Applied is false when the request was a no-op (same status) or when
// delivery was held back because other shipments have not gone out yet.
type UpdateOrderStatusResponse struct {
	OrderID          uuid.UUID `json:"order_id"`
	OrderStatus      string    `json:"order_status"`
	Applied          bool      `json:"applied"`
	NotificationSent bool      `json:"notification_sent"`
}

// UpdateTrackingNumberRequest is the body of the tracking number endpoint.
type UpdateTrackingNumberRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// Order is one order in a status listing response.
type Order struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	UsePoint    int        `json:"use_point"`
	AddPoint    int        `json:"add_point"`
	OrderedAt   time.Time  `json:"ordered_at"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

// OrderTransitions lists the statuses an order may move to.
type OrderTransitions struct {
	Current string   `json:"current"`
	Allowed []string `json:"allowed"`
}

// Server handles HTTP requests for the order workflow.
type Server struct {
	// Command handlers
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	markShipmentShippedHandler  commands.MarkShipmentShippedCommandHandler
	markShipmentNotifiedHandler commands.MarkShipmentNotifiedCommandHandler
	updateTrackingNumberHandler commands.UpdateTrackingNumberCommandHandler

	// Query handlers
	getOrdersByStatusHandler   queries.GetOrdersByStatusQueryHandler
	getOrderTransitionsHandler queries.GetOrderTransitionsQueryHandler
	getShipmentStateHandler    queries.GetShipmentStateQueryHandler

	notifier ports.NotificationSender
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	markShipmentShippedHandler commands.MarkShipmentShippedCommandHandler,
	markShipmentNotifiedHandler commands.MarkShipmentNotifiedCommandHandler,
	updateTrackingNumberHandler commands.UpdateTrackingNumberCommandHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getOrderTransitionsHandler queries.GetOrderTransitionsQueryHandler,
	getShipmentStateHandler queries.GetShipmentStateQueryHandler,
	notifier ports.NotificationSender,
) *Server {
	return &Server{
		updateOrderStatusHandler:    updateOrderStatusHandler,
		markShipmentShippedHandler:  markShipmentShippedHandler,
		markShipmentNotifiedHandler: markShipmentNotifiedHandler,
		updateTrackingNumberHandler: updateTrackingNumberHandler,
		getOrdersByStatusHandler:    getOrdersByStatusHandler,
		getOrderTransitionsHandler:  getOrderTransitionsHandler,
		getShipmentStateHandler:     getShipmentStateHandler,
		notifier:                    notifier,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.PUT("/api/v1/shippings/:id/order-status", s.UpdateOrderStatus)
	e.PUT("/api/v1/shippings/:id/tracking-number", s.UpdateTrackingNumber)
	e.GET("/api/v1/orders", s.GetOrders)
	e.GET("/api/v1/orders/:id/transitions", s.GetOrderTransitions)
}

// UpdateOrderStatus handles PUT /api/v1/shippings/:id/order-status.
// Changes the status of the order owning the addressed shipment. A request
// for the order's current status is a no-op. For Delivered, the transition
// is checked first, then the addressed shipment is stamped shipped, and the
// change only applies once every shipment of the order has gone out. With
// notify set, a shipping notice goes out after the stamp and the shipment
// is stamped notified.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	shipmentID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id",
		})
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	newStatus, err := order.StatusFromString(request.OrderStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order status: " + request.OrderStatus,
		})
	}

	reqCtx := ctx.Request().Context()

	stateQuery, err := queries.NewGetShipmentStateQuery(shipmentID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id",
		})
	}

	state, err := s.getShipmentStateHandler.Handle(reqCtx, stateQuery)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Shipment not found",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to resolve shipment",
		})
	}

	response := UpdateOrderStatusResponse{
		OrderID:     state.OrderID.Bytes(),
		OrderStatus: state.OrderStatus.String(),
	}

	// Requesting the current status is not an error, just nothing to do.
	if state.OrderStatus == newStatus {
		return ctx.JSON(http.StatusOK, response)
	}

	if newStatus == order.Delivered {
		applied, deliverErr := s.deliver(ctx, shipmentID, state, &response, request.Notify)
		if deliverErr != nil || !applied {
			return deliverErr
		}
		return ctx.JSON(http.StatusOK, response)
	}

	if statusErr := s.applyStatus(ctx, state.OrderID, newStatus); statusErr != nil {
		return statusErr
	}

	response.OrderStatus = newStatus.String()
	response.Applied = true
	return ctx.JSON(http.StatusOK, response)
}

// deliver stamps the addressed shipment, optionally sends the shipping
// notice, and applies the Delivered status once every shipment has gone
// out. Returns whether the status change was applied; when it returns
// (false, nil) the response has already been written.
func (s *Server) deliver(ctx echo.Context, shipmentID kernel.UUID,
	state queries.GetShipmentStateQueryResponse,
	response *UpdateOrderStatusResponse, notify bool) (bool, error) {
	reqCtx := ctx.Request().Context()

	// An illegal request must leave no trace, so legality is checked
	// before the shipped stamp commits.
	if !state.OrderStatus.CanTransitionTo(order.Delivered) {
		return false, ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: order.NewInvalidTransitionError(state.OrderStatus, order.Delivered).Error(),
		})
	}

	shippedCommand, err := commands.NewMarkShipmentShippedCommand(shipmentID)
	if err != nil {
		return false, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id",
		})
	}
	if err = s.markShipmentShippedHandler.Handle(reqCtx, shippedCommand); err != nil {
		return false, ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to mark shipment shipped",
		})
	}

	// The notice concerns the shipment that just went out, so it is sent
	// per stamp, whether or not the order completes below.
	if notify {
		response.NotificationSent = s.sendShippingNotice(ctx, state.OrderID, shipmentID)
	}

	// Other shipments still pending: the order stays in its current
	// status until the last one ships.
	if !state.OtherShipmentsShipped {
		return false, ctx.JSON(http.StatusOK, *response)
	}

	if statusErr := s.applyStatus(ctx, state.OrderID, order.Delivered); statusErr != nil {
		return false, statusErr
	}

	response.OrderStatus = order.Delivered.String()
	response.Applied = true

	return true, nil
}

// sendShippingNotice sends the notice and stamps the shipment as notified.
// The shipped stamp has already committed, so a failed notice does not fail
// the request; the shipment simply stays unstamped for a retry.
func (s *Server) sendShippingNotice(ctx echo.Context, orderID, shipmentID kernel.UUID) bool {
	reqCtx := ctx.Request().Context()

	if err := s.notifier.SendShippingNotice(reqCtx, orderID, shipmentID); err != nil {
		return false
	}

	notifiedCommand, err := commands.NewMarkShipmentNotifiedCommand(shipmentID)
	if err != nil {
		return false
	}
	if err = s.markShipmentNotifiedHandler.Handle(reqCtx, notifiedCommand); err != nil {
		return false
	}

	return true
}

// applyStatus runs the status change command and maps domain errors to
// HTTP error responses. Returns nil on success.
func (s *Server) applyStatus(ctx echo.Context, orderID kernel.UUID, newStatus order.Status) error {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change request: " + err.Error(),
		})
	}

	err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, product.ErrInsufficientStock):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to change order status",
		})
	}
}

// UpdateTrackingNumber handles PUT /api/v1/shippings/:id/tracking-number.
func (s *Server) UpdateTrackingNumber(ctx echo.Context) error {
	shipmentID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id",
		})
	}

	var request UpdateTrackingNumberRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateTrackingNumberCommand(shipmentID, request.TrackingNumber)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking number: " + err.Error(),
		})
	}

	err = s.updateTrackingNumberHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Shipment not found",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update tracking number",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders?status= - lists orders by status.
func (s *Server) GetOrders(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order status: " + ctx.QueryParam("status"),
		})
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid listing request",
		})
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:          o.ID.Bytes(),
			Status:      o.Status.String(),
			UsePoint:    o.UsePoint,
			AddPoint:    o.AddPoint,
			OrderedAt:   o.OrderedAt,
			PaymentDate: o.PaymentDate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderTransitions handles GET /api/v1/orders/:id/transitions.
func (s *Server) GetOrderTransitions(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderTransitionsQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	transitions, err := s.getOrderTransitionsHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to resolve transitions",
		})
	}

	allowed := make([]string, len(transitions.Allowed))
	for i, status := range transitions.Allowed {
		allowed[i] = status.String()
	}

	return ctx.JSON(http.StatusOK, OrderTransitions{
		Current: transitions.Current.String(),
		Allowed: allowed,
	})
}

func parseUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
