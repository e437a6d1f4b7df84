package commands_test

import (
	"testing"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *services.OrderStateMachine {
	t.Helper()
	machine, err := services.NewOrderStateMachine(
		services.NewInventoryAdjuster(services.StockPolicyReject),
		services.NewLoyaltyAdjuster())
	require.NoError(t, err)
	return machine
}

func restoreTestOrder(t *testing.T, status order.Status, customerID *kernel.UUID,
	variantID kernel.UUID, quantity, usePoint, addPoint int) *order.Order {
	t.Helper()

	item, err := order.NewProductItem(variantID, quantity)
	require.NoError(t, err)
	shipment, err := order.NewShipment(kernel.NewUUID())
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), customerID, status,
		[]order.Item{item}, []*order.Shipment{shipment},
		usePoint, addPoint, time.Now(), nil, time.Now())
	require.NoError(t, err)
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_Cancel(t *testing.T) {
	ctx := t.Context()

	// Create test data
	variant, err := product.NewVariant(kernel.NewUUID(), "sku-1", 10)
	require.NoError(t, err)
	testCustomer, err := customer.NewCustomer(kernel.NewUUID(), 1000)
	require.NoError(t, err)
	customerID := testCustomer.ID()
	testOrder := restoreTestOrder(t, order.New, &customerID, variant.ID(), 5, 100, 50)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Cancel)
	require.NoError(t, err)

	// Setup mocks
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{variant.ID()}).
			Return([]*product.Variant{variant}, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetForUpdate", ctx, customerID).Return(testCustomer, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Update", ctx, variant).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Update", ctx, testCustomer).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, newTestMachine(t))

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancel, testOrder.Status())
	assert.Equal(t, 15, variant.Stock())
	assert.Equal(t, 1100, testCustomer.Points())
	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo, productRepo, customerRepo)
}

func TestUpdateOrderStatusCommandHandler_Handle_NoSideEffects(t *testing.T) {
	ctx := t.Context()

	testOrder := restoreTestOrder(t, order.New, nil, kernel.NewUUID(), 5, 0, 0)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.InProgress)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	// Moving New to InProgress touches neither stock nor points, so the
	// product and customer repositories must never be requested.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, newTestMachine(t))

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, testOrder.Status())
	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo)
}

func TestUpdateOrderStatusCommandHandler_Handle_GuestCancel(t *testing.T) {
	ctx := t.Context()

	variant, err := product.NewVariant(kernel.NewUUID(), "sku-1", 10)
	require.NoError(t, err)
	testOrder := restoreTestOrder(t, order.New, nil, variant.ID(), 5, 100, 0)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Cancel)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{variant.ID()}).
			Return([]*product.Variant{variant}, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Update", ctx, variant).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, newTestMachine(t))

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 15, variant.Stock())
	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo, productRepo)
}

func TestUpdateOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()

	testOrder := restoreTestOrder(t, order.New, nil, kernel.NewUUID(), 5, 0, 0)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Returned)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, newTestMachine(t))

	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.New, testOrder.Status())
	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	handler := commands.NewUpdateOrderStatusCommandHandler(new(MockUoWFactory), newTestMachine(t))

	err := handler.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

	assert.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}
