package cmd

import (
	"log/slog"
	"os"

	"shop/internal/adapters/out/notify"
	"shop/internal/adapters/out/postgres"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/services"
	"shop/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	machine    *services.OrderStateMachine
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	stockPolicy, err := services.ParseStockPolicy(configs.StockPolicy)
	if err != nil {
		return CompositionRoot{}, err
	}

	machine, err := services.NewOrderStateMachine(
		services.NewInventoryAdjuster(stockPolicy),
		services.NewLoyaltyAdjuster(),
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		machine:    machine,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.machine)
}

func (c *CompositionRoot) CreateMarkShipmentShippedCommandHandler() commands.MarkShipmentShippedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkShipmentShippedCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkShipmentNotifiedCommandHandler() commands.MarkShipmentNotifiedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkShipmentNotifiedCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateTrackingNumberCommandHandler() commands.UpdateTrackingNumberCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTrackingNumberCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleOrdersCommandHandler(f, c.CreateUpdateOrderStatusCommandHandler())
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTransitionsQueryHandler() queries.GetOrderTransitionsQueryHandler {
	return queries.NewGetOrderTransitionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentStateQueryHandler() queries.GetShipmentStateQueryHandler {
	return queries.NewGetShipmentStateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNotificationSender() ports.NotificationSender {
	return notify.NewSlogNotificationSender(c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
