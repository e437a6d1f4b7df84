package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	shophttp "shop/internal/adapters/in/http"
	"shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/postgres/customerrepo"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}

type funcOrderUoWFactory func() commands.OrderUoW

func (f funcOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// recordingNotifier captures sent notices instead of delivering them.
type recordingNotifier struct {
	sent []kernel.UUID
}

func (n *recordingNotifier) SendShippingNotice(_ context.Context, _, shipmentID kernel.UUID) error {
	n.sent = append(n.sent, shipmentID)
	return nil
}

// ServerIntegrationTestSuite exercises the order-status endpoint against
// real command and query handlers backed by a PostgreSQL container.
type ServerIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	notifier  *recordingNotifier
	server    *shophttp.Server
}

func (suite *ServerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.ShipmentDTO{},
		&productrepo.VariantDTO{}, &customerrepo.CustomerDTO{}))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *ServerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, shipments, variants, customers CASCADE").Error)

	machine, err := services.NewOrderStateMachine(
		services.NewInventoryAdjuster(services.StockPolicyReject),
		services.NewLoyaltyAdjuster())
	suite.Require().NoError(err)

	uowFactory := funcUoWFactory(func() commands.UoW { return suite.factory.Create() })
	orderUoWFactory := funcOrderUoWFactory(func() commands.OrderUoW { return suite.factory.Create() })

	suite.notifier = &recordingNotifier{}
	suite.server = shophttp.NewServer(
		commands.NewUpdateOrderStatusCommandHandler(uowFactory, machine),
		commands.NewMarkShipmentShippedCommandHandler(orderUoWFactory),
		commands.NewMarkShipmentNotifiedCommandHandler(orderUoWFactory),
		commands.NewUpdateTrackingNumberCommandHandler(orderUoWFactory),
		queries.NewGetOrdersByStatusQueryHandler(suite.db),
		queries.NewGetOrderTransitionsQueryHandler(suite.db),
		queries.NewGetShipmentStateQueryHandler(suite.db),
		suite.notifier,
	)
}

func (suite *ServerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedGuestOrder stores a guest order in the given status with the given
// number of shipments. Guest orders keep the Delivered path free of
// variant and customer fixtures: no stock moves, and reward points have
// no account to land on.
func (suite *ServerIntegrationTestSuite) seedGuestOrder(
	status order.Status, shipmentCount int) *order.Order {
	ctx := context.Background()

	item, err := order.NewProductItem(kernel.NewUUID(), 1)
	suite.Require().NoError(err)

	shipments := make([]*order.Shipment, shipmentCount)
	for i := range shipments {
		shipment, shipErr := order.NewShipment(kernel.NewUUID())
		suite.Require().NoError(shipErr)
		shipments[i] = shipment
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	o, err := order.NewOrder(kernel.NewUUID(), nil,
		[]order.Item{item}, shipments, 0, 0, now)
	suite.Require().NoError(err)

	if status != order.New {
		suite.Require().NoError(o.ChangeStatus(status, now))
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	return o
}

func (suite *ServerIntegrationTestSuite) putOrderStatus(
	shipmentID kernel.UUID, body string) (*httptest.ResponseRecorder, shophttp.UpdateOrderStatusResponse) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut,
		"/api/v1/shippings/"+shipmentID.String()+"/order-status",
		strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(shipmentID.String())

	suite.Require().NoError(suite.server.UpdateOrderStatus(ctx))

	var response shophttp.UpdateOrderStatusResponse
	if rec.Code == http.StatusOK {
		suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	}
	return rec, response
}

func (suite *ServerIntegrationTestSuite) reloadOrder(id kernel.UUID) *order.Order {
	loaded, err := suite.factory.Create().OrderRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return loaded
}

func (suite *ServerIntegrationTestSuite) TestUpdateOrderStatus_Delivered_LastShipment_Applies() {
	o := suite.seedGuestOrder(order.Paid, 1)
	shipmentID := o.Shipments()[0].ID()

	rec, response := suite.putOrderStatus(shipmentID,
		`{"order_status": "Delivered", "notify": true}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.True(response.Applied)
	suite.Equal("Delivered", response.OrderStatus)
	suite.True(response.NotificationSent)
	suite.Equal([]kernel.UUID{shipmentID}, suite.notifier.sent)

	loaded := suite.reloadOrder(o.ID())
	suite.Equal(order.Delivered, loaded.Status())
	suite.True(loaded.AllShipmentsShipped())
	shipment, ok := loaded.ShipmentByID(shipmentID)
	suite.Require().True(ok)
	suite.NotNil(shipment.NotifiedAt())
}

func (suite *ServerIntegrationTestSuite) TestUpdateOrderStatus_Delivered_IllegalTransition_LeavesNoStamp() {
	o := suite.seedGuestOrder(order.Cancel, 1)
	shipmentID := o.Shipments()[0].ID()

	rec, _ := suite.putOrderStatus(shipmentID,
		`{"order_status": "Delivered", "notify": true}`)

	suite.Equal(http.StatusConflict, rec.Code)
	suite.Empty(suite.notifier.sent)

	// The rejected request must not have stamped the shipment.
	loaded := suite.reloadOrder(o.ID())
	suite.Equal(order.Cancel, loaded.Status())
	shipment, ok := loaded.ShipmentByID(shipmentID)
	suite.Require().True(ok)
	suite.False(shipment.IsShipped())
	suite.Nil(shipment.NotifiedAt())
}

func (suite *ServerIntegrationTestSuite) TestUpdateOrderStatus_Delivered_PendingSibling_StampsAndNotifiesOnly() {
	o := suite.seedGuestOrder(order.Paid, 2)
	firstID := o.Shipments()[0].ID()
	secondID := o.Shipments()[1].ID()

	rec, response := suite.putOrderStatus(firstID,
		`{"order_status": "Delivered", "notify": true}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.False(response.Applied)
	suite.Equal("Paid", response.OrderStatus)

	// The notice concerns the shipment that went out, not the order
	// completing, so it is sent even while a sibling is pending.
	suite.True(response.NotificationSent)
	suite.Equal([]kernel.UUID{firstID}, suite.notifier.sent)

	loaded := suite.reloadOrder(o.ID())
	suite.Equal(order.Paid, loaded.Status())
	shipment, ok := loaded.ShipmentByID(firstID)
	suite.Require().True(ok)
	suite.True(shipment.IsShipped())
	suite.NotNil(shipment.NotifiedAt())

	// Delivering the last shipment completes the order.
	rec, response = suite.putOrderStatus(secondID,
		`{"order_status": "Delivered", "notify": false}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.True(response.Applied)
	suite.Equal("Delivered", response.OrderStatus)
	suite.False(response.NotificationSent)

	loaded = suite.reloadOrder(o.ID())
	suite.Equal(order.Delivered, loaded.Status())
	suite.True(loaded.AllShipmentsShipped())
}

func (suite *ServerIntegrationTestSuite) TestUpdateOrderStatus_SameStatus_Skips() {
	o := suite.seedGuestOrder(order.Paid, 1)
	shipmentID := o.Shipments()[0].ID()

	rec, response := suite.putOrderStatus(shipmentID,
		`{"order_status": "Paid", "notify": false}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.False(response.Applied)
	suite.Equal("Paid", response.OrderStatus)
	suite.Equal(order.Paid, suite.reloadOrder(o.ID()).Status())
}

func (suite *ServerIntegrationTestSuite) TestUpdateOrderStatus_UnknownShipment_NotFound() {
	rec, _ := suite.putOrderStatus(kernel.NewUUID(),
		`{"order_status": "Delivered", "notify": false}`)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func TestServerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServerIntegrationTestSuite))
}
