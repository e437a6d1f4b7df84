package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"shop/cmd"
	shophttp "shop/internal/adapters/in/http"
	"shop/internal/adapters/out/postgres/customerrepo"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	startJobs(&app, configs)
	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		StockPolicy:        goDotEnvVariable("STOCK_POLICY"),
		StaleOrderTTLHours: goDotEnvVariable("STALE_ORDER_TTL_HOURS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.ShipmentDTO{},
		&productrepo.VariantDTO{},
		&customerrepo.CustomerDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) {
	ttlHours, err := strconv.Atoi(configs.StaleOrderTTLHours)
	if err != nil || ttlHours <= 0 {
		log.Fatalf("Invalid STALE_ORDER_TTL_HOURS: %q", configs.StaleOrderTTLHours)
	}

	jobManager := jobs.NewJobManager(
		app.CreateCancelStaleOrdersCommandHandler(),
		time.Duration(ttlHours)*time.Hour,
		app.Logger(),
	)

	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := shophttp.NewServer(
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateMarkShipmentShippedCommandHandler(),
		app.CreateMarkShipmentNotifiedCommandHandler(),
		app.CreateUpdateTrackingNumberCommandHandler(),
		app.CreateGetOrdersByStatusQueryHandler(),
		app.CreateGetOrderTransitionsQueryHandler(),
		app.CreateGetShipmentStateQueryHandler(),
		app.CreateNotificationSender(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
