package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/cmd"
	httpserver "github.com/mschaaf17/ShippityApp/internal/adapters/in/http"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres/customerrepo"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres/loadrepo"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres/webhookrepo"
	"github.com/mschaaf17/ShippityApp/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := connectDB(configs)

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(app.CreateRetryWebhooksCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		CarrierAPIBaseURL:   goDotEnvVariable("CARRIER_API_BASE_URL"),
		CarrierClientID:     goDotEnvVariable("CARRIER_CLIENT_ID"),
		CarrierClientSecret: goDotEnvVariable("CARRIER_CLIENT_SECRET"),
		PartnerName:         goDotEnvVariable("PARTNER_NAME"),
		PartnerAPIKey:       goDotEnvVariable("PARTNER_API_KEY"),
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

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&loadrepo.LoadDTO{},
		&customerrepo.CustomerDTO{},
		&webhookrepo.ConfigDTO{},
		&webhookrepo.DeliveryLogDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()

	server := httpserver.NewServer(
		app.CreateReconcileLoadCommandHandler(),
		app.CreateDispatchStatusCommandHandler(),
		app.CreateSubmitOrdersCommandHandler(),
		app.CreateSyncLoadCommandHandler(),
		app.CreateRetryWebhooksCommandHandler(),
		app.CreateSetReferenceCommandHandler(),
		app.CreateSetWebhookConfigCommandHandler(),
		app.CreateGetLoadQueryHandler(),
		app.CreateGetDeliveryLogsQueryHandler(),
		app.CreateGetWebhookConfigQueryHandler(),
		configs.PartnerName,
		configs.PartnerAPIKey,
		logger,
	)
	server.RegisterRoutes(e)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Shipment ledger is running")
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
