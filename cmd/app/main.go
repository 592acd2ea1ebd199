package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/smtp"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := openDatabase(configs)

	mailer, err := smtp.NewGomailResetMailer(configs.SMTPConfig())
	if err != nil {
		log.Fatalf("Error creating mailer: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, mailer)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreatePurgeResetTokensCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
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
		JWTSecret:           goDotEnvVariable("JWT_SECRET"),
		SMTPHost:            goDotEnvVariable("SMTP_HOST"),
		SMTPPort:            goDotEnvIntVariable("SMTP_PORT"),
		SMTPUser:            goDotEnvVariable("SMTP_USER"),
		SMTPPassword:        goDotEnvVariable("SMTP_PASSWORD"),
		SMTPFrom:            goDotEnvVariable("SMTP_FROM"),
		ResetWebBaseURL:     goDotEnvVariable("RESET_WEB_BASE_URL"),
		ResetAndroidBaseURL: goDotEnvVariable("RESET_ANDROID_BASE_URL"),
		ResetIOSBaseURL:     goDotEnvVariable("RESET_IOS_BASE_URL"),
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

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&productrepo.ProductDTO{},
		&accountrepo.AccountDTO{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateDeliverOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateRequestPasswordResetCommandHandler(),
		app.CreateConsumePasswordResetCommandHandler(),
		app.CreateGetNearbyProductsQueryHandler(),
		app.CreateGetAvailableOrdersQueryHandler(),
		app.CreateGetDeliveryStatisticsQueryHandler(),
	)
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
