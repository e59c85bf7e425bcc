package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printshop/cmd"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/adapters/out/postgres/settingsrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.ConnectionString()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := migrateDB(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	root.CreateHTTPServer().RegisterRoutes(e, configs.JWTSecret)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	// keep the day's numbering across restarts
	if err := root.SaveQueueSeq(shutdownCtx); err != nil {
		logger.Error("Failed to persist queue position", "error", err)
	}
}

func getConfigs() cmd.Config {
	// empty DRAFT_TTL falls back to the registry default
	var draftTTL time.Duration
	if raw := goDotEnvVariable("DRAFT_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Error parsing DRAFT_TTL: %v", err)
		}
		draftTTL = parsed
	}

	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:      goDotEnvVariable("JWT_SECRET"),
		StorageBaseURL: goDotEnvVariable("STORAGE_BASE_URL"),
		DraftTTL:       draftTTL,
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

func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.FileDTO{},
		&orderrepo.RangeDTO{},
		&orderrepo.ServiceDTO{},
		&orderrepo.ServiceFileDTO{},
		&orderrepo.StatusUpdateDTO{},
		&settingsrepo.SettingsDTO{},
	)
}
