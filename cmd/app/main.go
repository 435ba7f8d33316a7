package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fulfillment/cmd"
	"fulfillment/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Seed the working set before serving so the first queue read is
	// not empty while waiting for the first cron tick.
	refreshHandler := app.CreateRefreshSnapshotCommandHandler()
	if err := refreshHandler.Handle(ctx, commands.NewRefreshSnapshotCommand()); err != nil {
		logger.WarnContext(ctx, "Initial snapshot failed, starting with an empty working set", "error", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer := app.CreateEventConsumer()
	go func() {
		// Run only returns once ctx is cancelled.
		_ = consumer.Run(ctx)
	}()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		Station:       goDotEnvVariable("STATION"),
		StaffID:       goDotEnvVariable("STAFF_ID"),
		OrderStoreURL: goDotEnvVariable("ORDER_STORE_URL"),
		AmqpURL:       goDotEnvVariable("AMQP_URL"),
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

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received, stopping HTTP server")
		if err := e.Shutdown(context.Background()); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}
