package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"sitecrew/config"
	"sitecrew/gateway"
	"sitecrew/middleware"
	"sitecrew/routes"
	"sitecrew/utils"
	"sitecrew/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SITECREW: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize error reporting
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Failed to initialize sentry: %v", err)
		}
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Identity gateway client
	gw := gateway.NewClient(config.AppConfig.Gateway.BaseURL, config.AppConfig.Gateway.Timeout)

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Start invitation notifier when SMTP is configured
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.AppConfig.SMTPHost != "" {
		inviteMailer := utils.NewInviteMailer(config.AppConfig)
		inviteWorker := worker.NewInviteWorker(config.DB, inviteMailer, log.New(os.Stdout, "INVITE: ", log.LstdFlags))
		go inviteWorker.Start(ctx)
	}

	// Setup routes
	routes.SetupRoutes(app, config.DB, gw)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
