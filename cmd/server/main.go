// main.go
//
// Operations data service for the Sandwich Project nonprofit dashboard
// Copyright (c) 2026 Sandwich Project Ops <ops@sandwichproject.org> (https://sandwichproject.org)
//
// This file is part of sandwich-opsdb.
// sandwich-opsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sandwich-opsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sandwich-opsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Sandwich Project Ops <ops@sandwichproject.org> (https://sandwichproject.org)"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/sandwichproject/opsdb/internal/config"
	"github.com/sandwichproject/opsdb/internal/database"
	"github.com/sandwichproject/opsdb/internal/handlers"
	"github.com/sandwichproject/opsdb/internal/logger"
	"github.com/sandwichproject/opsdb/internal/middleware"
	"github.com/sandwichproject/opsdb/internal/reconciler"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/types"
	"go.uber.org/zap"

	_ "github.com/sandwichproject/opsdb/docs/api" // Swagger docs
)

// @title Sandwich OpsDB API
// @version 1.0.0
// @description Operations data service for sandwich collection tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/sandwichproject/opsdb
// @contact.email ops@sandwichproject.org

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load .env in development; ignore absence in production
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.Must(logger.New())
	defer func() { _ = zlog.Sync() }()

	// Connect to the primary database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire the storage façade: database primary, in-memory fallback
	primary := storage.NewDBStore(db)
	var store storage.Store = primary
	var facade *storage.Facade
	var recon *reconciler.Reconciler
	if cfg.FallbackEnabled {
		facade = storage.NewFacade(primary, storage.NewMemStore(),
			logger.Named(zlog, "facade"), storage.BreakerSettings{
				ConsecutiveFailures: uint32(cfg.BreakerFailures),
				OpenTimeout:         time.Duration(cfg.BreakerTimeout) * time.Second,
			})
		store = facade

		// Resurface deletions recorded before the last restart
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := facade.LoadTombstones(ctx); err != nil {
			zlog.Warn("tombstone load failed", zap.Error(err))
		}
		cancel()

		recon = reconciler.New(facade, logger.Named(zlog, "reconciler"), cfg.SyncSchedule, cfg.SyncRetries)
		if err := recon.Start(); err != nil {
			log.Fatalf("Failed to start reconciler: %v", err)
		}
		defer recon.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("sandwich-opsdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	recordHandler := &handlers.RecordHandler{Store: store}
	hostHandler := &handlers.HostHandler{Store: store}
	driverHandler := &handlers.DriverHandler{Store: store}
	recipientHandler := &handlers.RecipientHandler{Store: store}
	meetingHandler := &handlers.MeetingHandler{Store: store}
	messageHandler := &handlers.MessageHandler{Store: store}
	duplicateHandler := &handlers.DuplicateHandler{Store: store}
	reportHandler := &handlers.ReportHandler{Store: store}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db, Facade: facade}

	// Collection records (public GET, user POST/PUT, admin DELETE)
	api.Get("/records", recordHandler.ListRecords)
	api.Get("/records/:id", recordHandler.GetRecord)
	api.Post("/records", middleware.AuthUser(), recordHandler.CreateRecord)
	api.Put("/records/:id", middleware.AuthUser(), recordHandler.UpdateRecord)
	api.Delete("/records/:id", middleware.AuthAdmin(), recordHandler.DeleteRecord)
	api.Delete("/records", middleware.AuthAdmin(), recordHandler.BatchDeleteRecords)

	// Hosts
	api.Get("/hosts", hostHandler.ListHosts)
	api.Get("/hosts/:id", hostHandler.GetHost)
	api.Post("/hosts", middleware.AuthUser(), hostHandler.CreateHost)
	api.Put("/hosts/:id", middleware.AuthUser(), hostHandler.UpdateHost)
	api.Post("/hosts/:id/rename", middleware.AuthUser(), hostHandler.RenameHost)
	api.Delete("/hosts/:id", middleware.AuthAdmin(), hostHandler.DeleteHost)

	// Drivers
	api.Get("/drivers", driverHandler.ListDrivers)
	api.Get("/drivers/:id", driverHandler.GetDriver)
	api.Post("/drivers", middleware.AuthUser(), driverHandler.CreateDriver)
	api.Put("/drivers/:id", middleware.AuthUser(), driverHandler.UpdateDriver)
	api.Delete("/drivers/:id", middleware.AuthAdmin(), driverHandler.DeleteDriver)

	// Recipients
	api.Get("/recipients", recipientHandler.ListRecipients)
	api.Get("/recipients/:id", recipientHandler.GetRecipient)
	api.Post("/recipients", middleware.AuthUser(), recipientHandler.CreateRecipient)
	api.Put("/recipients/:id", middleware.AuthUser(), recipientHandler.UpdateRecipient)
	api.Delete("/recipients/:id", middleware.AuthAdmin(), recipientHandler.DeleteRecipient)

	// Meetings
	api.Get("/meetings", meetingHandler.ListMeetings)
	api.Get("/meetings/:id", meetingHandler.GetMeeting)
	api.Post("/meetings", middleware.AuthUser(), meetingHandler.CreateMeeting)
	api.Put("/meetings/:id", middleware.AuthUser(), meetingHandler.UpdateMeeting)
	api.Delete("/meetings/:id", middleware.AuthAdmin(), meetingHandler.DeleteMeeting)

	// Broadcast messages
	api.Get("/messages", messageHandler.ListMessages)
	api.Post("/messages", middleware.AuthUser(), messageHandler.CreateMessage)
	api.Delete("/messages/:id", middleware.AuthAdmin(), messageHandler.DeleteMessage)

	// Duplicate analysis and cleanup
	api.Get("/duplicates", duplicateHandler.GetReport)
	api.Post("/duplicates/clean", middleware.AuthAdmin(), duplicateHandler.CleanAll)
	api.Post("/duplicates/clean/:key", middleware.AuthAdmin(), duplicateHandler.CleanGroup)
	api.Post("/duplicates/suspicious/clean", middleware.AuthAdmin(), duplicateHandler.CleanSuspicious)

	// Reports and health
	api.Get("/reports/summary", reportHandler.GetSummary)
	api.Get("/health", healthHandler.GetHealth)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Initialize Authorizer (will be done on first auth request)
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
