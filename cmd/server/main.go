package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentalmarket-backend/internal/api/http"
	"rentalmarket-backend/internal/config"
	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/repository/postgres"
	"rentalmarket-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Marketplace Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Booking configuration", "pending_ttl", cfg.PendingTTL(), "display_rate", cfg.DisplayRate().String())

	// Initialize Database
	db, err := postgres.Open(cfg.GetDatabaseConnectionString(), cfg.Database.MaxOpenConns)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	store := postgres.NewStore(db)
	defer store.Close()
	logger.Info("Database connection established")

	// Initialize Services
	converter := pricing.NewRateConverter(cfg.DisplayRate())
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.ItemRepository,
		store.SupplierRepository,
		converter,
		cfg.Booking.DefaultPageSize,
	)
	itemSvc := service.NewItemService(store.ItemRepository, store.BookingRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(bookingSvc, itemSvc)
	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
