package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopcore/internal/archive"
	"shopcore/internal/config"
	"shopcore/internal/coupon"
	"shopcore/internal/database"
	"shopcore/internal/handler"
	"shopcore/internal/repository"
	"shopcore/internal/router"
	"shopcore/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopcore API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	invoiceRepo := repository.NewInvoiceRepository(pool, logger)
	alertRepo := repository.NewAlertRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)

	// Initialize coupon validator
	validator := coupon.NewValidator(couponRepo, logger)

	// Initialize invoice archiver with S3 and local fallback
	var archiver archive.Archiver = archive.NopArchiver{}
	if cfg.S3.Enabled {
		s3Archiver, err := archive.NewS3Archiver(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 archiver, invoice archiving disabled")
		} else {
			archiver = s3Archiver
		}
	} else {
		logger.Info().Msg("invoice archiving disabled (S3 disabled)")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	alertService := service.NewAlertService(alertRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, couponRepo, customerRepo, validator, alertService, logger)
	couponService := service.NewCouponService(couponRepo, validator, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo, customerRepo, archiver, logger)
	customerService := service.NewCustomerService(customerRepo, logger)

	// Initialize HTTP handlers and the router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Order:    handler.NewOrderHandler(orderService, invoiceService, logger),
		Invoice:  handler.NewInvoiceHandler(invoiceService, logger),
		Coupon:   handler.NewCouponHandler(couponService, logger),
		Alert:    handler.NewAlertHandler(alertService, logger),
		Customer: handler.NewCustomerHandler(customerService, orderService, logger),
	}, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
