package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkart/internal/cart"
	"shopkart/internal/config"
	"shopkart/internal/database"
	"shopkart/internal/handler"
	"shopkart/internal/identity"
	"shopkart/internal/importer"
	"shopkart/internal/repository"
	"shopkart/internal/router"
	"shopkart/internal/service"

	"github.com/alexedwards/scs/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopkart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema migrations
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	blogRepo := repository.NewBlogRepository(pool, logger)

	// Import coupon definitions at startup when configured
	if cfg.Import.Enabled {
		var source importer.Source
		if cfg.Import.S3 {
			s3Source, err := importer.NewS3Source(ctx, cfg.Import.Bucket, cfg.Import.Region, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize S3 coupon source: %w", err)
			}
			source = s3Source
		} else {
			source = importer.NewFileSource(logger)
		}

		imp := importer.New(source, couponRepo, logger)
		if err := imp.Run(ctx, cfg.Import.Files); err != nil {
			return fmt.Errorf("coupon import failed: %w", err)
		}
	}

	// Anonymous carts live in server-side sessions
	sessions := scs.New()
	sessions.Lifetime = cfg.Session.Lifetime

	// Token manager for issued JWTs
	tokens := identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Cart store resolver picks persisted or session-backed carts
	carts := cart.NewResolver(cartRepo, productRepo, sessions, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, logger)
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(carts, couponRepo, logger)
	couponService := service.NewCouponService(couponRepo, carts, logger)
	orderService := service.NewOrderService(orderRepo, couponRepo, carts, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)
	blogService := service.NewBlogService(blogRepo, logger)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	couponHandler := handler.NewCouponHandler(couponService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	blogHandler := handler.NewBlogHandler(blogService, logger)

	// Initialize router
	mux := router.New(
		authHandler,
		productHandler,
		cartHandler,
		couponHandler,
		orderHandler,
		reviewHandler,
		blogHandler,
		sessions,
		tokens,
		logger,
	)

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
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
