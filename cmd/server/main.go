package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellbridge/internal/config"
	"sellbridge/internal/handler"
	"sellbridge/internal/repository/postgres"
	"sellbridge/internal/router"
	"sellbridge/internal/service"
	s3storage "sellbridge/internal/storage/s3"
)

// @title        Sellbridge Pricing API
// @version      1.0
// @description  Duty-aware reverse price solving for cross-border resale listings
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tariffRepo := postgres.NewTariffRepo(db)
	policyRepo := postgres.NewShippingPolicyRepo(db)
	feeRepo := postgres.NewCategoryFeeRepo(db)
	marginRepo := postgres.NewMarginPolicyRepo(db)
	rateRepo := postgres.NewExchangeRateRepo(db)
	calcRepo := postgres.NewCalculationRepo(db)
	queueRepo := postgres.NewRecalcQueueRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	pricingSvc := service.NewPricingService(tariffRepo, policyRepo, feeRepo, marginRepo, rateRepo, calcRepo)
	exportSvc := service.NewExportService(calcRepo, s3Client, service.ExportConfig{
		Bucket:        cfg.S3.Bucket,
		KeyPrefix:     cfg.Pricing.ExportPrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
	})

	// Root context canceled on SIGINT/SIGTERM; stops the worker and the server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := service.NewRecalcQueueWorker(queueRepo, pricingSvc, service.RecalcQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
		BatchSize:    cfg.Queue.BatchSize,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	// Initialize handlers
	calcH := handler.NewCalculationHandler(pricingSvc, exportSvc)
	refH := handler.NewReferenceHandler(tariffRepo, policyRepo, rateRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, calcH, refH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	<-workerDone
	return nil
}
