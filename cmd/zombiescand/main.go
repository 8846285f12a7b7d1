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

	"github.com/cloudvigil/zombiescan/internal/application/usecase"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/infrastructure/cloud"
	"github.com/cloudvigil/zombiescan/internal/infrastructure/config"
	"github.com/cloudvigil/zombiescan/internal/infrastructure/messaging"
	"github.com/cloudvigil/zombiescan/internal/infrastructure/ml"
	sqlitestore "github.com/cloudvigil/zombiescan/internal/infrastructure/persistence/sqlite"
	grpcpresentation "github.com/cloudvigil/zombiescan/internal/presentation/grpc"
	"github.com/cloudvigil/zombiescan/internal/presentation/rest"
	"github.com/cloudvigil/zombiescan/pkg/auth"
	"github.com/cloudvigil/zombiescan/pkg/kafka"
	"github.com/cloudvigil/zombiescan/pkg/observability"
	"github.com/cloudvigil/zombiescan/pkg/sqlitepool"
)

const outboxRelayInterval = 2 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting zombiescan",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"scorer", cfg.Scorer,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "zombiescan",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	// Database.
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:      cfg.DatabasePath,
		Logger:    logger,
		OnConnect: sqlitestore.ApplySchema,
	})
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// JWT service.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "zombiescan",
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Kafka producer and transactional outbox.
	producer, err := kafka.NewProducer(kafka.Config{
		Brokers:       []string{cfg.KafkaBroker},
		TLS:           cfg.KafkaTLS,
		SASLEnabled:   cfg.KafkaSASLMechanism != "",
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
	})
	if err != nil {
		logger.Error("failed to initialize kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	// Wire infrastructure adapters. In outbox mode the repositories
	// stage domain events in the same transaction as the aggregate and
	// the relay drains them to the broker; in direct mode events go to
	// the broker inline after the save.
	outboxRepo := sqlitestore.NewOutboxRepository(pool)

	var (
		eventPublisher port.EventPublisher
		stagingOutbox  *sqlitestore.OutboxRepository
	)
	if cfg.EventPublishMode == "direct" {
		eventPublisher = messaging.NewKafkaPublisher(producer, messaging.EventsTopic, logger)
	} else {
		stagingOutbox = outboxRepo
		eventPublisher = messaging.NewOutboxPublisher(outboxRepo)
		relay := messaging.NewRelay(outboxRepo, producer, messaging.EventsTopic, outboxRelayInterval, logger)
		go relay.Run(ctx)
	}

	assessmentRepo := sqlitestore.NewAssessmentRepository(pool, stagingOutbox)
	scanRepo := sqlitestore.NewScanRepository(pool, stagingOutbox)

	inventory := cloud.NewInventorySource(cfg.InventoryPath)

	// Wire domain services.
	heuristic := service.NewHeuristicScorer(cfg.Scoring, cfg.Bands)
	var scorer service.Scorer = heuristic
	if cfg.Scorer == "hybrid" {
		scorer = service.NewHybridScorer(heuristic, ml.NewStubModelClient(), cfg.MLWeight, logger)
	}
	extractor := service.NewFeatureExtractor()
	estimator := service.NewCostEstimator()

	// Wire use cases.
	assessResourceUC := usecase.NewAssessResource(assessmentRepo, eventPublisher, scorer, extractor, estimator)
	getAssessmentUC := usecase.NewGetAssessment(assessmentRepo)
	getLatestUC := usecase.NewGetLatestAssessment(assessmentRepo)
	listAssessmentsUC := usecase.NewListScanAssessments(assessmentRepo)
	runScanUC := usecase.NewRunScan(scanRepo, assessmentRepo, eventPublisher, inventory, scorer, extractor, estimator, logger)
	getScanUC := usecase.NewGetScan(scanRepo)
	listScansUC := usecase.NewListScans(scanRepo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewZombieScanHandler(
		assessResourceUC,
		getAssessmentUC,
		getLatestUC,
		listAssessmentsUC,
		runScanUC,
		getScanUC,
		listScansUC,
		cfg.DefaultRegions,
		logger,
	)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, jwtService)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(logger, pool)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("zombiescan started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"database", cfg.DatabasePath,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down zombiescan")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("zombiescan stopped")
}
