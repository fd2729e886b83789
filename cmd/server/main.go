// @title foliogate API
// @version 1.0
// @description Import gateway for the portfolio tracker: multi-file extraction, review and import of transactions.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the portfolio API access token.
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

	"github.com/jmoiron/sqlx"

	"foliogate/internal/config"
	"foliogate/internal/handler"
	"foliogate/internal/middleware"
	"foliogate/internal/notify/noop"
	"foliogate/internal/notify/ses"
	"foliogate/internal/port"
	"foliogate/internal/repository/postgres"
	"foliogate/internal/router"
	"foliogate/internal/search"
	"foliogate/internal/service"
	s3storage "foliogate/internal/storage/s3"
	"foliogate/internal/upstream"
)

const (
	janitorInterval = time.Minute
	shutdownTimeout = 30 * time.Second
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Import audit store (optional)
	var db *sqlx.DB
	var auditRepo port.ImportAuditRepository
	if cfg.DB.Enabled {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		auditRepo = postgres.NewImportAuditRepo(db)
	} else {
		log.Println("Import audit store disabled (FOLIOGATE_DB_ENABLED=false)")
	}

	// Archive storage (optional)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewArchiveStore(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("Archiving uploads to s3://%s", cfg.S3.Bucket)
	}

	// Import confirmations
	var notifier port.ImportNotifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(ctx, &cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
		log.Printf("Import confirmations via SES (region=%s, from=%s)", cfg.Email.Region, cfg.Email.FromAddress)
	default:
		notifier = noop.NewNoopNotifier(cfg.Email.FrontendURL)
		log.Println("Import confirmations logged only (noop provider)")
	}

	catalog, err := search.LoadCatalog(cfg.Search.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load search catalog: %w", err)
	}

	api := upstream.NewClient(&cfg.Upstream)

	// Initialize services
	importSvc := service.NewImportService(api, auditRepo, storage, notifier, service.ImportConfig{
		MaxFiles:      cfg.Extraction.MaxFiles,
		MaxFileSize:   cfg.Extraction.MaxFileSizeMB << 20,
		FileTimeout:   cfg.Extraction.FileTimeout(),
		Concurrency:   cfg.Extraction.Concurrency,
		SessionTTL:    cfg.Session.TTL,
		MaxSessions:   cfg.Session.MaxSessions,
		ArchiveBucket: cfg.S3.Bucket,
		PresignExpiry: cfg.S3.PresignExpiry,
	})
	batchSvc := service.NewBatchService(api, auditRepo, cfg.Session.TTL, cfg.Session.MaxSessions, nil)
	transactionSvc := service.NewTransactionService(api)
	portfolioSvc := service.NewPortfolioService(api)
	searchSvc := service.NewSearchService(catalog)

	go service.RunJanitor(ctx, janitorInterval, importSvc, batchSvc)

	// Initialize handlers
	importH := handler.NewImportHandler(importSvc)
	eventsH := handler.NewImportEventsHandler(importSvc, cfg.CORS.AllowedOrigins)
	batchH := handler.NewBatchHandler(batchSvc)
	transactionH := handler.NewTransactionHandler(transactionSvc)
	portfolioH := handler.NewPortfolioHandler(portfolioSvc)
	searchH := handler.NewSearchHandler(searchSvc)
	healthH := handler.NewHealthHandler(db)

	if cfg.JWT.Secret == "" {
		log.Println("JWT secret not set: bearer tokens are decoded but not verified; the portfolio API remains the authority")
	}
	verifier := middleware.NewTokenVerifier(&cfg.JWT)

	// Setup router
	r := router.Setup(verifier, cfg.CORS.AllowedOrigins, importH, eventsH, batchH, transactionH, portfolioH, searchH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := importSvc.Shutdown(shutdownCtx); err != nil {
		log.Printf("import service shutdown: %v", err)
	}
	return nil
}
