package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisclient "github.com/studymind/studymind-backend/internal/clients/redis"
	"github.com/studymind/studymind-backend/internal/data/repos"
	"github.com/studymind/studymind-backend/internal/db"
	"github.com/studymind/studymind-backend/internal/http/handlers"
	"github.com/studymind/studymind-backend/internal/http/middleware"
	"github.com/studymind/studymind-backend/internal/observability"
	"github.com/studymind/studymind-backend/internal/platform/envutil"
	"github.com/studymind/studymind-backend/internal/platform/gcp"
	"github.com/studymind/studymind-backend/internal/platform/logger"
	"github.com/studymind/studymind-backend/internal/server"
	"github.com/studymind/studymind-backend/internal/services"
)

func main() {
	// Logger
	log, err := logger.New(envutil.Str("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	if shutdown := observability.InitTracing(ctx, log); shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	defer func() { _ = postgresService.Close() }()
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	gormDB := postgresService.DB()

	// Clients
	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Fatal("Could not init BucketService", "error", err)
	}
	defer func() { _ = bucketService.Close() }()

	progressCache, err := redisclient.NewProgressCache(log)
	if err != nil {
		// The estimator degrades to 0 without a cache; boot anyway.
		log.Warn("Could not init ProgressCache, progress degrades to 0", "error", err)
		progressCache = nil
	}
	if progressCache != nil {
		defer func() { _ = progressCache.Close() }()
	}

	// Repos
	documentRepo := repos.NewDocumentRepo(gormDB, log)
	documentDataRepo := repos.NewDocumentDataRepo(gormDB, log)
	vectorMetadataRepo := repos.NewVectorMetadataRepo(gormDB, log)

	// Services
	fileService := services.NewFileService(log, bucketService)
	progressService := services.NewProgressService(log, progressCache)
	documentService := services.NewDocumentService(
		gormDB,
		log,
		documentRepo,
		documentDataRepo,
		vectorMetadataRepo,
		fileService,
		progressService,
	)
	tokenVerifier := services.NewTokenVerifier(log, envutil.Str("JWT_SECRET_KEY", "defaultsecret"))

	// HTTP
	documentHandler := handlers.NewDocumentHandler(log, documentService)
	authMiddleware := middleware.NewAuthMiddleware(log, tokenVerifier)
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthMiddleware:  authMiddleware,
		DocumentHandler: documentHandler,
	})

	port := envutil.Str("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown failed", "error", err)
	}
}
