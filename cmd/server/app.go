package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/platform/blob"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	blobs blob.Store

	userService    service.UserService
	productService service.ProductService
}

// newApplication creates a new application instance with all dependencies
// initialized. Record files are not read until the first request.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	blobs, err := newBlobStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	return newApplicationWithBlobs(cfg, logger, blobs), nil
}

// newApplicationWithBlobs wires stores and services over an existing backend.
func newApplicationWithBlobs(cfg *config.Config, logger *slog.Logger, blobs blob.Store) *application {
	opts := store.Options{
		IDPolicy:        store.IDPolicy(cfg.Store.IDPolicy),
		SerializeWrites: cfg.Store.SerializeWrites,
		Logger:          logger,
	}

	userStore := store.NewUserStore(blobs, cfg.Storage.UserFile, opts)
	productStore := store.NewProductStore(blobs, cfg.Storage.ProductFile, opts)

	return &application{
		config:         cfg,
		logger:         logger,
		blobs:          blobs,
		userService:    service.NewUserService(userStore, logger),
		productService: service.NewProductService(productStore, logger),
	}
}

// newBlobStore opens the backend selected by cfg.Backend.
func newBlobStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (blob.Store, error) {
	switch cfg.Backend {
	case "local":
		local := blob.NewLocalStore(cfg.DataDir)
		logger.Info("Using local record directory", "dir", local.Dir())
		return local, nil
	case "memory":
		logger.Warn("Using in-memory records, nothing survives a restart")
		return blob.NewMemoryStore(), nil
	case "s3":
		return blob.DialMinio(ctx, blob.MinioConfig{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			UseSSL:    cfg.S3.UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}
