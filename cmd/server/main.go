// @title           Inspection Report API
// @version         4
// @description     Storage service for item inspection reports. Stores submitted reports as workbooks with their photos, keeps the submission log and signs users in with a name and 4-digit PIN.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/blobstore"
	"inspection-report/internal/config"
	"inspection-report/internal/database"
	"inspection-report/internal/handlers"
	"inspection-report/internal/logging"
	"inspection-report/internal/realtime"
	"inspection-report/internal/services"
	"inspection-report/internal/store"
	"inspection-report/internal/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	blobs, local, err := openBlobs(cfg)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(logger.Named("realtime"))
	go hub.Run(ctx)

	submissions := services.NewSubmissionService(st, blobs, hub, cfg.Location(), cfg.SpreadsheetURL, logger.Named("submissions"))
	auth := services.NewAuthService(st, cfg.JWTSecret)

	router := handlers.NewRouter(handlers.Deps{
		Submissions: submissions,
		Auth:        auth,
		Hub:         hub,
		JWTSecret:   cfg.JWTSecret,
		Logger:      logger,
	})
	if local != nil {
		router.Static(blobstore.URLPrefix, local.Dir())
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("database", cfg.DatabaseDriver), zap.Bool("supabase_storage", local == nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.DatabaseDriver == "memory" {
		logger.Warn("using in-memory store; records are lost on restart")
		return store.NewMemoryStore(), nil
	}

	dialect := database.Dialect(cfg.DatabaseDriver)
	db, err := database.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := database.NewMigrator(db.DB(), db.Dialect(), logger.Named("migrator")).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations completed successfully", zap.String("dialect", string(db.Dialect())))
	return db, nil
}

// openBlobs returns Supabase Storage when configured, otherwise a local
// directory that the router serves itself.
func openBlobs(cfg *config.Config) (services.BlobStore, *blobstore.LocalStore, error) {
	if cfg.UseSupabase() {
		client, err := supabase.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		storage, err := client.Storage()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage client: %w", err)
		}
		return storage, nil, nil
	}

	local, err := blobstore.NewLocalStore(cfg.BlobDir, cfg.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	return local, local, nil
}
