package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
	"yogaslot/internal/auth"
	"yogaslot/internal/config"
	"yogaslot/internal/db"
	"yogaslot/internal/docstore"
	"yogaslot/internal/logger"
	"yogaslot/internal/server"
)

func main() {
	logger.Init()
	logger.Info("Starting YogaSlot document service")

	cfg, err := config.LoadDocstore()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to open %s store: %v", cfg.Backend, err)
	}
	defer closeStore()

	if cfg.SeedFile != "" {
		data, err := docstore.LoadSeed(cfg.SeedFile)
		if err != nil {
			logger.Fatalf("Failed to load seed: %v", err)
		}
		if err := store.Seed(ctx, data); err != nil {
			logger.Fatalf("Failed to seed store: %v", err)
		}
		logger.Info("Seed loaded", "file", cfg.SeedFile)
	}

	router := gin.New()
	router.Use(gin.Recovery(), server.RequestLoggingMiddleware(), server.MetricsMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	})
	router.GET("/metrics", server.Metrics())

	resources := router.Group("")
	resources.Use(auth.OptionalBearer(cfg.TokenSecret))
	docstore.NewHandler(store).RegisterRoutes(resources)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Info("document service listening", "port", cfg.Port, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	logger.Info("Document service stopped")
}

func openStore(ctx context.Context, cfg *config.Docstore) (docstore.Store, func(), error) {
	switch cfg.Backend {
	case "memory":
		return docstore.NewMemoryStore(docstore.DefaultUniqueKeys), func() {}, nil
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		database, err := db.Connect(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(database, cfg.Migrations); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info("Migrations completed")
		return docstore.NewRepository(database), func() { database.Close() }, nil
	default:
		return nil, nil, errors.New("unknown backend " + cfg.Backend + ", want memory or postgres")
	}
}
