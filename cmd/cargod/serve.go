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

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cargo-portal/internal/backend"
	"cargo-portal/internal/db"
	"cargo-portal/internal/notification"
	"cargo-portal/internal/session"
	"cargo-portal/internal/store"
	"cargo-portal/internal/tracker"
	"cargo-portal/internal/web"
)

// sessionJanitorInterval is how often expired sessions are purged.
const sessionJanitorInterval = 15 * time.Minute

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Log.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Push notifications need VAPID keys; without them the tracker stays off.
	if cfg.Tracker.Enabled && !cfg.Push.Enabled() {
		logger.Warn("tracker enabled but VAPID keys are missing, disabling tracker")
		cfg.Tracker.Enabled = false
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	appStore := store.NewGormStore(gormDB)

	client, err := backend.New(cfg.Backend, logger)
	if err != nil {
		return err
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := session.NewManager(appStore, cfg.Server.SessionCookie, cfg.Server.SessionTTL, cfg.Server.SecureCookies, logger)
	sessions.Purge(ctx)
	go sessions.RunJanitor(ctx, sessionJanitorInterval)

	// Initialize and run the tracker in the background
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, &webpushOptions, logger)
	trackerSvc := tracker.NewService(cfg, appStore, client, workerPool, logger)
	go trackerSvc.Run(ctx)

	// Cache: default expiration from config, cleaned up every 10 minutes
	pageCache := cache.New(cfg.Server.CacheTTL, 10*time.Minute)

	handler := web.NewHandler(cfg, client, sessions, appStore, pageCache, logger)
	router, err := web.NewRouter(handler)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port), zap.String("backend", cfg.Backend.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received or the server fails.
	select {
	case <-stop:
		logger.Info("shutdown signal received, stopping services")
	case err := <-serveErr:
		return fmt.Errorf("HTTP server ListenAndServe: %w", err)
	}
	cancel()

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server gracefully stopped")
	return nil
}
