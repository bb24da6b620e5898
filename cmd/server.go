package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"yamdb/internal/wire"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

// APIServer serves app on port until ctx is cancelled, then drains
// in-flight requests. Expired sessions are purged in the background.
func APIServer(ctx context.Context, app *wire.App, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           app.Router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go cleanSessions(ctx, app, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}

func cleanSessions(ctx context.Context, app *wire.App, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := app.Service.Auth.CleanupSessions(ctx); err != nil {
				logger.Error("Session cleanup failed", zap.Error(err))
			}
		}
	}
}
