package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Run listens on cfg.Address and serves the plan API until ctx is cancelled.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}
	return Serve(ctx, logger, ln, cfg, version)
}

// Serve serves the plan API on ln until ctx is cancelled, then shuts the
// server down gracefully. ln is closed on return.
func Serve(ctx context.Context, logger *zap.Logger, ln net.Listener, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	srv := &http.Server{
		Handler:           NewHandler(logger, cfg, version),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info("server listening",
		zap.String("op", "server.Serve"),
		zap.String("address", ln.Addr().String()),
		zap.Int64("maxRequestSize", int64(cfg.MaxRequestSize)),
		zap.Int("rateLimitPerMinute", cfg.RateLimitPerMinute),
	)

	select {
	case <-ctx.Done():
		logger.Info("shutting down server", zap.String("op", "server.Serve"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
