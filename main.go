package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frotaops/frota/internal/config"
	"github.com/frotaops/frota/internal/handler"
	"github.com/frotaops/frota/internal/repository/sqlite"
	"github.com/frotaops/frota/internal/store"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	adapter := store.NewAdapter(db.Slot(cfg.StorageSlot))
	st := store.Open(context.Background(), adapter)
	snap := st.Snapshot()
	slog.Info("fleet state loaded",
		"vehicles", len(snap.Vehicles),
		"drivers", len(snap.Drivers),
		"fuelings", len(snap.Fuelings),
	)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, st)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.SecurityHeaders(handler.RequestLog(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
