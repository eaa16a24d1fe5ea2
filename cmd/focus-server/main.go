package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iammorganparry/focus/internal/api"
	"github.com/iammorganparry/focus/internal/app"
	"github.com/iammorganparry/focus/internal/config"
	"github.com/iammorganparry/focus/internal/notify"
	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/stats"
	"github.com/iammorganparry/focus/internal/store"
	"github.com/iammorganparry/focus/internal/tasks"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.focus/config.yaml)")
	flag.Parse()

	// Bootstrap logger until the configured level is known
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Config
	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Error("failed to locate config", "error", err)
			os.Exit(1)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Storage
	persister, db, err := store.OpenBackend(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	var pinger api.Pinger
	if db != nil {
		defer db.Close()
		pinger = db
	}

	taskStore, err := tasks.New(persister, logger)
	if err != nil {
		logger.Error("failed to load tasks", "error", err)
		os.Exit(1)
	}

	// Event loop: requests and ticks share one goroutine
	loop := app.NewLoop(logger)
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		loop.Run(loopCtx)
		close(loopDone)
	}()

	clock := session.NewTickerClock(session.Dispatcher(loop.Post))

	var notifier session.Notifier = notify.Nop{}
	if cfg.Notifications.Desktop {
		notifier = notify.NewDesktop(stats.SessionMinutes(session.DefaultDuration))
	}
	engine := session.NewEngine(taskStore, clock, notifier, session.DefaultDuration, logger)
	a := app.New(taskStore, engine, logger)

	// Router
	router := api.NewRouter(a, loop, pinger, cfg.Server.APIKey, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("focus server starting", "addr", addr, "storage", cfg.Storage.Backend, "tasks", taskStore.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// The clock belongs to the loop goroutine.
	if err := loop.Do(ctx, clock.Close); err != nil {
		logger.Warn("failed to stop timer", "error", err)
	}
	stopLoop()
	<-loopDone

	logger.Info("server stopped")
}
