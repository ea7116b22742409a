package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/canteen/internal/config"
	"github.com/Lixing-Zhang/canteen/internal/handlers"
	"github.com/Lixing-Zhang/canteen/internal/middleware"
	"github.com/Lixing-Zhang/canteen/internal/repository"
	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/Lixing-Zhang/canteen/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting canteen server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"staff_accounts", len(cfg.Auth.StaffAccounts),
		"protect_mutations", cfg.Auth.ProtectMutations,
	)

	if len(cfg.Auth.StaffAccounts) == 0 {
		log.Warn("no staff accounts configured, staff login will always fail")
	}

	// Initialize repositories
	menuRepo := repository.NewInMemoryMenuRepository()
	orderRepo := repository.NewInMemoryOrderRepository()

	// Initialize metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := handlers.NewRouter(handlers.Dependencies{
		Menu:             service.NewMenuService(menuRepo),
		Orders:           service.NewOrderService(menuRepo, orderRepo),
		Auth:             service.NewStaffAuthenticator(cfg.Auth.StaffAccounts, cfg.Auth.StaffDomain),
		Store:            middleware.NewSessionStore(cfg.Auth.SessionSecret, cfg.Auth.SessionMaxAge, false),
		Logger:           log,
		Registry:         registry,
		ProtectMutations: cfg.Auth.ProtectMutations,
	})
	if err != nil {
		log.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
