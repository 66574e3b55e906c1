package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vaultpass/secretgen-go/internal/config"
	"github.com/vaultpass/secretgen-go/internal/handler"
	"github.com/vaultpass/secretgen-go/internal/repository"
	"github.com/vaultpass/secretgen-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	routes := handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	// Without a database secrets are still served, but nothing is recorded
	// and client routes are disabled.
	var recorder service.EventRecorder
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repository.Migrate(ctx, db)
		cancel()
	}
	if err != nil {
		slog.Warn("database unavailable, client routes and history disabled", "error", err)
	} else {
		defer db.Close()

		events := repository.NewEventRepository(db)
		clients := repository.NewClientRepository(db)
		recorder = events

		clientService := service.NewClientService(clients, events, cfg.JWTSecret, cfg.JWTExpiry)
		routes.Clients = handler.NewClientHandler(clientService)
	}

	genService := service.NewGeneratorService(recorder, cfg.MaxLength)
	routes.Generator = handler.NewGeneratorHandler(genService)

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(appCtx, routes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "max_length", cfg.MaxLength)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
