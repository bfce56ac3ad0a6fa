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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"github.com/tendant/simple-dublincore/pkg/dublincore/api"
	"github.com/tendant/simple-dublincore/pkg/dublincore/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it, using environment", "err", err)
	}

	serverConfig, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(serverConfig))

	svc, err := serverConfig.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: Routes(svc, serverConfig),
	}

	go func() {
		slog.Info("Dublin Core server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"database", serverConfig.DatabaseType,
			"site", serverConfig.Site.URL,
			"auth", serverConfig.JWTSecret != "")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func newLogger(cfg *config.ServerConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.EnableDebugLogging {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// Routes sets up the HTTP routes
func Routes(svc dublincore.Service, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{
			"status":      "healthy",
			"environment": cfg.Environment,
			"database":    cfg.DatabaseType,
		})
	})

	handler := api.NewItemHandler(svc, api.NewJWTAuth(cfg.JWTSecret))
	r.Mount("/api/v1", handler.Routes())

	return r
}
