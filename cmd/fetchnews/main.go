package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kalwarein/born-to-blog/internal/config"
	"github.com/Kalwarein/born-to-blog/internal/db"
	"github.com/Kalwarein/born-to-blog/internal/feeds"
	"github.com/Kalwarein/born-to-blog/internal/fetcher"
	"github.com/Kalwarein/born-to-blog/internal/ingest"
	"github.com/Kalwarein/born-to-blog/internal/logger"
	"github.com/Kalwarein/born-to-blog/internal/middleware"
	"github.com/Kalwarein/born-to-blog/internal/server"
)

func main() {
	logger.Init()
	defer logger.Log.Info("Application stopped")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Загрузка конфигурации
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Log.Fatalf("Config load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("Config validation error: %v", err)
	}

	// Инициализация БД
	database, err := db.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("DB connection error: %v", err)
	}
	defer database.Close()

	// Сборка конвейера
	f := fetcher.New(time.Duration(cfg.FetchTimeout) * time.Second)
	pipeline := ingest.New(database, f, feeds.Sources)
	if cfg.BatchLimit > 0 {
		pipeline.SetLimit(cfg.BatchLimit)
	}

	// HTTP сервер
	srv := server.NewServer(pipeline, database)
	mux := http.NewServeMux()
	mux.HandleFunc("/functions/fetch-news", srv.HandleFetchNews)
	mux.HandleFunc("GET /health", srv.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.RequestID(mux))

	httpServer := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(ctx, 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Log.Fatalf("Forced shutdown: %v", err)
	}
}
