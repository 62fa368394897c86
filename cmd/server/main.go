package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	handlerhttp "product-catalog/internal/handler/http"
	"product-catalog/internal/logger"
	middlewarehttp "product-catalog/internal/middleware/http"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"
	"product-catalog/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Instance()
	cfg := config.Load(log)

	shutdownTelemetry, err := telemetry.Init(ctx, log, telemetry.Config{
		AppName:                cfg.AppName,
		RemoteTraceRpcURI:      cfg.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: cfg.RemoteProfilingHttpURI,
	})
	if err != nil {
		os.Exit(1)
	}
	defer shutdownTelemetry()

	db, err := database.Connect(ctx, log, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Disconnect(disconnectCtx); err != nil {
			log.Error("MongoDB disconnect failed", slog.String("error", err.Error()))
		}
	}()

	// Wiring
	productRepo := repository.NewMongoProductRepository(db.Database)
	productService := service.NewProductService(productRepo)
	productHandler := handlerhttp.NewProductHandler(productService)

	healthService := service.NewHealthService(db.Client)
	healthHandler := handlerhttp.NewHealthHandler(healthService)

	cors := middlewarehttp.NewCORSMiddleware(cfg.AllowedOrigins)
	router := handlerhttp.NewRouter(productHandler, healthHandler,
		cors.Handler,
		middlewarehttp.CorrelationIDMiddleware,
		middlewarehttp.TraceMiddleware,
	)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
