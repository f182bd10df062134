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

	"github.com/joho/godotenv"

	"github.com/bnema/mediaconv/config"
	"github.com/bnema/mediaconv/internal/adapter/converter"
	"github.com/bnema/mediaconv/internal/adapter/converter/ffmpeg"
	HTTPAdapter "github.com/bnema/mediaconv/internal/adapter/http"
	jsonstore "github.com/bnema/mediaconv/internal/adapter/storage/jsonfile"
	sqlitestore "github.com/bnema/mediaconv/internal/adapter/storage/sqlite"
	"github.com/bnema/mediaconv/internal/infrastructure/logger"
	"github.com/bnema/mediaconv/internal/infrastructure/scratch"
	"github.com/bnema/mediaconv/internal/port"
	"github.com/bnema/mediaconv/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn.Printf("failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	logger.Info.Printf("starting mediaconv on port %d, encoder=%s, timeout=%s, workers=%d",
		cfg.Port, cfg.FFmpegPath, cfg.EncodeTimeout, cfg.MaxConcurrentEncodes)

	scratchDir, err := scratch.NewManager(cfg.ScratchDir)
	if err != nil {
		logger.Error.Printf("failed to prepare scratch directory: %v", err)
		os.Exit(1)
	}

	executor, err := ffmpeg.NewExecutor(cfg.FFmpegPath, scratchDir, ffmpeg.ExecutorOptions{
		Timeout:       cfg.EncodeTimeout,
		MaxConcurrent: cfg.MaxConcurrentEncodes,
	})
	if err != nil {
		logger.Error.Printf("failed to create encoder: %v", err)
		os.Exit(1)
	}

	router, err := service.NewRouter(converter.Strategies(executor, converter.Options{
		JPEGQuality:         cfg.JPEGQuality,
		ImageMaxPixels:      cfg.ImageMaxPixels,
		MaxConcurrent:       cfg.MaxConcurrentEncodes,
		PassthroughFallback: cfg.PassthroughFallback,
	})...)
	if err != nil {
		logger.Error.Printf("failed to build strategy registry: %v", err)
		os.Exit(1)
	}

	var history port.HistoryStore
	if cfg.HistoryEnabled {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			logger.Error.Printf("failed to create data directory: %v", err)
			os.Exit(1)
		}
		switch cfg.HistoryBackend {
		case config.HistoryBackendJSON:
			store, err := jsonstore.NewStore(cfg.DataDir, jsonstore.DefaultMaxRecords)
			if err != nil {
				logger.Error.Printf("failed to create store: %v", err)
				os.Exit(1)
			}
			history = store
		default:
			store, err := sqlitestore.NewStore(cfg.DataDir)
			if err != nil {
				logger.Error.Printf("failed to create store: %v", err)
				os.Exit(1)
			}
			defer func() { _ = store.Close() }()
			history = store
		}
		logger.Info.Printf("conversion history: %s store in %s", cfg.HistoryBackend, cfg.DataDir)
	}

	conversionSvc := service.NewConversionService(router, history)
	server := HTTPAdapter.NewServer(conversionSvc, cfg.MaxUploadBytes())

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      cfg.EncodeTimeout + 5*time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		// In-flight conversions get the encode timeout to finish.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.EncodeTimeout)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}
		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
	<-shutdownDone
}
