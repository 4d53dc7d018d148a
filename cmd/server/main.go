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

	"github.com/mbracher/winescan/internal/api"
	"github.com/mbracher/winescan/internal/config"
	"github.com/mbracher/winescan/internal/enrich"
	"github.com/mbracher/winescan/internal/ocr"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the OCR engine.
	engine := ocr.NewTesseract(ocr.Config{
		Language:    cfg.OCRLanguage,
		MaxImageDim: cfg.MaxImageDim,
	})

	// Initialize enrichment: memory in front of disk so repeated menus
	// survive restarts without re-querying Gemini.
	var enricher *enrich.Client
	if cfg.EnrichEnabled {
		cache := enrich.NewTieredCache(
			enrich.NewMemoryCache(cfg.CacheTTL),
			enrich.NewDiskCache(cfg.CacheDir, cfg.CacheTTL),
		)
		enricher = enrich.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cache, log)
	} else {
		enricher = enrich.NewClient("", cfg.GeminiModel, nil, log)
	}

	srv := api.NewServer(engine, enricher, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		enricher.Close()
	}()

	log.Info("starting winescan", "port", cfg.Port, "enrichment", cfg.EnrichEnabled)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
