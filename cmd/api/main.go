package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/infinite-realms/engine/internal/config"
	"github.com/infinite-realms/engine/internal/engine"
	"github.com/infinite-realms/engine/internal/handlers"
	"github.com/infinite-realms/engine/internal/logger"
	"github.com/infinite-realms/engine/internal/middleware"
	"github.com/infinite-realms/engine/internal/services"
	"github.com/infinite-realms/engine/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Infinite Realms API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model_name", cfg.ModelName,
		"image_model_name", cfg.ImageModelName)

	if cfg.GeminiAPIKey == "" {
		log.Error("Gemini API key is required")
		os.Exit(1)
	}
	narrator := services.NewGeminiService(cfg.GeminiAPIKey, cfg.ModelName, log)

	var images services.ImageService
	if cfg.ImageModelName != "" {
		images = services.NewGeminiImageService(cfg.GeminiAPIKey, cfg.ImageModelName, log)
	} else {
		log.Info("Image generation disabled")
	}

	var store storage.Storage = storage.NewRedisStorage(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	processor := engine.NewTurnProcessor(store, narrator, images, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, narrator, log)
	mux.Handle("/health", healthHandler)

	gameStateHandler := handlers.NewGameStateHandler(store, log)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	actionHandler := handlers.NewActionHandler(processor, log)
	mux.Handle("/v1/action", actionHandler)

	chatHandler := handlers.NewChatHandler(store, narrator, log)
	mux.Handle("/v1/chat", chatHandler)

	equipmentHandler := handlers.NewEquipmentHandler(store, log)
	mux.Handle("/v1/equip", equipmentHandler)
	mux.Handle("/v1/unequip", equipmentHandler)

	craftHandler := handlers.NewCraftHandler(store, log)
	mux.Handle("/v1/craft", craftHandler)
	mux.Handle("/v1/recipes", craftHandler)

	saveHandler := handlers.NewSaveHandler(store, log)
	mux.Handle("/v1/save", saveHandler)
	mux.Handle("/v1/load", saveHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout intentionally unset - action requests wait on the
		// narrator and manage their own timeouts
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Let any in-flight image attachments land before closing storage
	processor.WaitForImages()

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
