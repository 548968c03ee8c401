package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/votelab/evote-api/internal/config"
	"github.com/votelab/evote-api/internal/logger"
	"github.com/votelab/evote-api/internal/server"
	"github.com/votelab/evote-api/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Get()

	container, err := storage.DefaultFactory().CreateContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	defer container.Close()

	srv := server.New(cfg, container)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}

	log.Info("Server stopped")
}
