package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vipcaribbean/site-api/internal/app"
	"github.com/vipcaribbean/site-api/internal/logger"
)

const shutdownTimeout = 30 * time.Second

func runServer() {
	configPath := os.Getenv("SITEAPI_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}

	application, err := app.New(configPath)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() {
		_ = application.Logger.Sync()
	}()

	server := application.Server()

	go func() {
		application.Logger.Info("API server listening",
			logger.String("address", server.Addr),
			logger.String("version", version),
		)
		serveErr := server.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", serveErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	application.Logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		application.Logger.Error("Server forced to shutdown", logger.Error(shutdownErr))
	}

	application.Logger.Info("Server stopped")
}
