package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mwaldman/huntboard/internal/config"
	"github.com/mwaldman/huntboard/internal/database"
	"github.com/mwaldman/huntboard/internal/logging"
	"github.com/mwaldman/huntboard/internal/server"
)

func main() {
	configFile := flag.String("config", "", "path to config file (default: ./config.yaml)")
	flag.Parse()

	loader, err := config.NewLoader(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config loader: %v\n", err)
		os.Exit(1)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Uploads.Path, 0o755); err != nil {
		logger.Error("failed to create uploads directory", "path", cfg.Uploads.Path, "error", err)
		os.Exit(1)
	}

	srv := server.New(db, cfg, logger)

	port := strconv.Itoa(cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("huntboard running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
