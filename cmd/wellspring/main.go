package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avandermeer/wellspring/internal/database"
	"github.com/avandermeer/wellspring/internal/logging"
	"github.com/avandermeer/wellspring/internal/server"
	"github.com/avandermeer/wellspring/internal/snapshot"
)

func main() {
	logger := logging.Setup(os.Getenv("WELLSPRING_LOG_LEVEL"))

	port := os.Getenv("WELLSPRING_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("WELLSPRING_DB_PATH")
	if dbPath == "" {
		dbPath = "wellspring.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	snapCfg := snapshot.Config{
		Endpoint:   os.Getenv("WELLSPRING_S3_ENDPOINT"),
		Bucket:     os.Getenv("WELLSPRING_S3_BUCKET"),
		Region:     os.Getenv("WELLSPRING_S3_REGION"),
		AccessKey:  os.Getenv("WELLSPRING_S3_ACCESS_KEY"),
		SecretKey:  os.Getenv("WELLSPRING_S3_SECRET_KEY"),
		Passphrase: os.Getenv("WELLSPRING_SNAPSHOT_PASSPHRASE"),
		DBPath:     dbPath,
	}
	if v := os.Getenv("WELLSPRING_SNAPSHOT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			snapCfg.Interval = d
		} else {
			logger.Warn("invalid snapshot interval, using default", "value", v)
		}
	}

	srv := server.New(db, snapCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.SnapshotManager().Start(ctx)
	defer srv.SnapshotManager().Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("wellspring listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
