package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"wapoki-api/internal/adapters/storage/postgres"
	"wapoki-api/internal/config"
	"wapoki-api/internal/platform/logger"
	"wapoki-api/internal/platform/metrics"
	"wapoki-api/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "wapoki-api")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := postgres.Open(cfg.Database.DSN(), cfg.Database.MaxConns, cfg.Database.MaxIdle)
	if err != nil {
		zl.Fatal("no se pudo abrir la base", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(db.DB); err != nil {
		zl.Fatal("migraciones fallidas", zap.Error(err))
	}

	h := router.New(router.Options{
		DB:      db,
		Logger:  zl,
		Metrics: metrics.New(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	zl.Info("starting server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Fatal("server error", zap.Error(err))
	}
}
